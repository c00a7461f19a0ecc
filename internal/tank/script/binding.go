package script

import (
	"github.com/Shopify/go-lua"

	"TankBattle/internal/game/entity"
	"TankBattle/internal/tank"
)

const tankTypeName = "tank"

var tankMethods = []lua.RegistryFunction{
	{Name: "remember", Function: tankRemember},
	{Name: "recall", Function: tankRecall},
	{Name: "position", Function: tankPosition},
	{Name: "yaw", Function: tankYaw},
	{Name: "move", Function: tankMove},
	{Name: "advance", Function: tankAdvance},
	{Name: "turn", Function: tankTurn},
	{Name: "player", Function: tankPlayer},
}

func registerTankType(l *lua.State) {
	lua.NewMetaTable(l, tankTypeName)
	l.NewTable()
	lua.SetFunctions(l, tankMethods, 0)
	l.SetField(-2, "__index")
	l.Pop(1)
}

func pushTank(l *lua.State, t *tank.Thinker) {
	l.PushUserData(t)
	lua.SetMetaTableNamed(l, tankTypeName)
}

func checkTank(l *lua.State) *tank.Thinker {
	ud := lua.CheckUserData(l, 1, tankTypeName)
	if t, ok := ud.(*tank.Thinker); ok && t != nil {
		return t
	}
	lua.ArgumentError(l, 1, "tank expected")
	return nil
}

// tank:remember(key, value)；value 为 nil 时删除该键。
func tankRemember(l *lua.State) int {
	t := checkTank(l)
	key := lua.CheckString(l, 2)
	value := luaToGo(l, 3)
	if value == nil {
		t.Forget(key)
		return 0
	}
	t.Remember(key, value)
	return 0
}

// tank:recall(key) -> value | nil
func tankRecall(l *lua.State) int {
	t := checkTank(l)
	key := lua.CheckString(l, 2)
	v, ok := tank.RecallOK[any](t, key)
	if !ok {
		l.PushNil()
		return 1
	}
	pushGo(l, v)
	return 1
}

// tank:position() -> x, y, z
func tankPosition(l *lua.State) int {
	p := checkTank(l).Transform().Position
	l.PushNumber(p.X)
	l.PushNumber(p.Y)
	l.PushNumber(p.Z)
	return 3
}

func tankYaw(l *lua.State) int {
	l.PushNumber(checkTank(l).Transform().Rotation.Yaw())
	return 1
}

// tank:move(dx [, dy [, dz]])
func tankMove(l *lua.State) int {
	t := checkTank(l)
	t.Move(entity.Vec3{
		X: lua.CheckNumber(l, 2),
		Y: lua.OptNumber(l, 3, 0),
		Z: lua.OptNumber(l, 4, 0),
	})
	return 0
}

// tank:advance(distance) 沿当前朝向前进。
func tankAdvance(l *lua.State) int {
	t := checkTank(l)
	d := lua.CheckNumber(l, 2)
	f := t.Transform().Rotation.Forward()
	t.Move(entity.Vec3{X: f.X * d, Y: f.Y * d, Z: f.Z * d})
	return 0
}

// tank:turn(degrees)
func tankTurn(l *lua.State) int {
	t := checkTank(l)
	t.Turn(lua.CheckNumber(l, 2))
	return 0
}

func tankPlayer(l *lua.State) int {
	l.PushInteger(int(checkTank(l).Player()))
	return 1
}
