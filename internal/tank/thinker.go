package tank

import (
	"TankBattle/internal/game/entity"
	"TankBattle/modules/kit/errx"
)

// Owner 是坦克所代表的玩家，一般是 session.PlayerRecord。
type Owner interface {
	ID() entity.PlayerID
	Brain() Brain
	Color() entity.Color
	AttachTank(h entity.TankHandle)
}

// Thinker 是一辆坦克的运行时：持有脑本、记忆和玩家链接，启用时每个 tick 驱动一次脑本。
//
// 状态：
//   - 新建时一律禁用，即使预先设置了脑本；
//   - 激活：没有脑本则保持禁用；否则清空记忆并调用 Initialize；
//   - 激活后每个 tick 调用 Think；
//   - 禁用后再次启用会重新激活，记忆从空开始。
type Thinker struct {
	handle    entity.TankHandle
	brain     Brain
	memory    map[string]any
	state     any
	player    entity.PlayerID
	transform entity.Transform
	renderers []*MeshRenderer
	enabled   bool
	activated bool
}

// NewThinker 创建一辆禁用状态的坦克。不在 Arena 中的坦克没有句柄。
func NewThinker(renderers ...*MeshRenderer) *Thinker {
	return &Thinker{
		renderers: renderers,
		transform: entity.Transform{Rotation: entity.IdentityQuat()},
	}
}

func (t *Thinker) Handle() entity.TankHandle {
	return t.handle
}

func (t *Thinker) Brain() Brain {
	return t.brain
}

// SetBrain 直接替换脑本，不触发激活。
func (t *Thinker) SetBrain(b Brain) {
	t.brain = b
}

func (t *Thinker) Enabled() bool {
	return t.enabled
}

// Activated 表示本次启用的激活流程已经跑过（记忆已分配、Initialize 已调用）。
func (t *Thinker) Activated() bool {
	return t.activated
}

// SetEnabled(true) 只打开开关，激活留给下一次 Update；
// SetEnabled(false) 立即生效，下一个 tick 不再 Think。
func (t *Thinker) SetEnabled(on bool) {
	t.enabled = on
	if !on {
		t.activated = false
	}
}

// Activate 是一次启用尝试：没有脑本时被拒绝（保持禁用），
// 否则分配新的记忆与类型化状态，并调用一次 Initialize。
func (t *Thinker) Activate() {
	t.enabled = true
	if t.brain == nil {
		t.SetEnabled(false)
		return
	}
	t.memory = make(map[string]any)
	t.state = nil
	if sb, ok := t.brain.(StatefulBrain); ok {
		t.state = sb.NewState()
	}
	t.activated = true
	t.brain.Initialize(t)
}

// Update 推进一个 tick。启用但尚未激活时先激活，同一个 tick 内再 Think。
func (t *Thinker) Update() {
	if !t.enabled {
		return
	}
	if !t.activated {
		t.Activate()
		if !t.enabled {
			return
		}
	}
	// 激活后脑本被移除：退回禁用。
	if t.brain == nil {
		t.SetEnabled(false)
		return
	}
	t.brain.Think(t)
}

// Setup 把坦克放到出生点并交给 owner：
// 复制位姿、取 owner 的脑本、给所有部件上色、建立双向链接、打开启用开关。
// 激活（记忆、Initialize）不在这里发生，由下一次 Update 完成。
func (t *Thinker) Setup(owner Owner, spawn entity.Transform) {
	errx.Require(owner != nil, "owner != nil")

	t.transform = spawn

	t.brain = owner.Brain()
	t.setColor(owner.Color())

	t.player = owner.ID()
	owner.AttachTank(t.handle)

	t.SetEnabled(true)
}

func (t *Thinker) setColor(c entity.Color) {
	for _, r := range t.renderers {
		r.Color = c
	}
}

// Player 返回所代表玩家的编号，未绑定时为 0。
func (t *Thinker) Player() entity.PlayerID {
	return t.player
}

func (t *Thinker) Transform() entity.Transform {
	return t.transform
}

func (t *Thinker) Renderers() []*MeshRenderer {
	return t.renderers
}

// Move 平移坦克，delta 为世界坐标。
func (t *Thinker) Move(delta entity.Vec3) {
	t.transform.Position = t.transform.Position.Add(delta)
}

// Turn 绕竖直轴旋转 degrees 度。
func (t *Thinker) Turn(degrees float64) {
	t.transform.Rotation = entity.YawRotation(degrees).Mul(t.transform.Rotation)
}
