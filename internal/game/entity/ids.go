package entity

import "fmt"

// PlayerID 是会话内玩家记录的稳定编号，从 1 开始；0 表示未绑定。
type PlayerID int

// TankHandle 指向 tank.Arena 中的一个槽位。
// 槽位被销毁后代数递增，旧句柄随之失效，不会悄悄指向新坦克。
// 零值表示"没有坦克"。
type TankHandle struct {
	index uint32
	gen   uint32
}

func NewTankHandle(index, gen uint32) TankHandle {
	return TankHandle{index: index, gen: gen}
}

func (h TankHandle) IsZero() bool {
	return h.gen == 0
}

func (h TankHandle) Index() uint32 {
	return h.index
}

func (h TankHandle) Generation() uint32 {
	return h.gen
}

func (h TankHandle) String() string {
	if h.IsZero() {
		return "tank(none)"
	}
	return fmt.Sprintf("tank(%d#%d)", h.index, h.gen)
}
