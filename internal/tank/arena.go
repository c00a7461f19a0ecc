package tank

import "TankBattle/internal/game/entity"

type slot struct {
	thinker *Thinker
	gen     uint32
}

// Arena 按句柄保存本局所有坦克。槽位销毁后代数 +1，旧句柄全部失效。
// 非并发安全，只在调度循环里使用。
type Arena struct {
	slots []slot
	free  []uint32
}

func NewArena() *Arena {
	return &Arena{}
}

// Spawn 放入一辆新的（禁用的）坦克并分配句柄。
func (a *Arena) Spawn(renderers ...*MeshRenderer) *Thinker {
	t := NewThinker(renderers...)
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		idx = uint32(len(a.slots))
		a.slots = append(a.slots, slot{gen: 1})
	}
	a.slots[idx].thinker = t
	t.handle = entity.NewTankHandle(idx, a.slots[idx].gen)
	return t
}

func (a *Arena) Get(h entity.TankHandle) (*Thinker, bool) {
	if h.IsZero() || int(h.Index()) >= len(a.slots) {
		return nil, false
	}
	s := a.slots[h.Index()]
	if s.thinker == nil || s.gen != h.Generation() {
		return nil, false
	}
	return s.thinker, true
}

// Valid 报告句柄是否仍指向一辆存活的坦克对象。
func (a *Arena) Valid(h entity.TankHandle) bool {
	_, ok := a.Get(h)
	return ok
}

// Enabled 报告句柄指向的坦克是否处于启用状态；失效句柄视为未启用。
func (a *Arena) Enabled(h entity.TankHandle) bool {
	t, ok := a.Get(h)
	return ok && t.Enabled()
}

// Destroy 移除坦克并让句柄失效，句柄本来就失效时返回 false。
func (a *Arena) Destroy(h entity.TankHandle) bool {
	t, ok := a.Get(h)
	if !ok {
		return false
	}
	t.SetEnabled(false)
	s := &a.slots[h.Index()]
	s.thinker = nil
	s.gen++
	a.free = append(a.free, h.Index())
	return true
}

// Clear 销毁全部坦克。
func (a *Arena) Clear() {
	a.Each(func(t *Thinker) {
		a.Destroy(t.handle)
	})
}

func (a *Arena) Len() int {
	return len(a.slots) - len(a.free)
}

// Each 按槽位顺序遍历存活的坦克。
func (a *Arena) Each(fn func(t *Thinker)) {
	for i := 0; i < len(a.slots); i++ {
		if t := a.slots[i].thinker; t != nil {
			fn(t)
		}
	}
}

// Tick 按槽位顺序给每辆坦克推进一个 tick。
func (a *Arena) Tick() {
	a.Each((*Thinker).Update)
}
