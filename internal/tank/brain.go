package tank

// Brain 是坦克的决策策略。同一个 Brain 可以同时驱动多辆坦克，
// 每辆坦克自己的数据放在 Thinker 的记忆或类型化状态里。
type Brain interface {
	// Initialize 在每次激活时调用一次，早于该次激活后的第一次 Think。
	Initialize(t *Thinker)
	// Think 在激活期间每个 tick 调用一次。
	Think(t *Thinker)
}

// StatefulBrain 为每次激活提供一份全新的类型化状态，通过 State[S] 读取。
type StatefulBrain interface {
	Brain
	// NewState 必须返回指针（例如 &patrolState{}）。
	NewState() any
}

// BrainFuncs 用两个函数拼出一个 Brain，nil 字段视为空操作。
type BrainFuncs struct {
	OnInitialize func(t *Thinker)
	OnThink      func(t *Thinker)
}

func (f BrainFuncs) Initialize(t *Thinker) {
	if f.OnInitialize != nil {
		f.OnInitialize(t)
	}
}

func (f BrainFuncs) Think(t *Thinker) {
	if f.OnThink != nil {
		f.OnThink(t)
	}
}
