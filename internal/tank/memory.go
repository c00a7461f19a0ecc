package tank

// Remember 往坦克记忆里写一个值。
func (t *Thinker) Remember(key string, value any) {
	if t.memory == nil {
		t.memory = make(map[string]any)
	}
	t.memory[key] = value
}

// Forget 删除一个键。
func (t *Thinker) Forget(key string) {
	delete(t.memory, key)
}

// MemoryLen 返回记忆中的键数量。
func (t *Thinker) MemoryLen() int {
	return len(t.memory)
}

// Recall 读取记忆；键不存在或类型不符时返回 T 的零值。
func Recall[T any](t *Thinker, key string) T {
	v, _ := RecallOK[T](t, key)
	return v
}

// RecallOK 同 Recall，额外报告键是否存在且类型匹配。
func RecallOK[T any](t *Thinker, key string) (T, bool) {
	var zero T
	raw, ok := t.memory[key]
	if !ok {
		return zero, false
	}
	v, ok := raw.(T)
	if !ok {
		return zero, false
	}
	return v, true
}

// State 返回 StatefulBrain 为本次激活创建的状态；脑本无状态或类型不符时返回 nil。
func State[S any](t *Thinker) *S {
	s, _ := t.state.(*S)
	return s
}
