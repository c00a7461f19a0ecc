package errx

// Require 在 cond 为 false 时以 ErrPrecondition 直接 panic。
// 仅用于"调用方写错了"的场景，没有恢复路径。
func Require(cond bool, what string) {
	if cond {
		return
	}
	panic(ErrPrecondition.WithData("check", what).withStack())
}

func (e *Error) withStack() *Error {
	next := e.clone()
	if len(next.stack) == 0 {
		next.stack = captureStack(4)
	}
	return next
}
