package errx

import (
	"errors"
	"fmt"
	"maps"
	"runtime"
	"slices"
)

// Code 是错误码，日志字段 error_code 和 errors.Is 都只看它。
type Code string

type kind uint8

const (
	kindBiz kind = iota // 可预期的拒绝：不带栈，WARN
	kindSys             // 技术故障：带栈，ERROR
)

// Reason 由各领域包实现（例如 round.RejectReason），细分同一错误码下的拒绝原因。
type Reason interface {
	ReasonCode() string
}

const reasonKey = "reason"

// Error 不可变：每个 With* 都返回新值，哨兵错误可以放心共享。
type Error struct {
	kind  kind
	code  Code
	msg   string
	data  map[string]any
	cause error
	stack []uintptr
}

func NewBiz(code Code, msg string) *Error {
	return &Error{kind: kindBiz, code: code, msg: msg}
}

func NewSys(code Code, msg string) *Error {
	return &Error{kind: kindSys, code: code, msg: msg}
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	s := string(e.code)
	if e.msg != "" {
		s += ": " + e.msg
	}
	if e.cause != nil {
		s = fmt.Sprintf("%s: %v", s, e.cause)
	}
	return s
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Is 比较错误码；msg、data、cause 都不参与。
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e != nil && t != nil && e.code == t.code
}

func (e *Error) Code() Code {
	if e == nil {
		return ""
	}
	return e.code
}

func (e *Error) CodeText() string {
	return string(e.Code())
}

func (e *Error) Msg() string {
	if e == nil {
		return ""
	}
	return e.msg
}

// Data 返回副本，调用方改了也不影响错误本身。
func (e *Error) Data() map[string]any {
	if e == nil {
		return nil
	}
	return maps.Clone(e.data)
}

func (e *Error) Reason() string {
	if e == nil {
		return ""
	}
	s, _ := e.data[reasonKey].(string)
	return s
}

// Stack 是系统错误第一次挂上 cause 时的调用栈，业务错误为 nil。
func (e *Error) Stack() []uintptr {
	if e == nil {
		return nil
	}
	return slices.Clone(e.stack)
}

func (e *Error) WithData(key string, value any) *Error {
	return e.WithDataMap(map[string]any{key: value})
}

func (e *Error) WithDataMap(data map[string]any) *Error {
	next := e.clone()
	if len(data) == 0 {
		return next
	}
	if next.data == nil {
		next.data = make(map[string]any, len(data))
	}
	maps.Copy(next.data, data)
	return next
}

// WithReason 把原因码写进 data.reason；reason 为 nil 时写空串。
func (e *Error) WithReason(reason Reason) *Error {
	code := ""
	if reason != nil {
		code = reason.ReasonCode()
	}
	return e.WithData(reasonKey, code)
}

func (e *Error) WithCause(cause error) *Error {
	next := e.clone()
	next.cause = cause
	// 栈只抓一次：cause 链里已经有栈的不再重复抓。
	if next.kind == kindSys && cause != nil && next.stack == nil && !hasStackInChain(cause) {
		next.stack = captureStack(3)
	}
	return next
}

func (e *Error) clone() *Error {
	next := *e
	next.data = maps.Clone(e.data)
	next.stack = slices.Clone(e.stack)
	return &next
}

func captureStack(skip int) []uintptr {
	pcs := make([]uintptr, 64)
	n := runtime.Callers(skip, pcs)
	if n == 0 {
		return nil
	}
	return pcs[:n]
}

func hasStackInChain(err error) bool {
	for depth := 0; err != nil && depth < 32; depth++ {
		if s, ok := err.(interface{ Stack() []uintptr }); ok && len(s.Stack()) > 0 {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}
