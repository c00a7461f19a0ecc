package tracex

import (
	"context"
	"crypto/rand"
	"encoding/hex"
)

type sessionIDKey struct{}
type roundKey struct{}

// WithSessionID 把会话 id 挂到 ctx 上，日志会自动带出 session_id。
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey{}, sessionID)
}

func SessionIDFrom(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	s, ok := ctx.Value(sessionIDKey{}).(string)
	return s, ok && s != ""
}

// WithRound 记录当前回合号（从 1 开始；0 表示尚未开局）。
func WithRound(ctx context.Context, round int) context.Context {
	return context.WithValue(ctx, roundKey{}, round)
}

func RoundFrom(ctx context.Context) (int, bool) {
	if ctx == nil {
		return 0, false
	}
	r, ok := ctx.Value(roundKey{}).(int)
	return r, ok && r > 0
}

// NewSessionID 生成 8 字节随机会话 id（hex）。
func NewSessionID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return ""
	}
	return hex.EncodeToString(b[:])
}
