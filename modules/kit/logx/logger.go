package logx

import (
	"context"

	"go.uber.org/zap"
)

// Logger 是各包共用的最小日志接口：结构化字段 + ctx 透传（session/round）。
type Logger interface {
	Info(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	Debug(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	WithContext(ctx context.Context) Logger
}
