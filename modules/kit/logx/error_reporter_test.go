package logx

import (
	"context"
	"errors"
	"strings"
	"testing"

	"TankBattle/modules/kit/errx"
	"TankBattle/modules/kit/tracex"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved() (*ZapLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewZapLogger(zap.New(core)), logs
}

func TestBuildErrorLog_能提取语义与栈(t *testing.T) {
	cause := errors.New("disk full")
	e := errx.ErrSettingsUnavailable.
		WithData("path", "/tmp/tanks-settings.json").
		WithCause(cause)

	meta := BuildErrorLog(e)
	if meta.Error == "" || meta.Code != string(errx.CodeSettingsUnavailable) || meta.Msg == "" {
		t.Fatalf("期望 Error/Code/Msg 非空，got=%+v", meta)
	}
	if meta.Data["path"] != "/tmp/tanks-settings.json" {
		t.Fatalf("期望 meta.Data 包含 path, got=%v", meta.Data)
	}
	if len(meta.CauseChain) == 0 {
		t.Fatalf("期望 meta.CauseChain 非空")
	}
	if meta.Origin == "" || meta.Stack == "" {
		t.Fatalf("期望 meta.Origin/meta.Stack 非空 origin=%q stack=%q", meta.Origin, meta.Stack)
	}
}

func TestReportSysError_带上下文字段(t *testing.T) {
	l, logs := newObserved()
	ctx := tracex.WithRound(tracex.WithSessionID(context.Background(), "abc"), 2)

	ReportSysErrorWithLoggerContext(ctx, l, NewSysLog("save_settings", errx.ErrInternal.WithCause(errors.New("boom"))))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("期望 1 条日志，got=%d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["session_id"] != "abc" || fields["round"] != int64(2) {
		t.Fatalf("期望带出 session_id/round，got=%v", fields)
	}
	if fields["error_code"] != string(errx.CodeInternal) {
		t.Fatalf("期望 error_code，got=%v", fields["error_code"])
	}
	if entries[0].Level != zapcore.ErrorLevel {
		t.Fatalf("期望 ERROR 级别，got=%v", entries[0].Level)
	}
}

func TestReportSysError_nil错误不输出(t *testing.T) {
	l, logs := newObserved()
	ReportSysErrorWithLoggerContext(context.Background(), l, NewSysLog("noop", nil))
	if logs.Len() != 0 {
		t.Fatalf("期望不输出日志，got=%d", logs.Len())
	}
}

func TestReportBiz_拼接原因与消息(t *testing.T) {
	l, logs := newObserved()
	ReportBizWithLoggerContext(context.Background(), l, NewBizLog("tick", "ROUND_NOT_STARTED", "回合未开始"))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("期望 1 条日志，got=%d", len(entries))
	}
	msg := entries[0].Message
	if !strings.Contains(msg, "ROUND_NOT_STARTED") || !strings.Contains(msg, "回合未开始") {
		t.Fatalf("期望消息包含 reason 和 msg，got=%q", msg)
	}
	if entries[0].Level != zapcore.WarnLevel {
		t.Fatalf("期望 WARN 级别，got=%v", entries[0].Level)
	}
}
