package actors

import (
	"context"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"

	"TankBattle/internal/round"
	"TankBattle/modules/kit/errx"
	"TankBattle/modules/kit/logx"
)

type State int

const (
	None State = iota
	Online
	Stopping
	Offline
)

// MatchActor 独占一个 round.Match，所有回合操作经它的邮箱串行执行。
type MatchActor struct {
	state      State
	match      *round.Match
	dispatcher *Dispatcher
	log        logx.Logger
}

func NewMatchActor(match *round.Match, log logx.Logger) *MatchActor {
	if log == nil {
		log = logx.Nop()
	}
	return &MatchActor{
		state:      None,
		match:      match,
		dispatcher: NewDispatcher(),
		log:        log,
	}
}

func (a *MatchActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		a.state = Online
		a.log.WithContext(a.context()).Debug("match actor started", zap.String("pid", ctx.Self().String()))
	case *actor.Stopping:
		a.state = Stopping
	case *actor.Stopped:
		a.state = Offline
		a.log.WithContext(a.context()).Debug("match actor stopped")
	case *actor.Restarting:
		a.state = None
	case MatchMessage:
		if a.state != Online || a.match == nil {
			ctx.Respond(errx.ErrRoundState.WithReason(round.ReasonMatchOffline))
			return
		}
		a.dispatcher.Dispatch(ctx, a, msg)
	}
}

// context 带上会话 id 和回合号，供日志使用。
func (a *MatchActor) context() context.Context {
	ctx := context.Background()
	if a.match == nil {
		return ctx
	}
	return a.match.State().Context(ctx)
}
