package actor

import (
	"context"
	"fmt"
	"time"

	protoactor "github.com/asynkron/protoactor-go/actor"

	"TankBattle/internal/game/entity"
	"TankBattle/internal/round"
	"TankBattle/internal/round/actors"
	"TankBattle/modules/kit/errx"
	"TankBattle/modules/kit/logx"
)

const defaultAskTimeout = 3 * time.Second

// Runtime 把 MatchActor 包成同步调用：每个方法都是一次 RequestFuture。
type Runtime struct {
	system  *protoactor.ActorSystem
	root    *protoactor.RootContext
	match   *protoactor.PID
	timeout time.Duration
}

func NewRuntime(match *round.Match, askTimeout time.Duration, log logx.Logger) *Runtime {
	errx.Require(match != nil, "match != nil")
	if askTimeout <= 0 {
		askTimeout = defaultAskTimeout
	}

	system := protoactor.NewActorSystem()
	root := system.Root
	props := protoactor.PropsFromProducer(func() protoactor.Actor {
		return actors.NewMatchActor(match, log)
	})
	pid := root.Spawn(props)

	return &Runtime{
		system:  system,
		root:    root,
		match:   pid,
		timeout: askTimeout,
	}
}

func (r *Runtime) Shutdown() {
	if r == nil {
		return
	}
	if r.root != nil && r.match != nil {
		_ = r.root.StopFuture(r.match).Wait()
	}
	if r.system != nil {
		r.system.Shutdown()
	}
}

func (r *Runtime) StartRound(ctx context.Context) (int, error) {
	reply, err := ask[*actors.StartRoundReply](ctx, r, &actors.StartRound{})
	if err != nil {
		return 0, err
	}
	return reply.Round, reply.Err
}

// Tick 推进一个 tick；回合结算时返回结果，否则结果为 nil。
func (r *Runtime) Tick(ctx context.Context) (*actors.TickReply, error) {
	reply, err := ask[*actors.TickReply](ctx, r, &actors.Tick{})
	if err != nil {
		return nil, err
	}
	return reply, reply.Err
}

func (r *Runtime) Eliminate(ctx context.Context, id entity.PlayerID) (bool, error) {
	reply, err := ask[*actors.EliminateReply](ctx, r, &actors.Eliminate{Player: id})
	if err != nil {
		return false, err
	}
	return reply.Eliminated, reply.Err
}

func (r *Runtime) Standings(ctx context.Context) (*actors.StandingsReply, error) {
	reply, err := ask[*actors.StandingsReply](ctx, r, &actors.Standings{})
	if err != nil {
		return nil, err
	}
	return reply, reply.Err
}

func ask[T any](ctx context.Context, r *Runtime, msg actors.MatchMessage) (T, error) {
	var zero T
	res, err := r.request(msg, r.timeoutFromContext(ctx))
	if err != nil {
		return zero, err
	}
	switch v := res.(type) {
	case T:
		return v, nil
	case error:
		return zero, v
	default:
		return zero, errx.ErrInternal.WithData("reply", fmt.Sprintf("%T", res))
	}
}

func (r *Runtime) request(msg any, timeout time.Duration) (any, error) {
	if r == nil || r.root == nil {
		return nil, errx.ErrInternal.WithData("reason", "actor runtime not initialized")
	}
	if r.match == nil {
		return nil, errx.ErrInternal.WithData("reason", "match pid is nil")
	}

	future := r.root.RequestFuture(r.match, msg, timeout)
	res, err := future.Result()
	if err != nil {
		return nil, errx.ErrInternal.WithData("reason", "actor request failed").WithCause(err)
	}
	return res, nil
}

// timeoutFromContext 取 ask 超时与 ctx 剩余时间中较小者。
func (r *Runtime) timeoutFromContext(ctx context.Context) time.Duration {
	if r == nil || r.timeout <= 0 {
		return defaultAskTimeout
	}
	if ctx == nil {
		return r.timeout
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		return r.timeout
	}
	remain := time.Until(deadline)
	if remain <= 0 {
		return time.Millisecond
	}
	if remain < r.timeout {
		return remain
	}
	return r.timeout
}
