package actors

import (
	"errors"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"

	"TankBattle/modules/kit/errx"
	"TankBattle/modules/kit/logx"
)

type MatchHandler struct{}

var MH = &MatchHandler{}

func (h *MatchHandler) HandleStartRound(ctx actor.Context, a *MatchActor, _ *StartRound) {
	n, err := a.match.StartRound(a.context())
	if err != nil {
		a.reject("start_round", err)
	}
	ctx.Respond(&StartRoundReply{Round: n, Err: err})
}

func (h *MatchHandler) HandleTick(ctx actor.Context, a *MatchActor, _ *Tick) {
	res, err := a.match.Tick(a.context())
	if err != nil {
		a.reject("tick", err)
	}
	ctx.Respond(&TickReply{
		Result:   viewOf(res),
		GameOver: a.match.GameOver(),
		Err:      err,
	})
}

func (h *MatchHandler) HandleEliminate(ctx actor.Context, a *MatchActor, req *Eliminate) {
	ok, err := a.match.Eliminate(a.context(), req.Player)
	if err != nil {
		a.reject("eliminate", err)
	}
	ctx.Respond(&EliminateReply{Eliminated: ok, Err: err})
}

// HandleStandings 只读，任何阶段都可以查询。
func (h *MatchHandler) HandleStandings(ctx actor.Context, a *MatchActor, _ *Standings) {
	reply := &StandingsReply{
		Phase:    a.match.Phase().String(),
		Round:    a.match.State().RoundNumber(),
		Rounds:   a.match.Rounds(),
		GameOver: a.match.GameOver(),
	}
	if reply.GameOver {
		reply.Winner = snapshotOf(a.match.Winner())
	}
	reply.Snapshot = a.match.State().Snapshot()
	ctx.Respond(reply)
}

func (a *MatchActor) reject(action string, err error) {
	var e *errx.Error
	if errors.As(err, &e) {
		logx.ReportBizWithLoggerContext(a.context(), a.log,
			logx.NewBizLog(action, e.Reason(), e.Msg()),
			zap.Any("error_data", e.Data()),
		)
		return
	}
	logx.ReportSysErrorWithLoggerContext(a.context(), a.log, logx.NewSysLog(action, err))
}
