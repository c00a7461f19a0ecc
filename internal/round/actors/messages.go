package actors

import (
	"TankBattle/internal/game/entity"
	"TankBattle/internal/round"
	"TankBattle/internal/session"
)

// MatchMessage 是 MatchActor 接受的请求。
type MatchMessage interface {
	matchMessage()
}

type StartRound struct{}

type Tick struct{}

type Eliminate struct {
	Player entity.PlayerID
}

type Standings struct{}

func (*StartRound) matchMessage() {}
func (*Tick) matchMessage()       {}
func (*Eliminate) matchMessage()  {}
func (*Standings) matchMessage()  {}

type StartRoundReply struct {
	Round int
	Err   error
}

// ResultView 是 RoundResult 的只读副本，不把记录指针带出 actor。
type ResultView struct {
	Round  int                     `json:"round"`
	Winner *session.PlayerSnapshot `json:"winner,omitempty"`
	Draw   bool                    `json:"draw"`
	Ticks  int                     `json:"ticks"`
}

type TickReply struct {
	// Result 为 nil 表示回合仍在进行。
	Result   *ResultView
	GameOver bool
	Err      error
}

type EliminateReply struct {
	Eliminated bool
	Err        error
}

type StandingsReply struct {
	Snapshot session.StateSnapshot
	Phase    string
	Round    int
	Rounds   int
	GameOver bool
	// Winner 为 nil 表示平局或没有玩家。
	Winner *session.PlayerSnapshot
	Err    error
}

func viewOf(res *round.RoundResult) *ResultView {
	if res == nil {
		return nil
	}
	return &ResultView{
		Round:  res.Round,
		Winner: snapshotOf(res.Winner),
		Draw:   res.Draw,
		Ticks:  res.Ticks,
	}
}

func snapshotOf(p *session.PlayerRecord) *session.PlayerSnapshot {
	if p == nil {
		return nil
	}
	s := p.Snapshot()
	return &s
}
