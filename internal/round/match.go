package round

import (
	"context"

	"go.uber.org/zap"

	"TankBattle/internal/game/entity"
	"TankBattle/internal/session"
	"TankBattle/internal/tank"
	"TankBattle/modules/kit/errx"
	"TankBattle/modules/kit/logx"
)

type Phase int

const (
	// Idle 还没有开始任何回合。
	Idle Phase = iota
	Running
	Ended
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Ended:
		return "ended"
	default:
		return "unknown"
	}
}

// RejectReason 是回合流程拒绝一次操作的原因码，随 ErrRoundState 的 data.reason 带出。
type RejectReason string

func (r RejectReason) ReasonCode() string {
	return string(r)
}

const (
	ReasonRoundRunning RejectReason = "round_running"
	ReasonNotRunning   RejectReason = "round_not_running"
	ReasonGameOver     RejectReason = "game_over"
	ReasonMatchOffline RejectReason = "match_offline"
)

// RoundResult 是一个回合的结算结果。Winner 为 nil 时 Draw 为 true。
type RoundResult struct {
	Round  int
	Winner *session.PlayerRecord
	Draw   bool
	Ticks  int
}

type Options struct {
	Arena  *tank.Arena
	State  *session.GameState
	Spawns []entity.Transform
	// Rounds 是本局回合数，小于 1 按 1 处理。
	Rounds int
	// MaxTicks 是单回合 tick 上限，<=0 表示不限。
	MaxTicks int
	Logger   logx.Logger
}

// Match 驱动一局比赛：出生、推进、结算、记胜场。非并发安全，
// 可执行程序里只由 MatchActor 访问。
type Match struct {
	arena    *tank.Arena
	state    *session.GameState
	spawns   []entity.Transform
	rounds   int
	maxTicks int
	log      logx.Logger

	phase Phase
	ticks int
	last  *RoundResult
}

func NewMatch(opts Options) *Match {
	errx.Require(opts.Arena != nil, "arena != nil")
	errx.Require(opts.State != nil, "state != nil")
	errx.Require(len(opts.Spawns) > 0, "spawn points not empty")
	rounds := opts.Rounds
	if rounds < 1 {
		rounds = 1
	}
	log := opts.Logger
	if log == nil {
		log = logx.Nop()
	}
	return &Match{
		arena:    opts.Arena,
		state:    opts.State,
		spawns:   append([]entity.Transform(nil), opts.Spawns...),
		rounds:   rounds,
		maxTicks: opts.MaxTicks,
		log:      log,
	}
}

func (m *Match) State() *session.GameState {
	return m.state
}

func (m *Match) Phase() Phase {
	return m.phase
}

func (m *Match) Rounds() int {
	return m.rounds
}

// Ticks 返回当前回合已经推进的 tick 数。
func (m *Match) Ticks() int {
	return m.ticks
}

// LastResult 返回最近一次结算结果，还没有结算过时为 nil。
func (m *Match) LastResult() *RoundResult {
	return m.last
}

// StartRound 开始下一回合：回合号 +1，清场，每名玩家在出生点 i%len 刷一辆坦克。
// 坦克在下一次 Tick 时激活。
func (m *Match) StartRound(ctx context.Context) (int, error) {
	if m.phase == Running {
		return 0, errx.ErrRoundState.WithReason(ReasonRoundRunning).WithData("op", "start")
	}
	if m.GameOver() {
		return 0, errx.ErrRoundState.WithReason(ReasonGameOver).WithData("op", "start")
	}

	n := m.state.AdvanceRound()
	m.arena.Clear()
	for i, p := range m.state.Players() {
		p.DetachTank()
		t := m.arena.Spawn(tank.StandardRenderers()...)
		t.Setup(p, m.spawns[i%len(m.spawns)])
	}
	m.phase = Running
	m.ticks = 0

	m.log.WithContext(m.state.Context(ctx)).Info("round started",
		zap.Int("tanks", m.arena.Len()),
		zap.Int("of", m.rounds),
	)
	return n, nil
}

// Tick 推进一个 tick。存活玩家不超过一名或达到 tick 上限时结算并返回结果，否则返回 nil。
func (m *Match) Tick(ctx context.Context) (*RoundResult, error) {
	if m.phase != Running {
		return nil, errx.ErrRoundState.WithReason(ReasonNotRunning).WithData("phase", m.phase.String()).WithData("op", "tick")
	}
	m.arena.Tick()
	m.ticks++

	alive := m.state.Alive()
	if len(alive) > 1 && (m.maxTicks <= 0 || m.ticks < m.maxTicks) {
		return nil, nil
	}
	return m.finish(ctx, alive), nil
}

// Eliminate 击毁某名玩家的坦克（禁用），回合在下一次 Tick 结算。
// 玩家不存在或已阵亡返回 false。
func (m *Match) Eliminate(ctx context.Context, id entity.PlayerID) (bool, error) {
	if m.phase != Running {
		return false, errx.ErrRoundState.WithReason(ReasonNotRunning).WithData("phase", m.phase.String()).WithData("op", "eliminate")
	}
	p := m.state.ByID(id)
	if p == nil || !p.IsAlive() {
		return false, nil
	}
	t, ok := m.arena.Get(p.Tank())
	if !ok {
		return false, nil
	}
	t.SetEnabled(false)
	m.log.WithContext(m.state.Context(ctx)).Debug("tank eliminated",
		zap.Int("player_id", int(id)),
		zap.Stringer("tank", p.Tank()),
	)
	return true, nil
}

func (m *Match) finish(ctx context.Context, alive []*session.PlayerRecord) *RoundResult {
	res := &RoundResult{Round: m.state.RoundNumber(), Ticks: m.ticks, Draw: true}
	if len(alive) == 1 {
		res.Winner = alive[0]
		res.Draw = false
		res.Winner.AddWin()
	}
	m.phase = Ended
	m.last = res

	fields := []zap.Field{zap.Int("ticks", m.ticks), zap.Bool("draw", res.Draw)}
	if res.Winner != nil {
		fields = append(fields, zap.String("winner", res.Winner.Name()), zap.Int("wins", res.Winner.TotalWins()))
	}
	m.log.WithContext(m.state.Context(ctx)).Info("round ended", fields...)
	return res
}

// GameOver 在最后一回合结算之后为 true。
func (m *Match) GameOver() bool {
	return m.phase == Ended && m.state.RoundNumber() >= m.rounds
}

// Winner 返回总胜场唯一最多的玩家，平局或没有玩家时为 nil。
func (m *Match) Winner() *session.PlayerRecord {
	return m.state.PlayerWithMostWins()
}
