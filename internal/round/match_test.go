package round

import (
	"context"
	"errors"
	"testing"

	"TankBattle/internal/game/entity"
	"TankBattle/internal/session"
	"TankBattle/internal/settings"
	"TankBattle/internal/tank"
	"TankBattle/modules/kit/errx"
)

type fixture struct {
	arena *tank.Arena
	state *session.GameState
	match *Match
	inits int
}

func newFixture(t *testing.T, rounds, maxTicks int, brains ...string) *fixture {
	t.Helper()
	f := &fixture{arena: tank.NewArena()}

	catalog := tank.NewCatalog()
	catalog.Register("idle", tank.BrainFuncs{
		OnInitialize: func(*tank.Thinker) { f.inits++ },
	})
	catalog.Register("walker", tank.BrainFuncs{
		OnThink: func(th *tank.Thinker) { th.Move(entity.Vec3{X: 1}) },
	})

	s := &settings.GameSettings{NumberOfRounds: rounds}
	for i, b := range brains {
		s.Players = append(s.Players, &settings.PlayerInfo{
			Name:  string(rune('A' + i)),
			Brain: b,
			Color: entity.RGB(10, 20, uint8(i)),
		})
	}
	f.state = session.NewHost(catalog, f.arena, nil).CreateFromSettings(s)
	f.match = NewMatch(Options{
		Arena: f.arena,
		State: f.state,
		Spawns: []entity.Transform{
			{Position: entity.Vec3{X: 0}, Rotation: entity.IdentityQuat()},
			{Position: entity.Vec3{X: 10}, Rotation: entity.YawRotation(180)},
		},
		Rounds:   rounds,
		MaxTicks: maxTicks,
	})
	return f
}

func TestMatch_StartRound_按出生点刷坦克并绑定玩家(t *testing.T) {
	f := newFixture(t, 3, 0, "idle", "walker", "idle")
	ctx := context.Background()

	n, err := f.match.StartRound(ctx)
	if err != nil || n != 1 {
		t.Fatalf("期望第 1 回合开始，n=%d err=%v", n, err)
	}
	if f.state.RoundNumber() != 1 || f.match.Phase() != Running {
		t.Fatalf("期望回合号 1 且处于进行中")
	}
	if f.arena.Len() != 3 {
		t.Fatalf("期望 3 辆坦克，got=%d", f.arena.Len())
	}
	for i, p := range f.state.Players() {
		th, ok := f.arena.Get(p.Tank())
		if !ok {
			t.Fatalf("期望玩家 %d 绑定了有效坦克", i)
		}
		want := f.match.spawns[i%2]
		if th.Transform() != want {
			t.Fatalf("期望玩家 %d 在出生点 %d，got=%+v", i, i%2, th.Transform())
		}
		if th.Player() != p.ID() || !p.IsAlive() {
			t.Fatalf("期望双向链接且存活")
		}
		if th.Activated() {
			t.Fatalf("期望激活推迟到第一次 Tick")
		}
	}
	if f.inits != 0 {
		t.Fatalf("期望 StartRound 不触发 Initialize，got=%d", f.inits)
	}
}

func TestMatch_Tick_首个tick激活并思考(t *testing.T) {
	f := newFixture(t, 1, 0, "idle", "walker")
	ctx := context.Background()
	if _, err := f.match.StartRound(ctx); err != nil {
		t.Fatalf("StartRound: %v", err)
	}

	res, err := f.match.Tick(ctx)
	if err != nil || res != nil {
		t.Fatalf("期望两人存活时回合继续，res=%v err=%v", res, err)
	}
	if f.inits != 1 {
		t.Fatalf("期望 idle 脑本 Initialize 一次，got=%d", f.inits)
	}
	walker, _ := f.arena.Get(f.state.ByID(2).Tank())
	if got := walker.Transform().Position.X; got != 11 {
		t.Fatalf("期望 walker 同一 tick 内已移动一次，x=%v", got)
	}
}

func TestMatch_Eliminate_剩一人时结算并记胜场(t *testing.T) {
	f := newFixture(t, 3, 0, "idle", "walker", "idle")
	ctx := context.Background()
	if _, err := f.match.StartRound(ctx); err != nil {
		t.Fatalf("StartRound: %v", err)
	}

	for _, id := range []entity.PlayerID{1, 3} {
		ok, err := f.match.Eliminate(ctx, id)
		if err != nil || !ok {
			t.Fatalf("期望击毁玩家 %d，ok=%v err=%v", id, ok, err)
		}
	}
	if ok, _ := f.match.Eliminate(ctx, 1); ok {
		t.Fatalf("期望已阵亡的玩家不能重复击毁")
	}
	if ok, _ := f.match.Eliminate(ctx, 99); ok {
		t.Fatalf("期望不存在的玩家返回 false")
	}

	res, err := f.match.Tick(ctx)
	if err != nil || res == nil {
		t.Fatalf("期望回合结算，res=%v err=%v", res, err)
	}
	if res.Draw || res.Winner != f.state.ByID(2) || res.Round != 1 {
		t.Fatalf("期望玩家 2 赢下第 1 回合，got=%+v", res)
	}
	if res.Winner.TotalWins() != 1 {
		t.Fatalf("期望胜场 +1，got=%d", res.Winner.TotalWins())
	}
	if f.match.Phase() != Ended || f.match.LastResult() != res {
		t.Fatalf("期望回合进入已结束状态")
	}
	if f.match.GameOver() {
		t.Fatalf("期望 3 回合制下第 1 回合后比赛未结束")
	}
}

func TestMatch_Tick_达到上限时多人存活判平局(t *testing.T) {
	f := newFixture(t, 1, 3, "idle", "idle")
	ctx := context.Background()
	if _, err := f.match.StartRound(ctx); err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	var res *RoundResult
	for i := 0; i < 3; i++ {
		var err error
		if res, err = f.match.Tick(ctx); err != nil {
			t.Fatalf("Tick: %v", err)
		}
	}
	if res == nil || !res.Draw || res.Winner != nil || res.Ticks != 3 {
		t.Fatalf("期望第 3 个 tick 判平局，got=%+v", res)
	}
	for _, p := range f.state.Players() {
		if p.TotalWins() != 0 {
			t.Fatalf("期望平局不记胜场")
		}
	}
	if !f.match.GameOver() || f.match.Winner() != nil {
		t.Fatalf("期望比赛结束且总冠军为平局")
	}
}

func TestMatch_Tick_未登记脑本的坦克激活失败即出局(t *testing.T) {
	f := newFixture(t, 1, 0, "idle", "ghost")
	ctx := context.Background()
	if _, err := f.match.StartRound(ctx); err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	res, err := f.match.Tick(ctx)
	if err != nil || res == nil {
		t.Fatalf("期望没有脑本的坦克被禁用后立即结算，res=%v err=%v", res, err)
	}
	if res.Winner != f.state.ByID(1) {
		t.Fatalf("期望有脑本的玩家获胜，got=%+v", res.Winner)
	}
}

func TestMatch_多回合后决出总冠军(t *testing.T) {
	f := newFixture(t, 2, 0, "idle", "idle")
	ctx := context.Background()

	for round := 1; round <= 2; round++ {
		if _, err := f.match.StartRound(ctx); err != nil {
			t.Fatalf("StartRound %d: %v", round, err)
		}
		if _, err := f.match.Eliminate(ctx, 2); err != nil {
			t.Fatalf("Eliminate: %v", err)
		}
		if res, _ := f.match.Tick(ctx); res == nil || res.Winner.ID() != 1 {
			t.Fatalf("期望第 %d 回合玩家 1 获胜，got=%+v", round, res)
		}
	}
	if !f.match.GameOver() {
		t.Fatalf("期望两回合后比赛结束")
	}
	if w := f.match.Winner(); w == nil || w.ID() != 1 || w.TotalWins() != 2 {
		t.Fatalf("期望玩家 1 以 2 胜夺冠，got=%+v", w)
	}
	if _, err := f.match.StartRound(ctx); !errors.Is(err, errx.ErrRoundState) || reasonOf(err) != string(ReasonGameOver) {
		t.Fatalf("期望比赛结束后不能再开回合（game_over），got=%v", err)
	}
	if f.match.Rounds() != 2 || f.match.Ticks() != 1 {
		t.Fatalf("期望 Rounds=2 Ticks=1，got=%d/%d", f.match.Rounds(), f.match.Ticks())
	}
}

func reasonOf(err error) string {
	var e *errx.Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Reason()
}

func TestMatch_错误阶段的操作返回ErrRoundState(t *testing.T) {
	f := newFixture(t, 2, 0, "idle", "idle")
	ctx := context.Background()

	_, err := f.match.Tick(ctx)
	if !errors.Is(err, errx.ErrRoundState) || reasonOf(err) != string(ReasonNotRunning) {
		t.Fatalf("期望未开始时 Tick 报 round_not_running，got=%v", err)
	}
	_, err = f.match.Eliminate(ctx, 1)
	if !errors.Is(err, errx.ErrRoundState) || reasonOf(err) != string(ReasonNotRunning) {
		t.Fatalf("期望未开始时 Eliminate 报 round_not_running，got=%v", err)
	}
	if _, err := f.match.StartRound(ctx); err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	_, err = f.match.StartRound(ctx)
	if !errors.Is(err, errx.ErrRoundState) || reasonOf(err) != string(ReasonRoundRunning) {
		t.Fatalf("期望进行中不能再开回合，got=%v", err)
	}
}

func TestMatch_新回合销毁旧坦克(t *testing.T) {
	f := newFixture(t, 2, 0, "idle", "idle")
	ctx := context.Background()
	if _, err := f.match.StartRound(ctx); err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	old := f.state.ByID(1).Tank()
	_, _ = f.match.Eliminate(ctx, 2)
	_, _ = f.match.Tick(ctx)

	if _, err := f.match.StartRound(ctx); err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	if f.arena.Valid(old) {
		t.Fatalf("期望上一回合的句柄失效")
	}
	if f.arena.Len() != 2 || f.state.RoundNumber() != 2 {
		t.Fatalf("期望第 2 回合重新刷出 2 辆坦克")
	}
	if f.state.ByTank(old) != nil {
		t.Fatalf("期望旧句柄查不到玩家")
	}
}

func TestNewMatch_缺少出生点panic(t *testing.T) {
	defer func() {
		err, _ := recover().(error)
		if !errors.Is(err, errx.ErrPrecondition) {
			t.Fatalf("期望 ErrPrecondition panic，got=%v", err)
		}
	}()
	NewMatch(Options{Arena: tank.NewArena(), State: &session.GameState{}})
}
