package session

import (
	"context"
	"sort"

	"TankBattle/internal/game/entity"
	"TankBattle/internal/settings"
	"TankBattle/modules/kit/tracex"
)

// GameState 是一次会话的唯一事实来源：谁在玩、用什么配置、谁领先。
// 记录只追加不删除。非并发安全，由调度循环独占访问。
type GameState struct {
	id      string
	players []*PlayerRecord
	round   int
}

func (g *GameState) ID() string {
	return g.id
}

// Players 返回记录切片。注意 PlayerWithMostWins 会原地重排它。
func (g *GameState) Players() []*PlayerRecord {
	return g.players
}

func (g *GameState) Len() int {
	return len(g.players)
}

func (g *GameState) RoundNumber() int {
	return g.round
}

// AdvanceRound 回合号 +1 并返回新值，由回合流程调用。
func (g *GameState) AdvanceRound() int {
	g.round++
	return g.round
}

// Context 把会话 id 和当前回合号挂到 ctx 上，日志会自动带出。
func (g *GameState) Context(ctx context.Context) context.Context {
	return tracex.WithRound(tracex.WithSessionID(ctx, g.id), g.round)
}

// ByInfo 按 PlayerInfo 指针身份查找记录，没有则返回 nil。
func (g *GameState) ByInfo(info *settings.PlayerInfo) *PlayerRecord {
	if info == nil {
		return nil
	}
	for _, p := range g.players {
		if p.info == info {
			return p
		}
	}
	return nil
}

// ByTank 按绑定的坦克句柄查找记录；零句柄永远查不到。
func (g *GameState) ByTank(h entity.TankHandle) *PlayerRecord {
	if h.IsZero() {
		return nil
	}
	for _, p := range g.players {
		if p.tank == h {
			return p
		}
	}
	return nil
}

func (g *GameState) ByID(id entity.PlayerID) *PlayerRecord {
	for _, p := range g.players {
		if p.id == id {
			return p
		}
	}
	return nil
}

// Alive 按当前顺序返回存活的记录。
func (g *GameState) Alive() []*PlayerRecord {
	var out []*PlayerRecord
	for _, p := range g.players {
		if p.IsAlive() {
			out = append(out, p)
		}
	}
	return out
}

// PlayerWithMostWins 按胜场降序原地排序 players，然后：
// 前两名胜场相同返回 nil（平局），没有玩家返回 nil，否则返回第一名。
// 调用方不能区分"平局"和"没有玩家"。
func (g *GameState) PlayerWithMostWins() *PlayerRecord {
	sort.SliceStable(g.players, func(i, j int) bool {
		return g.players[i].totalWins > g.players[j].totalWins
	})
	if len(g.players) == 0 {
		return nil
	}
	if len(g.players) > 1 && g.players[0].totalWins == g.players[1].totalWins {
		return nil
	}
	return g.players[0]
}

// StateSnapshot 是会话的可序列化视图。
type StateSnapshot struct {
	SessionID   string           `json:"session_id"`
	RoundNumber int              `json:"round_number"`
	Players     []PlayerSnapshot `json:"players"`
}

func (g *GameState) Snapshot() StateSnapshot {
	out := StateSnapshot{
		SessionID:   g.id,
		RoundNumber: g.round,
		Players:     make([]PlayerSnapshot, 0, len(g.players)),
	}
	for _, p := range g.players {
		out.Players = append(out.Players, p.Snapshot())
	}
	return out
}
