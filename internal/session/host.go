package session

import (
	"context"

	"go.uber.org/zap"

	"TankBattle/internal/game/entity"
	"TankBattle/internal/settings"
	"TankBattle/internal/tank"
	"TankBattle/modules/kit/errx"
	"TankBattle/modules/kit/logx"
	"TankBattle/modules/kit/tracex"
)

// Host 持有当前会话。由程序入口创建并注入给需要它的组件，
// 同一时刻最多一个 GameState 存活，重新创建即替换，旧引用随之过期。
type Host struct {
	brains  tank.BrainResolver
	tanks   TankResolver
	log     logx.Logger
	current *GameState
}

func NewHost(brains tank.BrainResolver, tanks TankResolver, log logx.Logger) *Host {
	if log == nil {
		log = logx.Nop()
	}
	return &Host{brains: brains, tanks: tanks, log: log}
}

// Current 返回当前会话；还没有创建过时返回 nil，调用方必须处理。
func (h *Host) Current() *GameState {
	return h.current
}

// CreateFromSettings 按设置重建会话并替换当前会话。
// 每个分配了脑本的 PlayerInfo 按原顺序生成一条记录，未分配的槽位跳过。
// 脑本名未登记时记录照常生成，但其脑本为 nil，坦克会拒绝激活。
func (h *Host) CreateFromSettings(s *settings.GameSettings) *GameState {
	errx.Require(s != nil, "settings != nil")

	g := &GameState{
		id:      tracex.NewSessionID(),
		players: make([]*PlayerRecord, 0, len(s.Players)),
	}
	ctx := g.Context(context.Background())
	for _, info := range s.Players {
		if !info.HasBrain() {
			continue
		}
		brain, ok := h.resolve(info.Brain)
		if !ok {
			h.log.WithContext(ctx).Warn("brain not registered, tank will stay disabled",
				zap.String("player", info.Name),
				zap.String("brain", info.Brain),
			)
		}
		g.players = append(g.players, &PlayerRecord{
			id:    entity.PlayerID(len(g.players) + 1),
			info:  info,
			brain: brain,
			tanks: h.tanks,
		})
	}

	h.current = g
	h.log.WithContext(ctx).Info("session created", zap.Int("players", len(g.players)))
	return g
}

func (h *Host) resolve(name string) (tank.Brain, bool) {
	if h.brains == nil {
		return nil, false
	}
	return h.brains.Resolve(name)
}
