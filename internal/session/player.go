package session

import (
	"TankBattle/internal/game/entity"
	"TankBattle/internal/settings"
	"TankBattle/internal/tank"
)

// TankResolver 通过句柄查询坦克是否启用，一般是 tank.Arena。
type TankResolver interface {
	Enabled(h entity.TankHandle) bool
}

// PlayerRecord 是一名玩家在本次会话中的数据。
// 胜场只增不减；info 来自设置，不参与快照序列化。
type PlayerRecord struct {
	id        entity.PlayerID
	tank      entity.TankHandle
	totalWins int
	info      *settings.PlayerInfo
	brain     tank.Brain
	tanks     TankResolver
}

var _ tank.Owner = (*PlayerRecord)(nil)

func (p *PlayerRecord) ID() entity.PlayerID {
	return p.id
}

func (p *PlayerRecord) Info() *settings.PlayerInfo {
	return p.info
}

// Brain 返回创建会话时按名字解析出的脑本，名字未登记时为 nil。
func (p *PlayerRecord) Brain() tank.Brain {
	return p.brain
}

func (p *PlayerRecord) Color() entity.Color {
	return p.info.Color
}

func (p *PlayerRecord) Name() string {
	return p.info.Name
}

func (p *PlayerRecord) Tank() entity.TankHandle {
	return p.tank
}

func (p *PlayerRecord) AttachTank(h entity.TankHandle) {
	p.tank = h
}

// DetachTank 在回合重置时解除坦克绑定。
func (p *PlayerRecord) DetachTank() {
	p.tank = entity.TankHandle{}
}

func (p *PlayerRecord) TotalWins() int {
	return p.totalWins
}

// AddWin 记一场胜利，由回合结算调用。
func (p *PlayerRecord) AddWin() {
	p.totalWins++
}

// IsAlive 当且仅当绑定了坦克、句柄仍然有效且坦克处于启用状态。
func (p *PlayerRecord) IsAlive() bool {
	if p.tank.IsZero() || p.tanks == nil {
		return false
	}
	return p.tanks.Enabled(p.tank)
}

// PlayerSnapshot 是记录的可序列化视图，不含 PlayerInfo 本身。
type PlayerSnapshot struct {
	ID        entity.PlayerID `json:"id"`
	Name      string          `json:"name"`
	TotalWins int             `json:"total_wins"`
	Alive     bool            `json:"alive"`
}

func (p *PlayerRecord) Snapshot() PlayerSnapshot {
	return PlayerSnapshot{
		ID:        p.id,
		Name:      p.Name(),
		TotalWins: p.totalWins,
		Alive:     p.IsAlive(),
	}
}
