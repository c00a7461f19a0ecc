package settings

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"TankBattle/internal/game/entity"
	"TankBattle/internal/shared/config"
	"TankBattle/modules/kit/errx"
)

// SavedSettingsFileName 是保存在数据目录下的设置文件名。
const SavedSettingsFileName = "tanks-settings.json"

const minRounds = 1

// PlayerInfo 是一个玩家槽位的配置：脑本名 + 涂装颜色。
// 会话内按指针身份引用它，不要复制后再拿去查询。
type PlayerInfo struct {
	Name  string       `json:"name" mapstructure:"name"`
	Brain string       `json:"brain" mapstructure:"brain"` // 空串表示该槽位未分配脑本
	Color entity.Color `json:"color" mapstructure:"color"`
}

func (p *PlayerInfo) HasBrain() bool {
	return p != nil && p.Brain != ""
}

type GameSettings struct {
	Players        []*PlayerInfo `json:"players" mapstructure:"players"`
	NumberOfRounds int           `json:"number_of_rounds" mapstructure:"number_of_rounds"`
}

func SavedSettingsPath(dataDir string) string {
	return filepath.Join(dataDir, SavedSettingsFileName)
}

// Load 从 JSON 文件读取设置。
func Load(path string) (*GameSettings, error) {
	var s GameSettings
	if err := config.Load(path, &s, entity.ColorHook()); err != nil {
		return nil, errx.ErrSettingsUnavailable.WithData("path", path).WithCause(err)
	}
	s.normalize()
	return &s, nil
}

// FromTemplate 深拷贝模板，返回的设置与模板互不影响。
func FromTemplate(template *GameSettings) *GameSettings {
	errx.Require(template != nil, "template != nil")
	out := &GameSettings{
		Players:        make([]*PlayerInfo, 0, len(template.Players)),
		NumberOfRounds: template.NumberOfRounds,
	}
	for _, p := range template.Players {
		if p == nil {
			continue
		}
		cp := *p
		out.Players = append(out.Players, &cp)
	}
	out.normalize()
	return out
}

// Save 以 JSON 写入 path，目录不存在时创建。
func (s *GameSettings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errx.ErrSettingsUnavailable.WithData("path", path).WithCause(err)
	}
	v := viper.New()
	v.Set("players", s.Players)
	v.Set("number_of_rounds", s.NumberOfRounds)
	if err := v.WriteConfigAs(path); err != nil {
		return errx.ErrSettingsUnavailable.WithData("path", path).WithCause(err)
	}
	return nil
}

func (s *GameSettings) normalize() {
	if s.Players == nil {
		s.Players = []*PlayerInfo{}
	}
	if s.NumberOfRounds < minRounds {
		s.NumberOfRounds = minRounds
	}
}
