package appconfig

import (
	"time"

	"TankBattle/internal/game/entity"
)

type Config struct {
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
	Data   DataConfig   `yaml:"data" mapstructure:"data"`
	Menu   MenuConfig   `yaml:"menu" mapstructure:"menu"`
	Brains BrainsConfig `yaml:"brains" mapstructure:"brains"`
	Match  MatchConfig  `yaml:"match" mapstructure:"match"`
}

type LogConfig struct {
	FileDir    string `yaml:"file_dir" mapstructure:"file_dir"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"` // days
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
	Level      string `yaml:"level" mapstructure:"level"` // debug/info/warn/error...
	Dev        bool   `yaml:"dev" mapstructure:"dev"`
}

// DataConfig 描述持久化目录（保存 tanks-settings.json）。
type DataConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir" env:"TANKS_DATA_DIR"`
}

type MenuConfig struct {
	Template string         `yaml:"template" mapstructure:"template"` // 默认设置模板（json）
	Colors   []entity.Color `yaml:"colors" mapstructure:"colors"`
}

type BrainsConfig struct {
	ScriptDir string `yaml:"script_dir" mapstructure:"script_dir" env:"TANKS_BRAIN_DIR"`
}

type MatchConfig struct {
	TickInterval time.Duration `yaml:"tick_interval" mapstructure:"tick_interval"`
	MaxTicks     int           `yaml:"max_ticks" mapstructure:"max_ticks"` // 单回合最多 tick 数，<=0 不限
	AskTimeout   time.Duration `yaml:"ask_timeout" mapstructure:"ask_timeout"`
	SpawnPoints  []SpawnPoint  `yaml:"spawn_points" mapstructure:"spawn_points"`
}

type SpawnPoint struct {
	X   float64 `yaml:"x" mapstructure:"x"`
	Y   float64 `yaml:"y" mapstructure:"y"`
	Z   float64 `yaml:"z" mapstructure:"z"`
	Yaw float64 `yaml:"yaw" mapstructure:"yaw"` // 度
}

func (p SpawnPoint) Transform() entity.Transform {
	return entity.Transform{
		Position: entity.Vec3{X: p.X, Y: p.Y, Z: p.Z},
		Rotation: entity.YawRotation(p.Yaw),
	}
}

// Transforms 把配置里的出生点转成位姿列表。
func (m MatchConfig) Transforms() []entity.Transform {
	out := make([]entity.Transform, 0, len(m.SpawnPoints))
	for _, p := range m.SpawnPoints {
		out = append(out, p.Transform())
	}
	return out
}
