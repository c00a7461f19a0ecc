package menu

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"TankBattle/internal/game/entity"
	"TankBattle/internal/session"
	"TankBattle/internal/settings"
	"TankBattle/internal/shared/config"
	"TankBattle/modules/kit/errx"
	"TankBattle/modules/kit/logx"
)

// Controller 是主菜单：加载/编辑设置，点"开始"时保存并创建会话。
type Controller struct {
	colors   []entity.Color
	brains   []string
	template *settings.GameSettings
	dataDir  string
	host     *session.Host
	log      logx.Logger

	current *settings.GameSettings
}

type Options struct {
	Colors   []entity.Color
	Brains   []string // 可选脑本名，按循环顺序
	Template *settings.GameSettings
	DataDir  string
	Host     *session.Host
	Logger   logx.Logger
}

func NewController(opts Options) *Controller {
	errx.Require(opts.Template != nil, "template != nil")
	errx.Require(opts.Host != nil, "host != nil")
	log := opts.Logger
	if log == nil {
		log = logx.Nop()
	}
	return &Controller{
		colors:   append([]entity.Color(nil), opts.Colors...),
		brains:   append([]string(nil), opts.Brains...),
		template: opts.Template,
		dataDir:  opts.DataDir,
		host:     opts.Host,
		log:      log,
	}
}

func (c *Controller) SavedSettingsPath() string {
	return settings.SavedSettingsPath(c.dataDir)
}

// Settings 返回正在编辑的设置，Start 之前为 nil。
func (c *Controller) Settings() *settings.GameSettings {
	return c.current
}

// Start 有存档就读存档，否则从模板复制一份。
// 存档存在但读不出来时返回错误，不会静默回退到模板。
func (c *Controller) Start(ctx context.Context) error {
	path := c.SavedSettingsPath()
	if config.FileExist(path) {
		s, err := settings.Load(path)
		if err != nil {
			logx.ReportSysErrorWithLoggerContext(ctx, c.log, logx.NewSysLog("load_settings", err))
			return err
		}
		c.current = s
		c.log.WithContext(ctx).Info("saved settings loaded", zap.String("path", path))
		return nil
	}
	c.current = settings.FromTemplate(c.template)
	c.log.WithContext(ctx).Info("settings initialized from template", zap.Int("players", len(c.current.Players)))
	return nil
}

// Play 保存设置并据此创建新会话。保存失败时不创建会话。
func (c *Controller) Play(ctx context.Context) (*session.GameState, error) {
	errx.Require(c.current != nil, "menu started")
	path := c.SavedSettingsPath()
	if err := c.current.Save(path); err != nil {
		logx.ReportSysErrorWithLoggerContext(ctx, c.log, logx.NewSysLog("save_settings", err))
		return nil, err
	}
	g := c.host.CreateFromSettings(c.current)
	c.log.WithContext(g.Context(ctx)).Info("play",
		zap.String("settings", path),
		zap.Int("rounds", c.current.NumberOfRounds),
	)
	return g, nil
}

// NextColor 返回 color 之后的颜色（循环）；不在列表里的颜色回到第一个。
func (c *Controller) NextColor(color entity.Color) entity.Color {
	if len(c.colors) == 0 {
		return color
	}
	i := -1
	for k, v := range c.colors {
		if v == color {
			i = k
			break
		}
	}
	return c.colors[(i+1)%len(c.colors)]
}

// NextBrain 在可选脑本间循环，末尾之后是""（不分配），""之后回到第一个。
// 不认识的名字视为在列表之前。
func (c *Controller) NextBrain(brain string) string {
	if len(c.brains) == 0 {
		return ""
	}
	if brain == "" {
		return c.brains[0]
	}
	i := -1
	for k, v := range c.brains {
		if v == brain {
			i = k
			break
		}
	}
	i++
	if i < len(c.brains) {
		return c.brains[i]
	}
	return ""
}

// CycleColor 把第 slot 个玩家换成下一个颜色。
func (c *Controller) CycleColor(slot int) entity.Color {
	p := c.player(slot)
	p.Color = c.NextColor(p.Color)
	return p.Color
}

// CycleBrain 把第 slot 个玩家换成下一个脑本。
func (c *Controller) CycleBrain(slot int) string {
	p := c.player(slot)
	p.Brain = c.NextBrain(p.Brain)
	return p.Brain
}

func (c *Controller) player(slot int) *settings.PlayerInfo {
	errx.Require(c.current != nil, "menu started")
	errx.Require(slot >= 0 && slot < len(c.current.Players), "slot in range")
	return c.current.Players[slot]
}

// ChangeNumberOfRounds 对应回合数滑条：截断为整数（至少 1）写回设置，返回标签文本。
func (c *Controller) ChangeNumberOfRounds(value float64) string {
	errx.Require(c.current != nil, "menu started")
	n := int(value)
	if n < 1 {
		n = 1
	}
	c.current.NumberOfRounds = n
	return strconv.Itoa(n)
}
