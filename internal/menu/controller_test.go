package menu

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"TankBattle/internal/game/entity"
	"TankBattle/internal/session"
	"TankBattle/internal/settings"
	"TankBattle/internal/tank"
	"TankBattle/modules/kit/errx"
)

var (
	red   = entity.RGB(255, 0, 0)
	green = entity.RGB(0, 255, 0)
	blue  = entity.RGB(0, 0, 255)
)

func template() *settings.GameSettings {
	return &settings.GameSettings{
		NumberOfRounds: 5,
		Players: []*settings.PlayerInfo{
			{Name: "Player 1", Brain: "patrol", Color: red},
			{Name: "Player 2", Brain: "", Color: green},
			{Name: "Player 3", Brain: "idle", Color: blue},
		},
	}
}

func newController(t *testing.T, dir string) (*Controller, *session.Host) {
	t.Helper()
	catalog := tank.NewCatalog()
	catalog.Register("idle", tank.BrainFuncs{})
	catalog.Register("patrol", tank.BrainFuncs{})
	host := session.NewHost(catalog, tank.NewArena(), nil)
	c := NewController(Options{
		Colors:   []entity.Color{red, green, blue},
		Brains:   []string{"idle", "patrol"},
		Template: template(),
		DataDir:  dir,
		Host:     host,
	})
	return c, host
}

func TestController_Start_没有存档时从模板复制(t *testing.T) {
	c, _ := newController(t, t.TempDir())
	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	s := c.Settings()
	if s == nil || len(s.Players) != 3 || s.NumberOfRounds != 5 {
		t.Fatalf("期望复制模板，got=%+v", s)
	}
	s.Players[0].Name = "changed"
	if c.template.Players[0].Name != "Player 1" {
		t.Fatalf("期望复制后与模板互不影响")
	}
}

func TestController_Play_保存设置并创建会话(t *testing.T) {
	dir := t.TempDir()
	c, host := newController(t, dir)
	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	g, err := c.Play(context.Background())
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if host.Current() != g {
		t.Fatalf("期望 Play 后新会话成为当前会话")
	}
	if g.Len() != 2 {
		t.Fatalf("期望跳过未分配脑本的槽位，got=%d", g.Len())
	}
	if g.Players()[0].Info() != c.Settings().Players[0] {
		t.Fatalf("期望记录指向正在编辑的设置")
	}
	if _, err := os.Stat(filepath.Join(dir, settings.SavedSettingsFileName)); err != nil {
		t.Fatalf("期望写出存档文件，err=%v", err)
	}
}

func TestController_Start_优先读取存档(t *testing.T) {
	dir := t.TempDir()
	first, _ := newController(t, dir)
	if err := first.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	first.ChangeNumberOfRounds(7)
	first.CycleBrain(1)
	if _, err := first.Play(context.Background()); err != nil {
		t.Fatalf("Play: %v", err)
	}

	second, _ := newController(t, dir)
	if err := second.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	s := second.Settings()
	if s.NumberOfRounds != 7 {
		t.Fatalf("期望读到存档里的回合数 7，got=%d", s.NumberOfRounds)
	}
	if len(s.Players) != 3 || s.Players[1].Brain != "idle" || s.Players[2].Color != blue {
		t.Fatalf("期望读到存档里的玩家设置，got=%+v", s.Players)
	}
}

func TestController_Start_存档损坏时报错(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, settings.SavedSettingsFileName), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, _ := newController(t, dir)
	err := c.Start(context.Background())
	if !errors.Is(err, errx.ErrSettingsUnavailable) {
		t.Fatalf("期望 ErrSettingsUnavailable，got=%v", err)
	}
	if c.Settings() != nil {
		t.Fatalf("期望读取失败时不回退到模板")
	}
}

func TestController_NextColor_循环且未知颜色回到第一个(t *testing.T) {
	c, _ := newController(t, t.TempDir())
	if got := c.NextColor(red); got != green {
		t.Fatalf("期望 red 之后是 green，got=%v", got)
	}
	if got := c.NextColor(blue); got != red {
		t.Fatalf("期望末尾之后回到 red，got=%v", got)
	}
	if got := c.NextColor(entity.RGB(1, 2, 3)); got != red {
		t.Fatalf("期望未知颜色回到第一个，got=%v", got)
	}
}

func TestController_NextBrain_末尾之后是未分配(t *testing.T) {
	c, _ := newController(t, t.TempDir())
	cases := []struct{ in, want string }{
		{"", "idle"},
		{"idle", "patrol"},
		{"patrol", ""},
		{"ghost", "idle"},
	}
	for _, tc := range cases {
		if got := c.NextBrain(tc.in); got != tc.want {
			t.Fatalf("NextBrain(%q) 期望 %q，got=%q", tc.in, tc.want, got)
		}
	}
}

func TestController_NextBrain_没有可选脑本(t *testing.T) {
	c := NewController(Options{Template: template(), Host: session.NewHost(nil, nil, nil)})
	if got := c.NextBrain(""); got != "" {
		t.Fatalf("期望没有可选脑本时返回空，got=%q", got)
	}
	if got := c.NextColor(red); got != red {
		t.Fatalf("期望没有可选颜色时原样返回，got=%v", got)
	}
}

func TestController_Cycle_修改对应槽位(t *testing.T) {
	c, _ := newController(t, t.TempDir())
	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if got := c.CycleColor(2); got != red || c.Settings().Players[2].Color != red {
		t.Fatalf("期望槽位 2 换成 red，got=%v", got)
	}
	if got := c.CycleBrain(0); got != "" || c.Settings().Players[0].HasBrain() {
		t.Fatalf("期望 patrol 之后变为未分配，got=%q", got)
	}
}

func TestController_ChangeNumberOfRounds_截断并返回标签(t *testing.T) {
	c, _ := newController(t, t.TempDir())
	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if got := c.ChangeNumberOfRounds(3.9); got != "3" || c.Settings().NumberOfRounds != 3 {
		t.Fatalf("期望截断为 3，label=%q rounds=%d", got, c.Settings().NumberOfRounds)
	}
	if got := c.ChangeNumberOfRounds(0); got != "1" {
		t.Fatalf("期望回合数至少为 1，got=%q", got)
	}
}

func TestController_Play_未Start时panic(t *testing.T) {
	c, _ := newController(t, t.TempDir())
	defer func() {
		err, _ := recover().(error)
		if !errors.Is(err, errx.ErrPrecondition) {
			t.Fatalf("期望 ErrPrecondition panic，got=%v", err)
		}
	}()
	_, _ = c.Play(context.Background())
}
