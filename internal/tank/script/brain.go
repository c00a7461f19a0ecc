package script

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Shopify/go-lua"
	"go.uber.org/zap"

	"TankBattle/internal/tank"
	"TankBattle/modules/kit/errx"
	"TankBattle/modules/kit/logx"
)

const (
	hookInitialize = "initialize"
	hookThink      = "think"
	scriptExt      = ".lua"
)

// Brain 是 Lua 脚本实现的脑本。脚本定义全局函数 initialize(tank) / think(tank)，
// 两者都可以缺省。每个 Brain 独占一个 lua.State，只能在调度循环里调用。
type Brain struct {
	name  string
	state *lua.State
	log   logx.Logger
}

var _ tank.Brain = (*Brain)(nil)

func newBrain(name string, log logx.Logger) *Brain {
	if log == nil {
		log = logx.Nop()
	}
	state := lua.NewState()
	lua.OpenLibraries(state)
	registerTankType(state)
	return &Brain{name: name, state: state, log: log}
}

// LoadFile 加载并执行脚本文件，得到一个脑本。
func LoadFile(name, path string, log logx.Logger) (*Brain, error) {
	b := newBrain(name, log)
	if err := lua.DoFile(b.state, path); err != nil {
		return nil, errx.ErrScript.WithData("brain", name).WithData("path", path).WithCause(err)
	}
	return b, nil
}

// LoadString 从源码加载脑本，主要给测试和内置脑本用。
func LoadString(name, src string, log logx.Logger) (*Brain, error) {
	b := newBrain(name, log)
	if err := lua.DoString(b.state, src); err != nil {
		return nil, errx.ErrScript.WithData("brain", name).WithCause(err)
	}
	return b, nil
}

// LoadDir 把 dir 下每个 *.lua 以文件名（去掉扩展名）登记到 catalog，返回登记的名字。
func LoadDir(dir string, catalog *tank.Catalog, log logx.Logger) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*"+scriptExt))
	if err != nil {
		return nil, errx.ErrScript.WithData("dir", dir).WithCause(err)
	}
	sort.Strings(paths)

	names := make([]string, 0, len(paths))
	for _, p := range paths {
		name := strings.TrimSuffix(filepath.Base(p), scriptExt)
		b, err := LoadFile(name, p, log)
		if err != nil {
			return nil, err
		}
		catalog.Register(name, b)
		names = append(names, name)
	}
	return names, nil
}

func (b *Brain) Name() string {
	return b.name
}

func (b *Brain) Initialize(t *tank.Thinker) {
	b.call(hookInitialize, t)
}

func (b *Brain) Think(t *tank.Thinker) {
	b.call(hookThink, t)
}

// call 调用脚本里的钩子；脚本报错时记录日志并禁用这辆坦克。
func (b *Brain) call(hook string, t *tank.Thinker) {
	l := b.state
	top := l.Top()
	defer l.SetTop(top)

	l.Global(hook)
	if !l.IsFunction(-1) {
		return
	}
	pushTank(l, t)
	if err := l.ProtectedCall(1, 0, 0); err != nil {
		e := errx.ErrScript.WithData("brain", b.name).WithData("hook", hook).WithCause(err)
		logx.ReportSysErrorWithLoggerContext(context.Background(), b.log, logx.NewSysLog("brain_"+hook, e),
			zap.Int("player_id", int(t.Player())),
			zap.Stringer("tank", t.Handle()),
		)
		t.SetEnabled(false)
	}
}
