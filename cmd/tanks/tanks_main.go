package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"TankBattle/internal/menu"
	"TankBattle/internal/round"
	roundactor "TankBattle/internal/round/actor"
	"TankBattle/internal/session"
	"TankBattle/internal/settings"
	"TankBattle/internal/shared/appconfig"
	"TankBattle/internal/shared/config"
	"TankBattle/internal/shared/logs"
	"TankBattle/internal/tank"
	"TankBattle/internal/tank/script"
	"TankBattle/modules/kit/logx"
)

const defaultTickInterval = 50 * time.Millisecond

func main() {
	conf, loader := appconfig.MustLoad("")
	if err := logs.Init("tanks", conf.Log); err != nil {
		panic(err)
	}
	defer logs.Sync()
	logs.Info("conf", zap.Any("conf", conf))

	loader.Watch(func(l *config.Loader, e fsnotify.Event) {
		var fresh appconfig.Config
		if err := l.Decode(&fresh); err != nil {
			logs.Warn("config reload failed", zap.String("file", e.Name), zap.Error(err))
			return
		}
		logs.SetLevel(fresh.Log.Level)
		logs.Info("config reloaded", zap.String("file", e.Name), zap.Stringer("level", logs.Level()))
	})

	log := logx.NewZapLogger(logs.Logger())

	catalog := tank.NewCatalog()
	names, err := script.LoadDir(conf.Brains.ScriptDir, catalog, log)
	if err != nil {
		logs.Fatal("load brains failed", zap.String("dir", conf.Brains.ScriptDir), zap.Error(err))
	}
	logs.Info("brains loaded", zap.Strings("brains", names))

	template, err := settings.Load(conf.Menu.Template)
	if err != nil {
		logs.Fatal("load settings template failed", zap.Error(err))
	}

	arena := tank.NewArena()
	host := session.NewHost(catalog, arena, log)
	mainMenu := menu.NewController(menu.Options{
		Colors:   conf.Menu.Colors,
		Brains:   catalog.Names(),
		Template: template,
		DataDir:  conf.Data.Dir,
		Host:     host,
		Logger:   log,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := mainMenu.Start(ctx); err != nil {
		logs.Fatal("menu start failed", zap.Error(err))
	}
	state, err := mainMenu.Play(ctx)
	if err != nil {
		logs.Fatal("menu play failed", zap.Error(err))
	}

	match := round.NewMatch(round.Options{
		Arena:    arena,
		State:    state,
		Spawns:   conf.Match.Transforms(),
		Rounds:   mainMenu.Settings().NumberOfRounds,
		MaxTicks: conf.Match.MaxTicks,
		Logger:   log,
	})
	rt := roundactor.NewRuntime(match, conf.Match.AskTimeout, log)
	defer rt.Shutdown()

	if err := run(ctx, rt, conf.Match.TickInterval); err != nil {
		if errors.Is(err, context.Canceled) {
			logs.Info("收到退出信号，准备优雅退出")
		} else {
			logs.Error("match aborted", zap.Error(err))
		}
	}

	standings, err := rt.Standings(context.Background())
	if err != nil {
		logs.Error("query standings failed", zap.Error(err))
		return
	}
	logs.Info("standings", zap.Int("round", standings.Round), zap.Int("of", standings.Rounds), zap.String("phase", standings.Phase))
	for _, p := range standings.Snapshot.Players {
		logs.Info("standing", zap.Int("player_id", int(p.ID)), zap.String("name", p.Name), zap.Int("wins", p.TotalWins))
	}
	if standings.Winner != nil {
		logs.Info("match winner", zap.String("name", standings.Winner.Name), zap.Int("wins", standings.Winner.TotalWins))
	} else if standings.GameOver {
		logs.Info("match ended in a draw")
	}
}

// run 逐回合推进直到比赛结束或 ctx 取消。
func run(ctx context.Context, rt *roundactor.Runtime, interval time.Duration) error {
	if interval <= 0 {
		interval = defaultTickInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		n, err := rt.StartRound(ctx)
		if err != nil {
			return err
		}
		logs.Debug("round begin", zap.Int("round", n))

	ticking:
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
			reply, err := rt.Tick(ctx)
			if err != nil {
				return err
			}
			if reply.Result == nil {
				continue
			}
			fields := []zap.Field{zap.Int("round", reply.Result.Round), zap.Int("ticks", reply.Result.Ticks)}
			if reply.Result.Winner != nil {
				fields = append(fields, zap.String("winner", reply.Result.Winner.Name))
			}
			logs.Info("round over", fields...)
			if reply.GameOver {
				return nil
			}
			break ticking
		}
	}
}
