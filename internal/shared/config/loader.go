package config

import (
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// Loader 包一层 viper：读取单个配置文件并解码到结构体（mapstructure tag）。
type Loader struct {
	v    *viper.Viper
	hook mapstructure.DecodeHookFunc
}

// NewLoader 的格式按扩展名识别（.yml/.yaml/.json）。
// 额外的 hooks 在默认 hook（duration、逗号切片）之后执行。
func NewLoader(path string, hooks ...mapstructure.DecodeHookFunc) *Loader {
	v := viper.New()
	v.SetConfigFile(path)
	all := append([]mapstructure.DecodeHookFunc{
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	}, hooks...)
	return &Loader{
		v:    v,
		hook: mapstructure.ComposeDecodeHookFunc(all...),
	}
}

func (l *Loader) Path() string {
	return l.v.ConfigFileUsed()
}

// Read 读取文件并解码到 out。
func (l *Loader) Read(out any) error {
	if !FileExist(l.Path()) {
		return fmt.Errorf("config file not exist, path=%v", l.Path())
	}
	if err := l.v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", l.Path(), err)
	}
	return l.Decode(out)
}

// Decode 把当前已读入的内容解码到 out，不重新读文件。
func (l *Loader) Decode(out any) error {
	if err := l.v.Unmarshal(out, viper.DecodeHook(l.hook)); err != nil {
		return fmt.Errorf("decode config %s: %w", l.Path(), err)
	}
	return nil
}

// Watch 监听文件变更；viper 已重新读入文件后回调 onChange。
// 回调跑在 watcher goroutine 上，回调里应解码到新值，禁止直接改正在被读的结构体。
func (l *Loader) Watch(onChange func(l *Loader, e fsnotify.Event)) {
	l.v.OnConfigChange(func(e fsnotify.Event) {
		onChange(l, e)
	})
	l.v.WatchConfig()
}

// Load 是 NewLoader(path, hooks...).Read(out) 的简写。
func Load(path string, out any, hooks ...mapstructure.DecodeHookFunc) error {
	return NewLoader(path, hooks...).Read(out)
}

func FileExist(fileName string) bool {
	_, err := os.Stat(fileName)
	return err == nil
}
