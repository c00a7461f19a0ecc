package appconfig

import (
	"os"
	"path/filepath"

	"TankBattle/internal/game/entity"
	"TankBattle/internal/shared/config"
)

const defaultConfigRelPath = "configs/conf.yml"

// Load 读取配置：
// 1) path 非空则直接使用（相对路径按当前目录解析）；
// 2) 否则从当前目录向上查找 configs/conf.yml。
// 文件里的 data.dir / brains.script_dir 可被环境变量覆盖。
// 相对路径统一按配置文件所在目录的上一级（项目根）解析。
func Load(path string) (*Config, *config.Loader, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, nil, err
	}

	loader := config.NewLoader(resolved, entity.ColorHook())
	var conf Config
	if err := loader.Read(&conf); err != nil {
		return nil, nil, err
	}
	if err := config.ParseEnv(&conf); err != nil {
		return nil, nil, err
	}
	conf.absolutize(filepath.Dir(filepath.Dir(resolved)))
	return &conf, loader, nil
}

// MustLoad 启动阶段使用：配置读不出来直接 panic。
func MustLoad(path string) (*Config, *config.Loader) {
	conf, loader, err := Load(path)
	if err != nil {
		panic(err)
	}
	return conf, loader
}

func resolvePath(path string) (string, error) {
	curDir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if path == "" {
		return config.FindUpward(curDir, defaultConfigRelPath)
	}
	if filepath.IsAbs(path) {
		return path, nil
	}
	return filepath.Join(curDir, path), nil
}

func (c *Config) absolutize(root string) {
	c.Data.Dir = joinIfRelative(root, c.Data.Dir)
	c.Menu.Template = joinIfRelative(root, c.Menu.Template)
	c.Brains.ScriptDir = joinIfRelative(root, c.Brains.ScriptDir)
	if c.Log.FileDir != "" {
		c.Log.FileDir = joinIfRelative(root, c.Log.FileDir)
	}
}

func joinIfRelative(root, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}
