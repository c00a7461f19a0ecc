package config

import (
	"fmt"
	"path/filepath"
)

// FindUpward 从 startDir 开始逐级向上查找 rel（例如 configs/conf.yml）。
func FindUpward(startDir, rel string) (string, error) {
	dir := startDir
	for {
		candidate := filepath.Join(dir, rel)
		if FileExist(candidate) {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("config file not exist, searched %s from: %s", rel, startDir)
		}
		dir = parent
	}
}
