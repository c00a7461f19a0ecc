package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv 用环境变量覆盖 target 中带 env tag 的字段。
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
