package config

import (
	"go.uber.org/zap"

	"github.com/conectaong/voluntariado-api/logging"
)

func setLogger(env, level, file string) (*zap.Logger, error) {
	return logging.New(env, level, file)
}
