package logger

import (
	"os"

	"go.uber.org/zap"
)

// NewLogger monta o logger da aplicação. Em produção usa o encoder JSON do
// zap; fora dela, o config de desenvolvimento (colorido, legível).
func NewLogger() (*zap.Logger, error) {
	var zapConfig zap.Config
	if os.Getenv("APP_ENV") == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	zapConfig.EncoderConfig.FunctionKey = "func"

	return zapConfig.Build(zap.AddCaller())
}
