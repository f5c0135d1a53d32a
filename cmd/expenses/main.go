package main

import (
	"os"

	"go.uber.org/zap"
	"max.ks1230/expense-assistant/internal/cli"
	"max.ks1230/expense-assistant/internal/logger"
)

func main() {
	if err := cli.Execute(); err != nil {
		logger.Error("expenses failed", zap.Error(err))
		os.Exit(1)
	}
}
