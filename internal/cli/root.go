package cli

import (
	"context"

	"github.com/spf13/cobra"
	"max.ks1230/expense-assistant/internal/config"
	"max.ks1230/expense-assistant/internal/logger"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "expenses",
	Short:         "Expense tracker driven by a text generation assistant",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultFile, "path to the yaml config")
	rootCmd.AddCommand(chatCmd, botCmd, eventsCmd)
}

func Execute() error {
	defer logger.Sync()
	return rootCmd.ExecuteContext(context.Background())
}
