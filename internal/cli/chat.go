package cli

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"max.ks1230/expense-assistant/internal/clients/console"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the assistant in the terminal",
	Args:  cobra.NoArgs,
	RunE:  runChat,
}

func runChat(cmd *cobra.Command, _ []string) error {
	conf, err := loadConfig()
	if err != nil {
		return err
	}
	client := console.New(cmd.InOrStdin(), cmd.OutOrStdout())

	a, err := newApp(conf, client)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	return client.ListenUpdates(ctx, a.service, a.conf.App().HandleTimeout())
}
