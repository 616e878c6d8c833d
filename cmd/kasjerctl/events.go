package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"kasjer/internal/queue"

	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Inspect the back-office event queue",
}

var eventsTailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Print cashier events as they arrive",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if strings.TrimSpace(cfg.MQ.URL) == "" {
			return errors.New("mq.url is not configured")
		}

		events, err := queue.Connect(cfg.MQ)
		if err != nil {
			return err
		}
		defer events.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		err = events.Consume(ctx, func(_ context.Context, evt queue.Event) error {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", evt.OccurredAt.Format("2006-01-02T15:04:05Z07:00"), evt.Type, evt.Payload)
			return nil
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(eventsTailCmd)
}
