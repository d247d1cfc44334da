// Command mapctl is a command-line client for the city map catalog server.
//
// Defaults come from CITYMAPS_URL, CITYMAPS_TOKEN and CITYMAPS_CALL_TIMEOUT;
// flags override them.
//
// Usage:
//
//	mapctl login anna --password=secret
//	mapctl --token=$TOKEN catalog lisbon
//	mapctl --token=$TOKEN buy map 7 --payment-token=tok_123
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/citymaps-backend/internal/client"
	"github.com/heartmarshall/citymaps-backend/internal/config"
	"github.com/heartmarshall/citymaps-backend/internal/protocol"
)

type cli struct {
	url     string
	token   string
	timeout time.Duration
}

func main() {
	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand(cfg).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(cfg *config.ClientConfig) *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:          "mapctl",
		Short:        "City map catalog client",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&c.url, "url", cfg.URL, "server WebSocket URL")
	root.PersistentFlags().StringVar(&c.token, "token", cfg.Token, "session token from login")
	root.PersistentFlags().DurationVar(&c.timeout, "timeout", cfg.CallTimeout, "per-call timeout")

	root.AddCommand(
		newLoginCommand(c),
		newRegisterCommand(c),
		newCatalogCommand(c),
		newCityCommand(c),
		newViewCommand(c),
		newDownloadCommand(c),
		newBuyCommand(c),
		newSubmitCommand(c),
		newPriceCommand(c),
		newPendingCommand(c),
		newDecisionCommand(c, "approve"),
		newDecisionCommand(c, "deny"),
		newReportCommand(c),
		newWatchCommand(c),
	)
	return root
}

// run connects, passes the client to fn, and prints what fn returns.
func (c *cli) run(cmd *cobra.Command, fn func(ctx context.Context, cl *client.Client) (any, error)) error {
	ctx := cmd.Context()

	bridge, err := client.Dial(ctx, c.url, client.Options{Token: c.token, Timeout: c.timeout})
	if err != nil {
		return err
	}
	cl := client.NewClient(bridge)
	defer cl.Close()

	out, err := fn(ctx, cl)
	if err != nil {
		return err
	}
	return printJSON(cmd, out)
}

func (c *cli) watch(cmd *cobra.Command) error {
	ctx := cmd.Context()
	enc := json.NewEncoder(cmd.OutOrStdout())

	bridge, err := client.Dial(ctx, c.url, client.Options{
		Token:   c.token,
		Timeout: c.timeout,
		OnNotification: func(n protocol.Notification) {
			_ = enc.Encode(n)
		},
	})
	if err != nil {
		return err
	}
	defer bridge.Close()

	select {
	case <-ctx.Done():
		return nil
	case <-bridge.Done():
		return fmt.Errorf("%w: connection closed by server", client.ErrTransport)
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
