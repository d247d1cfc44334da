package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/citymaps-backend/internal/client"
	"github.com/heartmarshall/citymaps-backend/internal/protocol"
)

func parseID(s, name string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, s)
	}
	return id, nil
}

func newLoginCommand(c *cli) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Log in and print a session token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv("CITYMAPS_PASSWORD")
			}
			return c.run(cmd, func(ctx context.Context, cl *client.Client) (any, error) {
				return cl.Login(ctx, args[0], password)
			})
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "password (default $CITYMAPS_PASSWORD)")
	return cmd
}

func newRegisterCommand(c *cli) *cobra.Command {
	var (
		req    protocol.RegisterRequest
		card   protocol.PaymentCard
		expiry string
	)
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a client account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if card.CardNumber != "" {
				month, year, ok := strings.Cut(expiry, "/")
				if !ok {
					return fmt.Errorf("--card-expiry must be MM/YYYY, got %q", expiry)
				}
				var err error
				if card.ExpiryMonth, err = strconv.Atoi(month); err != nil {
					return fmt.Errorf("--card-expiry month: %w", err)
				}
				if card.ExpiryYear, err = strconv.Atoi(year); err != nil {
					return fmt.Errorf("--card-expiry year: %w", err)
				}
				req.Card = &card
			}
			return c.run(cmd, func(ctx context.Context, cl *client.Client) (any, error) {
				return cl.Register(ctx, req)
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&req.Username, "username", "", "username")
	f.StringVar(&req.Email, "email", "", "email address")
	f.StringVar(&req.Password, "password", "", "password")
	f.StringVar(&req.Name, "name", "", "display name")
	f.StringVar(&card.HolderName, "card-holder", "", "payment card holder name")
	f.StringVar(&card.CardNumber, "card-number", "", "payment card number")
	f.StringVar(&expiry, "card-expiry", "", "payment card expiry, MM/YYYY")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newCatalogCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog [query]",
		Short: "List cities, optionally filtered by name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			return c.run(cmd, func(ctx context.Context, cl *client.Client) (any, error) {
				return cl.GetCatalog(ctx, query)
			})
		},
	}
}

func newCityCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "city <city-id>",
		Short: "Show a city with its maps, sites and tours",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "city-id")
			if err != nil {
				return err
			}
			return c.run(cmd, func(ctx context.Context, cl *client.Client) (any, error) {
				return cl.GetCityDetails(ctx, id)
			})
		},
	}
}

func newViewCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "view <map-id>",
		Short: "View a map you are entitled to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "map-id")
			if err != nil {
				return err
			}
			return c.run(cmd, func(ctx context.Context, cl *client.Client) (any, error) {
				return cl.ViewMap(ctx, id)
			})
		},
	}
}

func newDownloadCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "download <map-id>",
		Short: "Download the map version you are entitled to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "map-id")
			if err != nil {
				return err
			}
			return c.run(cmd, func(ctx context.Context, cl *client.Client) (any, error) {
				return cl.DownloadMap(ctx, id)
			})
		},
	}
}

func newBuyCommand(c *cli) *cobra.Command {
	var (
		paymentToken string
		requestID    string
		months       int
	)
	buy := func(cmd *cobra.Command, req protocol.PurchaseRequest) error {
		req.PaymentToken = paymentToken
		req.RequestID = requestID
		return c.run(cmd, func(ctx context.Context, cl *client.Client) (any, error) {
			return cl.Purchase(ctx, req)
		})
	}

	cmd := &cobra.Command{
		Use:   "buy",
		Short: "Purchase a city subscription or a map",
	}
	cmd.PersistentFlags().StringVar(&paymentToken, "payment-token", "", "payment token, used when no card is on file")
	cmd.PersistentFlags().StringVar(&requestID, "request-id", "", "idempotency key; repeating it never charges twice")

	subscription := &cobra.Command{
		Use:   "subscription <city-id>",
		Short: "Subscribe to a city, or extend an existing subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "city-id")
			if err != nil {
				return err
			}
			return buy(cmd, protocol.PurchaseRequest{Type: "SUBSCRIPTION", CityID: &id, MonthsToAdd: months})
		},
	}
	subscription.Flags().IntVar(&months, "months", 1, "months to add")

	oneTime := &cobra.Command{
		Use:   "map <map-id>",
		Short: "Buy the current version of a map",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "map-id")
			if err != nil {
				return err
			}
			return buy(cmd, protocol.PurchaseRequest{Type: "ONE_TIME", MapID: &id})
		},
	}

	cmd.AddCommand(subscription, oneTime)
	return cmd
}

func newSubmitCommand(c *cli) *cobra.Command {
	var (
		req      protocol.SubmitContentRequest
		targetID int64
		details  string
	)
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a catalog change for approval",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if targetID > 0 {
				req.TargetID = &targetID
			}
			if details != "" {
				if !json.Valid([]byte(details)) {
					return fmt.Errorf("--details must be valid JSON")
				}
				req.Details = json.RawMessage(details)
			}
			req.ActionType = strings.ToUpper(req.ActionType)
			req.ContentType = strings.ToUpper(req.ContentType)
			return c.run(cmd, func(ctx context.Context, cl *client.Client) (any, error) {
				return cl.SubmitContentChange(ctx, req)
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&req.ActionType, "action", "", "ADD, EDIT or DELETE")
	f.StringVar(&req.ContentType, "content", "", "CITY, MAP, SITE or TOUR")
	f.Int64Var(&targetID, "target-id", 0, "id of the edited or deleted entity")
	f.StringVar(&req.TargetName, "target-name", "", "name of the entity")
	f.StringVar(&details, "details", "", "entity content as JSON")
	_ = cmd.MarkFlagRequired("action")
	_ = cmd.MarkFlagRequired("content")
	return cmd
}

func newPriceCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "price <map-id> <new-price>",
		Short: "Request a map price change",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "map-id")
			if err != nil {
				return err
			}
			price, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("new-price: %w", err)
			}
			return c.run(cmd, func(ctx context.Context, cl *client.Client) (any, error) {
				return cl.UpdatePrice(ctx, id, price)
			})
		},
	}
}

func newPendingCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "List content changes and price updates awaiting a decision",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd, func(ctx context.Context, cl *client.Client) (any, error) {
				return cl.GetPendingApprovals(ctx)
			})
		},
	}
}

func newDecisionCommand(c *cli, verb string) *cobra.Command {
	return &cobra.Command{
		Use:       verb + " <content|price> <id>",
		Short:     strings.ToUpper(verb[:1]) + verb[1:] + " a pending content change or price update",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"content", "price"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := protocol.PendingKind(strings.ToUpper(args[0]))
			if kind != protocol.PendingKindContent && kind != protocol.PendingKindPrice {
				return fmt.Errorf("kind must be content or price, got %q", args[0])
			}
			id, err := parseID(args[1], "id")
			if err != nil {
				return err
			}
			return c.run(cmd, func(ctx context.Context, cl *client.Client) (any, error) {
				if verb == "approve" {
					return cl.ApprovePending(ctx, kind, id)
				}
				return cl.DenyPending(ctx, kind, id)
			})
		},
	}
}

func newReportCommand(c *cli) *cobra.Command {
	var (
		from, to string
		cityID   int64
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show daily activity statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var city *int64
			if cityID > 0 {
				city = &cityID
			}
			return c.run(cmd, func(ctx context.Context, cl *client.Client) (any, error) {
				return cl.GetActivityReport(ctx, city, from, to)
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&from, "from", "", "first day, YYYY-MM-DD")
	f.StringVar(&to, "to", "", "last day, YYYY-MM-DD")
	f.Int64Var(&cityID, "city", 0, "limit the report to one city")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newWatchCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Stay connected and print notifications as they arrive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.watch(cmd)
		},
	}
}
