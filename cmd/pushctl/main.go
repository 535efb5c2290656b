// Command pushctl is the RamadanKu push operations CLI.
//
// Usage:
//
//	ramadanku-pushctl send --all --title "Salam" --body "Ramadan Mubarak"
//	ramadanku-pushctl send --zone WLY01
//	ramadanku-pushctl send --endpoint https://fcm.googleapis.com/...
//	ramadanku-pushctl dispatch
//	ramadanku-pushctl zones
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Sienz16/ramadan-ku/internal/config"
	"github.com/Sienz16/ramadan-ku/internal/db"
	"github.com/Sienz16/ramadan-ku/internal/esolat"
	"github.com/Sienz16/ramadan-ku/internal/push"
	"github.com/Sienz16/ramadan-ku/internal/zone"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "ramadanku-pushctl",
		Short: "RamadanKu push operations CLI",
	}

	root.AddCommand(sendCmd())
	root.AddCommand(dispatchCmd())
	root.AddCommand(zonesCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// send command
// --------------------------------------------------------------------------

// validateSendSelector enforces exactly one of --all, --zone, --endpoint.
func validateSendSelector(all bool, zoneCode, endpoint string) error {
	selected := 0
	if all {
		selected++
	}
	if zoneCode != "" {
		selected++
	}
	if endpoint != "" {
		selected++
	}
	if selected != 1 {
		return fmt.Errorf("exactly one of --all, --zone, or --endpoint is required")
	}
	return nil
}

func sendCmd() *cobra.Command {
	var (
		all      bool
		zoneCode string
		endpoint string
		title    string
		body     string
	)
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send an ad-hoc notification to subscribers",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateSendSelector(all, zoneCode, endpoint); err != nil {
				return err
			}
			return run(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				sender, err := push.NewSender(cfg.VAPIDSubject, cfg.VAPIDPublicKey, cfg.VAPIDPrivateKey, cfg.PushTimeout, cfg.PushTTL)
				if err != nil {
					return err
				}
				store := push.NewStore(pool.Pool)

				var targets []push.Subscription
				switch {
				case all:
					targets, err = store.AllEnabled(ctx)
				case zoneCode != "":
					targets, err = store.EnabledByZone(ctx, strings.ToUpper(zoneCode))
				default:
					var sub *push.Subscription
					sub, err = store.FindByEndpoint(ctx, endpoint)
					if err == nil && sub == nil {
						return fmt.Errorf("endpoint is not subscribed")
					}
					if sub != nil {
						targets = []push.Subscription{*sub}
					}
				}
				if err != nil {
					return err
				}
				if len(targets) == 0 {
					logger.Info("No matching subscriptions")
					return nil
				}

				payload, err := push.TestPayload(title, body)
				if err != nil {
					return err
				}

				sent, failed, disabled := 0, 0, 0
				for _, sub := range targets {
					if err := sender.Send(ctx, sub, payload); err != nil {
						failed++
						if errors.Is(err, push.ErrEndpointGone) {
							if disableErr := store.Disable(ctx, sub.Endpoint); disableErr == nil {
								disabled++
							}
						}
						logger.Warn("send failed", "endpoint", sub.Endpoint, "error", err)
						continue
					}
					sent++
				}
				logger.Info("Send finished", "targets", len(targets), "sent", sent, "failed", failed, "disabled", disabled)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Send to every enabled subscription")
	cmd.Flags().StringVar(&zoneCode, "zone", "", "Send to one zone's subscribers")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "Send to a single endpoint")
	cmd.Flags().StringVar(&title, "title", "", "Notification title")
	cmd.Flags().StringVar(&body, "body", "", "Notification body")
	return cmd
}

// --------------------------------------------------------------------------
// dispatch command
// --------------------------------------------------------------------------

func dispatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dispatch",
		Short: "Run one dispatch tick for the current minute",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				sender, err := push.NewSender(cfg.VAPIDSubject, cfg.VAPIDPublicKey, cfg.VAPIDPrivateKey, cfg.PushTimeout, cfg.PushTTL)
				if err != nil {
					return err
				}
				store := push.NewStore(pool.Pool)
				client := esolat.NewClient(cfg.EsolatBaseURL, cfg.EsolatTimeout, cfg.EsolatRequestsPerMin, logger)

				dispatcher := push.NewDispatcher(store, client, sender, cfg.DispatchWorkers, logger)
				stats := dispatcher.RunOnce(ctx, time.Now())
				logger.Info("Dispatch tick finished", "summary", stats.Summary())
				for _, e := range stats.Errors {
					logger.Error("dispatch error", "error", e)
				}
				return nil
			})
		},
	}
	return cmd
}

// --------------------------------------------------------------------------
// zones command
// --------------------------------------------------------------------------

func zonesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zones",
		Short: "List zones with at least one enabled subscription",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				store := push.NewStore(pool.Pool)
				zones, err := store.ActiveZones(ctx)
				if err != nil {
					return err
				}
				if len(zones) == 0 {
					fmt.Println("no active zones")
					return nil
				}
				for _, code := range zones {
					if loc := zone.ByCode(code); loc != nil {
						fmt.Printf("%s\t%s, %s\n", code, loc.City, loc.State)
					} else {
						fmt.Println(code)
					}
				}
				return nil
			})
		},
	}
	return cmd
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// run handles config loading, DB connection, and context cancellation.
func run(fn func(ctx context.Context, cfg *config.Config, pool *db.Pool) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	return fn(ctx, cfg, pool)
}
