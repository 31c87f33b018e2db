// Package cli contains the pharmago CLI commands: a terminal storefront over
// the client-state stores, persisting session and cart between invocations
// the way a browser tab would.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pharmago/clientkit/pkg/api"
	"github.com/pharmago/clientkit/pkg/cart"
	"github.com/pharmago/clientkit/pkg/config"
	"github.com/pharmago/clientkit/pkg/kv"
	"github.com/pharmago/clientkit/pkg/logger"
	"github.com/pharmago/clientkit/pkg/redis"
	"github.com/pharmago/clientkit/pkg/session"
)

// Config wires the CLI to the API and a storage backend. When RedisURL is
// set the session and cart persist to Redis instead of the state file.
type Config struct {
	API       api.Config
	StateFile string `env:"PHARMAGO_STATE_FILE"`
	RedisURL  string `env:"PHARMAGO_REDIS_URL"`
}

// app holds the wired client stack for the duration of one invocation.
type app struct {
	log     *slog.Logger
	storage kv.Store
	api     *api.Client
	session *session.Store
	cart    *cart.Store
}

var (
	verbose bool
	theApp  *app
)

var rootCmd = &cobra.Command{
	Use:   "pharmago",
	Short: "PharmaGo storefront in the terminal",
	Long: `pharmago is a terminal client for the PharmaGo online pharmacy.

Session and cart state persist between invocations, so you can sign in,
browse the catalog, fill the cart and check out across separate commands:

  pharmago login -e you@example.com
  pharmago catalog --search aspirin
  pharmago cart add 3 --qty 2
  pharmago checkout --street "1 Main St" --city Springfield`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		theApp = a
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if theApp != nil {
			_ = theApp.session.Close()
			_ = theApp.storage.Close()
		}
	},
}

// Execute runs the CLI.
func Execute() error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func newApp(ctx context.Context) (*app, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}

	logOpts := []logger.Option{logger.WithFormat(logger.FormatText)}
	if verbose {
		logOpts = append(logOpts, logger.WithLevel(slog.LevelDebug))
	} else {
		logOpts = append(logOpts, logger.WithLevel(slog.LevelWarn))
	}
	log := logger.New(logOpts...)

	storage, err := openStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	a := &app{log: log, storage: storage}

	a.api = api.New(cfg.API, api.WithTokenSource(func() string {
		if a.session == nil {
			return ""
		}
		return a.session.Token()
	}))

	a.session = session.New(a.api, storage, session.WithLogger(log))
	a.session.Bootstrap(ctx)

	// CLI commands want a settled state, not the optimistic window.
	select {
	case <-a.session.Ready():
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	a.cart = cart.New(ctx, storage, cart.WithLogger(log))
	return a, nil
}

func openStorage(ctx context.Context, cfg Config) (kv.Store, error) {
	if cfg.RedisURL != "" {
		client, err := redis.Connect(ctx, redis.Config{
			ConnectionURL:  cfg.RedisURL,
			RetryAttempts:  3,
			RetryInterval:  time.Second,
			ConnectTimeout: 10 * time.Second,
		})
		if err != nil {
			return nil, err
		}
		return kv.NewRedisStore(client, "pharmago"), nil
	}

	path := cfg.StateFile
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("cannot locate user config dir: %w", err)
		}
		path = filepath.Join(dir, "pharmago", "state.json")
	}
	return kv.NewFileStore(path)
}

// requireAuth fails fast for commands that need a signed-in session.
func (a *app) requireAuth() error {
	if !a.session.IsAuthenticated() {
		return fmt.Errorf("not signed in, run `pharmago login` first")
	}
	return nil
}
