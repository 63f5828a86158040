package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/oseiserwaa/kitchen/config"
	"github.com/oseiserwaa/kitchen/internal/app"
	"github.com/oseiserwaa/kitchen/internal/domain"
	"github.com/oseiserwaa/kitchen/pkg/logger"
)

// Options are the seams the commands are built on. Zero values use the same
// configuration and storage wiring as the API server.
type Options struct {
	LoadConfig  func() (*config.Config, error)
	OpenStorage func(cfg *config.Config, log logger.Logger) (domain.Storage, error)
	Logger      logger.Logger
}

func (o *Options) defaults() {
	if o.LoadConfig == nil {
		// the env file is applied by godotenv before this runs
		o.LoadConfig = func() (*config.Config, error) {
			return config.LoadWithOptions(config.LoadOptions{})
		}
	}
	if o.OpenStorage == nil {
		o.OpenStorage = func(cfg *config.Config, log logger.Logger) (domain.Storage, error) {
			storage, _, err := app.OpenStorage(cfg, log)
			return storage, err
		}
	}
}

// env is what a subcommand runs against; release closes it
type env struct {
	cfg      *config.Config
	services *app.Services
	log      logger.Logger
	release  func()
}

type root struct {
	opts    Options
	envFile string
	verbose bool
}

// NewRootCommand builds kitchenctl
func NewRootCommand(opts Options) *cobra.Command {
	opts.defaults()
	r := &root{opts: opts}

	cmd := &cobra.Command{
		Use:   "kitchenctl",
		Short: "Administer the restaurant site backend",
		Long: `kitchenctl runs maintenance tasks against the same database as the API.

Examples:

  kitchenctl seed
  kitchenctl admin create --email chef@example.com --password secret --name Chef
  kitchenctl export reservations --out ./exports
  kitchenctl visitors stats
`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if r.envFile == "" {
				return nil
			}
			if err := godotenv.Load(r.envFile); err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					fmt.Fprintf(cmd.ErrOrStderr(), "No %s file found, continuing\n", r.envFile)
					return nil
				}
				return fmt.Errorf("failed to load %s: %w", r.envFile, err)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&r.envFile, "env-file", ".env", "environment file applied before configuration is read")
	cmd.PersistentFlags().BoolVarP(&r.verbose, "verbose", "v", false, "log at debug level")

	cmd.AddCommand(
		newSeedCommand(r),
		newAdminCommand(r),
		newExportCommand(r),
		newVisitorsCommand(r),
	)
	return cmd
}

// Execute runs kitchenctl with default wiring
func Execute(ctx context.Context) int {
	if err := NewRootCommand(Options{}).ExecuteContext(ctx); err != nil {
		color.New(color.FgRed, color.Bold).Fprintf(color.Error, "Error: %v\n", err)
		return 1
	}
	return 0
}

func (r *root) open() (*env, error) {
	cfg, err := r.opts.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log := r.opts.Logger
	if log == nil {
		level := "warn"
		if r.verbose {
			level = "debug"
		}
		log = logger.NewLoggerWithWriter(color.Error, level)
	}

	storage, err := r.opts.OpenStorage(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	// no mailer: maintenance commands never notify
	services, err := app.NewServices(cfg, storage, nil, log)
	if err != nil {
		_ = storage.Close()
		return nil, err
	}

	return &env{
		cfg:      cfg,
		services: services,
		log:      log,
		release: func() {
			services.Close()
			if err := storage.Close(); err != nil {
				log.Warn(fmt.Sprintf("Failed to close storage: %v", err))
			}
		},
	}, nil
}

// run opens the environment for one command invocation
func (r *root) run(fn func(cmd *cobra.Command, args []string, e *env) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		e, err := r.open()
		if err != nil {
			return err
		}
		defer e.release()
		return fn(cmd, args, e)
	}
}

var (
	success = color.New(color.FgGreen, color.Bold)
	warning = color.New(color.FgYellow, color.Bold)
	heading = color.New(color.FgCyan, color.Bold)
)
