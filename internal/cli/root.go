package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/monogen-dev/monogen/internal/branding"
	"github.com/monogen-dev/monogen/internal/config"
	"github.com/monogen-dev/monogen/internal/logging"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// Global flags.
var (
	configPath string
	noColor    bool
	logLevel   string
	logFormat  string
	jsonOutput bool
)

// errReported marks a failure whose details were already printed.
var errReported = errors.New("reported")

// session is resolved once per invocation by the root pre-run.
var session struct {
	store    *config.Store
	settings config.Settings
	logger   *zap.Logger
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Config file (default: ~/"+branding.HomeDir()+"/config.yaml)")
	pf.BoolVar(&noColor, "no-color", false, "Disable colored output")
	pf.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default: warn)")
	pf.StringVar(&logFormat, "log-format", "", "Log format: console or json")
	pf.BoolVar(&jsonOutput, "json", false, "Print results as JSON")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` scaffolds TypeScript libraries inside a JavaScript monorepo.

Libraries come in five kinds: contract, data-access, feature, provider and
infra. Each is generated with package metadata, TypeScript configs and
Effect-based source files that follow the same layering conventions.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		store, err := config.Load(configPath)
		if err != nil {
			return err
		}
		st := store.Settings()
		if cmd.Flags().Changed("log-level") {
			st.LogLevel = logLevel
		}
		if cmd.Flags().Changed("log-format") {
			st.LogFormat = logFormat
		}
		if noColor {
			st.NoColor = true
		}

		logger, err := logging.New(st.LogLevel, st.LogFormat, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		session.store = store
		session.settings = st
		session.logger = logger
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if session.logger != nil {
			_ = session.logger.Sync()
		}
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}

// useColor reports whether w should get colored output. color.NoColor
// already accounts for NO_COLOR and a non-terminal stdout.
func useColor(w io.Writer) bool {
	if jsonOutput || session.settings.NoColor || color.NoColor {
		return false
	}
	_, ok := w.(*os.File)
	return ok
}
