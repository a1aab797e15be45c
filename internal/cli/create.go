package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sqltools-dev/connprof/internal/azure"
	"github.com/sqltools-dev/connprof/internal/config"
	"github.com/sqltools-dev/connprof/internal/credential"
	"github.com/sqltools-dev/connprof/internal/db"
	"github.com/sqltools-dev/connprof/internal/logging"
	"github.com/sqltools-dev/connprof/internal/profile"
	"github.com/sqltools-dev/connprof/internal/store"
	"github.com/sqltools-dev/connprof/internal/tui"
	"github.com/sqltools-dev/connprof/pkg/connprof"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a connection profile interactively",
	Long: `Create walks through the connection questions, runs the Azure AD
login when the chosen authentication type needs one, and saves the
resulting profile to the registry.`,
	Args: cobra.NoArgs,
	RunE: runCreate,
}

func init() {
	createCmd.Flags().Bool("device-code", false, "Use the device-code flow instead of opening a browser")
	createCmd.Flags().Bool("no-test", false, "Skip the connection test after creation")
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, _ []string) error {
	_ = godotenv.Load()

	verbose := getVerboseFlag(cmd)
	logger := logging.NewConsoleLogger(verbose)

	if !tui.IsInteractive() {
		return fmt.Errorf("%w: profile creation prompts for input", connprof.ErrNonInteractive)
	}

	defaults := loadDefaults(logger)

	registryPath, err := store.DefaultPath()
	if err != nil {
		return err
	}
	registry, err := store.Open(registryPath)
	if err != nil {
		return err
	}

	deviceCode, _ := cmd.Flags().GetBool("device-code")
	var exchange connprof.AuthExchange
	if deviceCode {
		exchange = azure.NewDeviceCodeExchange(logger, nil, func(message string) {
			fmt.Fprintln(os.Stderr, message)
		})
	} else {
		exchange = azure.NewInteractiveExchange(logger, nil)
	}

	creator := &profile.Creator{
		Creds:    credential.NewLayer(),
		Store:    registry,
		Exchange: exchange,
		Logger:   logger,
	}

	p, err := creator.CreateProfile(cmd.Context(), tui.NewPrompter(), defaults)
	if err != nil {
		if errors.Is(err, connprof.ErrProfileNotCompleted) {
			logger.Info("Profile creation was not completed.")
		}
		return err
	}

	if err := registry.Save(p); err != nil {
		return err
	}
	logger.Info("%s Saved profile %q to %s", tui.SymbolCheck, p.DisplayName(), registryPath)

	if noTest, _ := cmd.Flags().GetBool("no-test"); noTest {
		return nil
	}
	if !tui.PromptContinue("Test the connection now?") {
		return nil
	}
	testProfile(cmd.Context(), logger, p)
	return nil
}

// testProfile runs a bounded connection test. A failure is reported but
// does not invalidate the saved profile.
func testProfile(ctx context.Context, logger connprof.Logger, p *connprof.Profile) {
	ctx, cancel := context.WithTimeout(ctx, connprof.DefaultTestTimeout)
	defer cancel()

	info, err := db.SQLTester{}.TestConnection(ctx, p)
	if err != nil {
		logger.Error("%s Connection test failed: %v", tui.SymbolCross, err)
		return
	}
	logger.Info("%s Connected: %s", tui.SymbolCheck, info)
}

// loadDefaults reads connprof.yaml from the working directory, if present,
// and merges environment overrides.
func loadDefaults(logger connprof.Logger) *connprof.Defaults {
	cwd, err := os.Getwd()
	if err != nil {
		return config.Defaults(nil)
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		if !errors.Is(err, config.ErrConfigNotFound) {
			logger.Error("Ignoring unreadable %s: %v", config.ConfigFileName, err)
		}
		return config.Defaults(nil)
	}
	logger.Verbose("loaded defaults from %s", config.ConfigFileName)
	return config.Defaults(cfg)
}
