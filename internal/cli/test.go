package cli

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sqltools-dev/connprof/internal/db"
	"github.com/sqltools-dev/connprof/internal/logging"
	"github.com/sqltools-dev/connprof/internal/store"
	"github.com/sqltools-dev/connprof/internal/tui"
	"github.com/sqltools-dev/connprof/pkg/connprof"
)

var testCmd = &cobra.Command{
	Use:   "test <name>",
	Short: "Test a stored profile's connection",
	Long: `Test connects with the named profile and reports the server version.
Azure AD profiles acquire a token through the driver, which may open a
browser or prompt for a device code.`,
	Args: cobra.ExactArgs(1),
	RunE: runTest,
}

func init() {
	testCmd.Flags().Duration("timeout", connprof.DefaultTestTimeout, "Connection test timeout")
	rootCmd.AddCommand(testCmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	logger := logging.NewConsoleLogger(getVerboseFlag(cmd))

	registryPath, err := store.DefaultPath()
	if err != nil {
		return err
	}
	registry, err := store.Open(registryPath)
	if err != nil {
		return err
	}

	p, err := registry.Get(args[0])
	if err != nil {
		return err
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	logger.Verbose("testing %s (%s)", p.DisplayName(), p.AuthType)
	info, err := db.SQLTester{}.TestConnection(ctx, p)
	if err != nil {
		return fmt.Errorf("profile %q: %w", p.DisplayName(), err)
	}

	logger.Info("%s Connected: %s", tui.SymbolCheck, info)
	return nil
}
