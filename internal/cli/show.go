package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sqltools-dev/connprof/internal/store"
)

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a stored profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
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

	// Never print the password, saved or not.
	redacted := *p
	if redacted.Password != "" {
		redacted.Password = "********"
	}

	data, err := yaml.Marshal(&redacted)
	if err != nil {
		return err
	}
	fmt.Fprint(os.Stdout, string(data))
	return nil
}
