package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sqltools-dev/connprof/internal/store"
	"github.com/sqltools-dev/connprof/internal/tui"
)

var removeCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Remove a stored profile",
	Args:    cobra.ExactArgs(1),
	RunE:    runRemove,
}

func init() {
	removeCmd.Flags().BoolP("force", "f", false, "Remove without confirmation")
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	registryPath, err := store.DefaultPath()
	if err != nil {
		return err
	}
	registry, err := store.Open(registryPath)
	if err != nil {
		return err
	}

	name := args[0]
	if _, err := registry.Get(name); err != nil {
		return err
	}

	force, _ := cmd.Flags().GetBool("force")
	if !force && !tui.PromptContinue(fmt.Sprintf("Remove profile %q?", name)) {
		fmt.Fprintln(os.Stderr, "Aborted.")
		return nil
	}

	if err := registry.Remove(name); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Removed profile %q\n", name)
	return nil
}
