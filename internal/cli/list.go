package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sqltools-dev/connprof/internal/store"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored connection profiles",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	registryPath, err := store.DefaultPath()
	if err != nil {
		return err
	}
	registry, err := store.Open(registryPath)
	if err != nil {
		return err
	}

	profiles := registry.List()
	if len(profiles) == 0 {
		fmt.Fprintln(os.Stderr, "No profiles stored. Run 'connprof create' to add one.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSERVER\tDATABASE\tAUTH")
	for _, p := range profiles {
		server := p.Server
		if p.ConnectionString != "" {
			server = "(connection string)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.DisplayName(), server, p.Database, p.AuthType)
	}
	return w.Flush()
}
