package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Run the bootstrap sequence and print a summary",
	Args:  cobra.NoArgs,
	RunE:  runBootstrap,
}

func init() {
	rootCmd.AddCommand(bootstrapCmd)
}

func runBootstrap(cmd *cobra.Command, args []string) error {
	core, err := boot(cmd)
	if err != nil {
		return err
	}
	defer core.Close()

	out := cmd.OutOrStdout()
	dirs, err := core.Autoloader.Dirs()
	if err != nil {
		return err
	}
	index, err := core.Autoloader.Index()
	if err != nil {
		return err
	}
	snap := core.Metrics.Snapshot()

	fmt.Fprintln(out, "Bootstrap complete")
	fmt.Fprintln(out, "==================")
	fmt.Fprintf(out, "  Registry keys:   %d\n", core.Registry.Len())
	fmt.Fprintf(out, "  Settings files:  %d\n", snap.FilesLoaded)
	fmt.Fprintf(out, "  Indexed symbols: %d\n", len(index))
	fmt.Fprintf(out, "  Libraries:       %d\n", len(core.Libraries))

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Autoload directories:")
	for _, dir := range dirs {
		fmt.Fprintf(out, "  %s\n", dir)
	}

	if len(core.Libraries) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Libraries:")
		for _, lib := range core.Libraries {
			fmt.Fprintf(out, "  %-20s %s\n", lib.Name, lib.Path)
		}
	}

	for _, ep := range core.Entrypoints {
		status := ep.Path
		if !ep.Found {
			status = "not found"
		}
		fmt.Fprintf(out, "\n%s: %s -> %s\n", ep.Key, ep.Symbol, status)
	}
	return nil
}
