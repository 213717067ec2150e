package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errUnresolved = errors.New("one or more symbols could not be resolved")

var resolveCmd = &cobra.Command{
	Use:   "resolve <symbol>...",
	Short: "Resolve symbols to source files",
	Long: `Resolve prints the absolute path of the file defining each symbol.

Symbols may use "." or "-" between segments, e.g. Vcms.Registry. The
command fails when any symbol is not found.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	core, err := boot(cmd)
	if err != nil {
		return err
	}
	defer core.Close()

	out := cmd.OutOrStdout()
	missing := 0
	for _, symbol := range args {
		path, found, err := core.Autoloader.Resolve(symbol)
		if err != nil {
			return err
		}
		if !found {
			missing++
			fmt.Fprintf(out, "%s\tnot found\n", symbol)
			continue
		}
		fmt.Fprintf(out, "%s\t%s\n", symbol, path)
	}

	if missing > 0 {
		return errUnresolved
	}
	return nil
}
