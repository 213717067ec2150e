package cmd

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
)

var (
	dumpJSON  bool
	dumpIndex bool
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the registry contents after bootstrap",
	Args:  cobra.NoArgs,
	RunE:  runDump,
}

func init() {
	dumpCmd.Flags().BoolVar(&dumpJSON, "json", false, "print as JSON")
	dumpCmd.Flags().BoolVar(&dumpIndex, "index", false, "include the autoload index")
	rootCmd.AddCommand(dumpCmd)
}

type dumpEntry struct {
	Key      string `json:"key"`
	Value    any    `json:"value"`
	ReadOnly bool   `json:"readonly"`
}

type dumpIndexEntry struct {
	Symbol string `json:"symbol"`
	Path   string `json:"path"`
}

type dumpOutput struct {
	Registry []dumpEntry      `json:"registry"`
	Index    []dumpIndexEntry `json:"index,omitempty"`
}

func runDump(cmd *cobra.Command, args []string) error {
	core, err := boot(cmd)
	if err != nil {
		return err
	}
	defer core.Close()

	var output dumpOutput
	for _, e := range core.Registry.Snapshot() {
		output.Registry = append(output.Registry, dumpEntry{Key: e.Key, Value: e.Value, ReadOnly: e.ReadOnly})
	}
	if dumpIndex {
		index, err := core.Autoloader.Index()
		if err != nil {
			return err
		}
		for _, e := range index {
			output.Index = append(output.Index, dumpIndexEntry{Symbol: e.Key, Path: e.Path})
		}
	}

	out := cmd.OutOrStdout()
	if dumpJSON {
		data, err := sonic.ConfigStd.MarshalIndent(output, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	for _, e := range output.Registry {
		value, err := sonic.ConfigStd.MarshalToString(e.Value)
		if err != nil {
			value = fmt.Sprint(e.Value)
		}
		mode := "rw"
		if e.ReadOnly {
			mode = "ro"
		}
		fmt.Fprintf(out, "%-24s %s  %s\n", e.Key, mode, value)
	}
	for _, e := range output.Index {
		fmt.Fprintf(out, "%-24s %s\n", e.Symbol, e.Path)
	}
	return nil
}
