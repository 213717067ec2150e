package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/GriffinCanCode/vcms/internal/testutil"
	"github.com/bytedance/sonic"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd.PersistentFlags())
	for _, sub := range rootCmd.Commands() {
		resetFlags(sub.Flags())
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores defaults between Execute calls; pflag keeps values
// and Changed marks for the life of the process.
func resetFlags(flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

func fixture(t *testing.T) string {
	t.Helper()
	root := testutil.Tree(t, map[string]string{
		"site.json":                `{"admin_email": "ops@example.com", "autoload": {"value": ["app"]}}`,
		"src/Vcms.Registry.php":    "<?php\n",
		"app/class.Widget.inc.php": "<?php\n",
	})
	testutil.Chdir(t, root)
	t.Setenv("LOG_LEVEL", "error")
	return root
}

func TestResolveCommand(t *testing.T) {
	root := fixture(t)

	out, err := run(t, "resolve", "--settings", "site.json", "--lib", "src", "Vcms.Registry")
	require.NoError(t, err)
	assert.Equal(t, "Vcms.Registry\t"+filepath.Join(root, "src", "Vcms.Registry.php")+"\n", out)
}

func TestResolveCommandSearch(t *testing.T) {
	root := fixture(t)

	out, err := run(t, "resolve", "--settings", "site.json", "--lib", "src", "Widget")
	assert.ErrorIs(t, err, errUnresolved)
	assert.Equal(t, "Widget\tnot found\n", out)

	out, err = run(t, "resolve", "--settings", "site.json", "--lib", "src", "--search", "Widget")
	require.NoError(t, err)
	assert.Equal(t, "Widget\t"+filepath.Join(root, "app", "class.Widget.inc.php")+"\n", out)
}

func TestResolveCommandUsesEnvironment(t *testing.T) {
	fixture(t)
	t.Setenv("VCMS_SETTINGS", "site.json")
	t.Setenv("VCMS_LIB_PATH", "src")

	out, err := run(t, "resolve", "Vcms-Registry")
	require.NoError(t, err)
	assert.Contains(t, out, "Vcms.Registry.php")
}

func TestDumpCommandJSON(t *testing.T) {
	fixture(t)

	out, err := run(t, "dump", "--settings", "site.json", "--lib", "src", "--json", "--index")
	require.NoError(t, err)

	var output dumpOutput
	require.NoError(t, sonic.ConfigStd.UnmarshalFromString(out, &output))

	keys := map[string]dumpEntry{}
	for _, e := range output.Registry {
		keys[e.Key] = e
	}
	require.Contains(t, keys, "admin_email")
	assert.Equal(t, []any{"ops@example.com"}, keys["admin_email"].Value)
	assert.True(t, keys["admin_email"].ReadOnly)
	assert.False(t, keys["autoload_search_enable"].ReadOnly)

	symbols := map[string]bool{}
	for _, e := range output.Index {
		symbols[e.Symbol] = true
	}
	assert.True(t, symbols["vcms-registry"])
	assert.True(t, symbols["class-widget-inc"])
}

func TestDumpCommandText(t *testing.T) {
	fixture(t)

	out, err := run(t, "dump", "--settings", "site.json", "--lib", "src")
	require.NoError(t, err)
	assert.Contains(t, out, "admin_email")
	assert.Contains(t, out, `["ops@example.com"]`)
}

func TestBootstrapCommand(t *testing.T) {
	root := fixture(t)

	out, err := run(t, "bootstrap", "--settings", "site.json", "--lib", "src")
	require.NoError(t, err)
	assert.Contains(t, out, "Bootstrap complete")
	assert.Contains(t, out, filepath.Join(root, "src"))
	assert.Contains(t, out, filepath.Join(root, "app"))
	assert.Contains(t, out, "Settings files:  1")
}

func TestBootstrapCommandFailure(t *testing.T) {
	fixture(t)

	_, err := run(t, "bootstrap", "--settings", "absent.json", "--lib", "src")
	require.Error(t, err)
}
