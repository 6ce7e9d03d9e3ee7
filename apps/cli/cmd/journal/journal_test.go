package journal

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := Command()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestJournalSubcommands(t *testing.T) {
	t.Parallel()

	cmd := Command()
	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	require.ElementsMatch(t, []string{"bootstrap", "list"}, names)

	flag := cmd.PersistentFlags().Lookup("database-url")
	require.NotNil(t, flag)
	require.Equal(t, []string{"true"}, flag.Annotations[cobra.BashCompOneRequiredFlag])
}

func TestJournalListFlagDefaults(t *testing.T) {
	t.Parallel()

	list, _, err := Command().Find([]string{"list"})
	require.NoError(t, err)
	require.Equal(t, "list", list.Name())

	for flag, want := range map[string]string{"kind": "", "page": "1", "page-size": "20"} {
		f := list.Flags().Lookup(flag)
		require.NotNil(t, f, flag)
		require.Equal(t, want, f.DefValue, flag)
	}
}

func TestJournalRequiresDatabaseURL(t *testing.T) {
	t.Parallel()

	for _, sub := range []string{"bootstrap", "list"} {
		sub := sub
		t.Run(sub, func(t *testing.T) {
			t.Parallel()

			_, err := run(t, sub)
			require.Error(t, err)
			require.Contains(t, err.Error(), "database-url")
		})
	}
}

func TestJournalRejectsUnusableDatabaseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{name: "bootstrap empty", args: []string{"bootstrap", "--database-url", ""}},
		{name: "list empty", args: []string{"list", "--database-url", ""}},
		{name: "bootstrap bad port", args: []string{"bootstrap", "--database-url", "host=localhost port=notaport"}},
		{name: "list bad port", args: []string{"list", "--database-url", "host=localhost port=notaport", "--kind", "dni"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := run(t, tt.args...)
			require.Error(t, err)
			require.Contains(t, err.Error(), "init pool")
			require.NotContains(t, out, "is ready")
		})
	}
}

func TestJournalRejectsPositionalArgs(t *testing.T) {
	t.Parallel()

	_, err := run(t, "bootstrap", "--database-url", "postgres://localhost/db", "extra")
	require.Error(t, err)
}
