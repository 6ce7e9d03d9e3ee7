package validate

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zenGate-Global/palmyra-idcheck/platform/go/identifiers"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := Command()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestValidateArgs(t *testing.T) {
	t.Parallel()

	out, err := run(t, "", "--kind", "dni", "12345678Z", "12.345.678-z")
	require.NoError(t, err)
	require.Contains(t, out, "NORMALIZED")
	require.Equal(t, 2, strings.Count(out, "12345678Z"))
}

func TestValidateReportsInvalid(t *testing.T) {
	t.Parallel()

	out, err := run(t, "", "--kind", "cif", "A58818501", "A58818500")
	require.ErrorIs(t, err, ErrInvalidValues)
	require.Contains(t, err.Error(), "1 of 2")
	require.Contains(t, out, "checksum_mismatch")
}

func TestValidateStdinJSON(t *testing.T) {
	t.Parallel()

	out, err := run(t, "X1234567L\n\n  Z1234567R \n", "--kind", "nie", "--json")
	require.NoError(t, err)

	var results []result
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	require.Equal(t, 2, results[1].Line)
	require.Equal(t, "Z1234567R", results[1].Normalized)
	require.True(t, results[1].Valid)
}

func TestValidateUnknownKind(t *testing.T) {
	t.Parallel()

	_, err := run(t, "", "--kind", "passport", "AB123")
	require.ErrorIs(t, err, identifiers.ErrUnknownKind)
}

func TestValidateNoValues(t *testing.T) {
	t.Parallel()

	_, err := run(t, "\n", "--kind", "dni")
	require.EqualError(t, err, "no values to validate")
}

func TestValidateRequiresKind(t *testing.T) {
	t.Parallel()

	_, err := run(t, "", "12345678Z")
	require.Error(t, err)
}
