package validate

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zenGate-Global/palmyra-idcheck/platform/go/identifiers"
)

// ErrInvalidValues is returned when at least one value fails validation, so scripts can rely on the exit code.
var ErrInvalidValues = errors.New("invalid values")

type result struct {
	Line       int    `json:"line"`
	Kind       string `json:"kind"`
	Normalized string `json:"normalized"`
	Valid      bool   `json:"valid"`
	Reason     string `json:"reason"`
	Message    string `json:"message,omitempty"`
}

// Command validates identifiers given as arguments, or one per line on stdin when no arguments are passed.
func Command() *cobra.Command {
	var (
		kindName string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "validate [VALUE...]",
		Short: "Validate identifiers of one kind",
		Example: `  idcheck validate --kind dni 12345678Z
  cat tax-codes.txt | idcheck validate --kind cif --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := identifiers.ParseKind(kindName)
			if err != nil {
				return fmt.Errorf("%w (run 'idcheck kinds' for the list)", err)
			}

			values := args
			if len(values) == 0 {
				values, err = readLines(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
			}
			if len(values) == 0 {
				return errors.New("no values to validate")
			}

			results := make([]result, 0, len(values))
			invalid := 0
			for i, value := range values {
				checked := identifiers.Check(kind, value)
				r := result{
					Line:       i + 1,
					Kind:       kind.String(),
					Normalized: checked.Normalized,
					Valid:      checked.Valid(),
					Reason:     checked.Reason.String(),
				}
				if err := checked.Err(); err != nil {
					r.Message = err.Error()
					invalid++
				}
				results = append(results, r)
			}

			if asJSON {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				if err := encoder.Encode(results); err != nil {
					return err
				}
			} else if err := writeTable(cmd.OutOrStdout(), results); err != nil {
				return err
			}

			if invalid > 0 {
				return fmt.Errorf("%w: %d of %d", ErrInvalidValues, invalid, len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&kindName, "kind", "", "Identifier kind (dni, nie, personal-id, cif, nss, health-card, professional-license, regcess, email, phone)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	_ = cmd.MarkFlagRequired("kind")

	return cmd
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}

func writeTable(w io.Writer, results []result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tKIND\tNORMALIZED\tVALID\tREASON")
	for _, r := range results {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%t\t%s\n", r.Line, r.Kind, r.Normalized, r.Valid, r.Reason)
	}
	return tw.Flush()
}
