package kinds

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zenGate-Global/palmyra-idcheck/platform/go/identifiers"
)

// Command lists the supported identifier kinds.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List supported identifier kinds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tLABEL\tCHECKSUM")
			for _, kind := range identifiers.Kinds() {
				fmt.Fprintf(tw, "%s\t%s\t%t\n", kind.String(), kind.Label(), kind.HasChecksum())
			}
			return tw.Flush()
		},
	}
}
