package corporate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zenGate-Global/palmyra-idcheck/platform/go/identifiers"
)

// ErrNotCorporate is returned when the email domain does not belong to the organization.
var ErrNotCorporate = errors.New("email is not corporate")

// Command checks whether an email address belongs to an organization's domain.
func Command() *cobra.Command {
	var (
		email        string
		organization string
	)

	cmd := &cobra.Command{
		Use:   "corporate",
		Short: "Check that an email belongs to an organization",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(organization) == "" {
				return errors.New("--organization must not be empty")
			}

			fragment := identifiers.DomainFragment(organization)
			fmt.Fprintf(cmd.OutOrStdout(), "domain fragment: %s\n", fragment)

			if !identifiers.IsCorporateEmail(email, organization) {
				return ErrNotCorporate
			}
			fmt.Fprintln(cmd.OutOrStdout(), "corporate: yes")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address to check")
	cmd.Flags().StringVar(&organization, "organization", "", "Organization legal name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("organization")

	return cmd
}
