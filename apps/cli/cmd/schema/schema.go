package schemacmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zenGate-Global/palmyra-idcheck/contracts"
	"github.com/zenGate-Global/palmyra-idcheck/platform/go/payloadschema"
)

// Command groups registration schema helpers.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Registration payload schemas (list, validate)",
	}

	cmd.AddCommand(listCommand())
	cmd.AddCommand(validateCommand())
	return cmd
}

func listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registration record types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			recordTypes, err := payloadschema.NewValidator(contracts.Registrations).RecordTypes()
			if err != nil {
				return fmt.Errorf("list record types: %w", err)
			}
			for _, recordType := range recordTypes {
				fmt.Fprintln(cmd.OutOrStdout(), recordType)
			}
			return nil
		},
	}
}

func validateCommand() *cobra.Command {
	var recordType string

	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Validate a registration payload file (use - for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := readPayload(cmd, args[0])
			if err != nil {
				return err
			}

			validator := payloadschema.NewValidator(contracts.Registrations)
			err = validator.Validate(context.Background(), strings.TrimSpace(recordType), payload)

			var violations *payloadschema.ViolationError
			switch {
			case err == nil:
				fmt.Fprintf(cmd.OutOrStdout(), "%s payload is valid\n", recordType)
				return nil
			case errors.As(err, &violations):
				writeViolations(cmd.OutOrStdout(), violations)
				return fmt.Errorf("%s payload is not valid", recordType)
			default:
				return err
			}
		},
	}

	cmd.Flags().StringVar(&recordType, "record-type", "", "Record type (organization, professional, patient)")
	_ = cmd.MarkFlagRequired("record-type")
	return cmd
}

func readPayload(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		payload, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return payload, nil
	}

	payload, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	return payload, nil
}

func writeViolations(w io.Writer, violations *payloadschema.ViolationError) {
	pointers := make([]string, 0, len(violations.Fields))
	for pointer := range violations.Fields {
		pointers = append(pointers, pointer)
	}
	sort.Strings(pointers)

	for _, pointer := range pointers {
		for _, message := range violations.Fields[pointer] {
			fmt.Fprintf(w, "%s: %s\n", pointer, message)
		}
	}
}
