package payloadschema

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/zenGate-Global/palmyra-idcheck/contracts"
)

func TestRecordTypes(t *testing.T) {
	t.Parallel()

	types, err := NewValidator(contracts.Registrations).RecordTypes()
	require.NoError(t, err)
	require.Equal(t, []string{"organization", "patient", "professional"}, types)
}

func TestValidateOrganization(t *testing.T) {
	t.Parallel()

	v := NewValidator(contracts.Registrations)

	tests := []struct {
		name        string
		payload     string
		wantFields  []string
		expectValid bool
	}{
		{
			name:        "valid organization",
			payload:     `{"name":"Clínica Salud Norte","taxCode":"A58818501","email":"info@clinicasaludnorte.es","phone":"+34 912 345 678"}`,
			expectValid: true,
		},
		{
			name:        "separators accepted in identifiers",
			payload:     `{"name":"Ayuntamiento","taxCode":"q-2826000-h","email":"sede@madrid.es","phone":"912345678","legalRepresentativeId":"12.345.678-Z"}`,
			expectValid: true,
		},
		{
			name:       "bad checksum",
			payload:    `{"name":"Clínica","taxCode":"A58818502","email":"info@clinica.es","phone":"612345678"}`,
			wantFields: []string{"/taxCode"},
		},
		{
			name:       "bad phone and email",
			payload:    `{"name":"Clínica","taxCode":"A58818501","email":"not-an-email","phone":"512345678"}`,
			wantFields: []string{"/email", "/phone"},
		},
		{
			name:       "missing required",
			payload:    `{"name":"Clínica"}`,
			wantFields: []string{"/"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := v.Validate(context.Background(), "organization", []byte(tt.payload))
			if tt.expectValid {
				require.NoError(t, err)
				return
			}

			var violations *ViolationError
			require.True(t, errors.As(err, &violations), "unexpected error %v", err)
			for _, field := range tt.wantFields {
				require.Contains(t, violations.Fields, field)
				for _, msg := range violations.Fields[field] {
					require.NotContains(t, msg, "A58818502")
				}
			}
		})
	}
}

func TestValidatePatientAndProfessional(t *testing.T) {
	t.Parallel()

	v := NewValidator(contracts.Registrations)

	require.NoError(t, v.Validate(context.Background(), "patient",
		[]byte(`{"fullName":"Ana Pérez","personalId":"X1234567L","healthCardNumber":"BBBB123456789012"}`)))
	require.NoError(t, v.Validate(context.Background(), "professional",
		[]byte(`{"fullName":"Luis Gómez","personalId":"12345678Z","licenseNumber":"282801234","email":"luis@example.com","socialSecurityNumber":"28 12345678 40"}`)))

	err := v.Validate(context.Background(), "patient",
		[]byte(`{"fullName":"Ana Pérez","personalId":"X1234567A","healthCardNumber":"short"}`))
	var violations *ViolationError
	require.True(t, errors.As(err, &violations))
	require.Contains(t, violations.Fields, "/personalId")
	require.Contains(t, violations.Fields, "/healthCardNumber")
}

func TestValidateErrors(t *testing.T) {
	t.Parallel()

	v := NewValidator(contracts.Registrations)

	err := v.Validate(context.Background(), "vehicle", []byte(`{}`))
	require.ErrorIs(t, err, ErrUnknownRecordType)

	err = v.Validate(context.Background(), "../organization", []byte(`{}`))
	require.ErrorIs(t, err, ErrUnknownRecordType)

	err = v.Validate(context.Background(), "organization", nil)
	require.ErrorIs(t, err, ErrMalformedPayload)

	err = v.Validate(context.Background(), "organization", []byte(`{"name":`))
	require.ErrorIs(t, err, ErrMalformedPayload)
	var violations *ViolationError
	require.False(t, errors.As(err, &violations))
}

func TestValidateCustomSource(t *testing.T) {
	t.Parallel()

	source := fstest.MapFS{
		"registrations/supplier.schema.json": &fstest.MapFile{Data: []byte(`{
			"type": "object",
			"required": ["cif"],
			"properties": {"cif": {"type": "string", "format": "es-cif"}}
		}`)},
	}
	v := NewValidator(source)

	types, err := v.RecordTypes()
	require.NoError(t, err)
	require.Equal(t, []string{"supplier"}, types)

	require.NoError(t, v.Validate(context.Background(), "supplier", []byte(`{"cif":"B12345674"}`)))
	require.Error(t, v.Validate(context.Background(), "supplier", []byte(`{"cif":"B1234567D"}`)))
}
