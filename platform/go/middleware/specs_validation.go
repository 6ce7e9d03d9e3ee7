package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	oapimiddleware "github.com/oapi-codegen/nethttp-middleware"

	"github.com/zenGate-Global/palmyra-idcheck/platform/go/problemdetails"
)

// LoadContract parses and validates an embedded OpenAPI document.
func LoadContract(ctx context.Context, data []byte) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("load openapi contract: %w", err)
	}
	if err := spec.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi contract is invalid: %w", err)
	}
	return spec, nil
}

// ContractValidator rejects requests that do not match spec before they reach a handler.
// Rejections are rendered as problem documents; the offending value is never echoed back.
func ContractValidator(spec *openapi3.T) func(http.Handler) http.Handler {
	return oapimiddleware.OapiRequestValidatorWithOptions(spec, &oapimiddleware.Options{
		Options: openapi3filter.Options{
			AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		},
		SilenceServersWarning: true,
		ErrorHandler:          writeContractProblem,
	})
}

func writeContractProblem(w http.ResponseWriter, message string, statusCode int) {
	title := "Invalid request"
	problemType := problemdetails.TypeValidation
	if statusCode == http.StatusNotFound {
		title = "Resource not found"
		problemType = problemdetails.TypeNotFound
	}

	problemdetails.Write(w, problemdetails.New(title, contractDetail(message), problemType, statusCode, nil))
}

// contractDetail keeps the rule that failed and drops the part of the message quoting the input.
func contractDetail(message string) string {
	message = strings.TrimSpace(message)
	if i := strings.Index(message, "\nValue:"); i >= 0 {
		message = message[:i]
	}
	if i := strings.Index(message, "\n"); i >= 0 {
		message = message[:i]
	}
	return message
}
