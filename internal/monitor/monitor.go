// Package monitor validates incoming requests against a JSON schema before
// the semantic validator runs. It catches shape errors (missing fields,
// wrong types) and reports every violation at once, where the semantic
// validator stops at the first rule.
package monitor

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// generateRequestSchema is the contract for POST /generate. Value-level
// rules (positive amount, currency set, interval-iff-recurring, URL scheme)
// live in the checkout validator; the schema only pins the shape.
const generateRequestSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["amount", "currency", "type", "provider", "success_url", "cancel_url"],
  "properties": {
    "amount":      {"type": "number"},
    "currency":    {"type": "string"},
    "type":        {"type": "string"},
    "provider":    {"type": "string"},
    "interval":    {"type": "string"},
    "description": {"type": "string"},
    "success_url": {"type": "string"},
    "cancel_url":  {"type": "string"}
  }
}`

// ContractMonitor validates incoming request bodies against a JSON schema.
type ContractMonitor struct {
	schema *gojsonschema.Schema
}

// NewContractMonitor compiles the /generate request schema.
func NewContractMonitor() (*ContractMonitor, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(generateRequestSchema))
	if err != nil {
		return nil, fmt.Errorf("monitor: error compiling request schema: %w", err)
	}
	return &ContractMonitor{schema: schema}, nil
}

// Validate checks the given request body against the schema. It returns
// true if valid, or false and a list of validation errors if invalid.
func (cm *ContractMonitor) Validate(requestBody []byte) (bool, []string, error) {
	result, err := cm.schema.Validate(gojsonschema.NewBytesLoader(requestBody))
	if err != nil {
		return false, nil, fmt.Errorf("monitor: error during validation: %w", err)
	}

	if result.Valid() {
		return true, nil, nil
	}

	var errs []string
	for _, desc := range result.Errors() {
		errs = append(errs, desc.String())
	}
	return false, errs, nil
}

// FormatErrors joins a slice of validation error strings into one message.
func FormatErrors(validationErrors []string) string {
	if len(validationErrors) == 0 {
		return ""
	}
	return "Validation errors: " + strings.Join(validationErrors, "; ")
}
