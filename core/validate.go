package core

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/huangsam/docdiff/schema"
)

// validate is shared since validator caches struct metadata and is safe for concurrent use.
var validate = newValidator()

// newValidator reports field names using their JSON tags.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateReport checks a report at the boundary. Score ranges, operation tags,
// required identifiers, and total_comparisons == len(results) are enforced.
// A nil report yields schema.ErrNoReport.
func ValidateReport(report *schema.ComparisonReport) error {
	if report == nil {
		return schema.ErrNoReport
	}
	if err := validate.Struct(report); err != nil {
		return translateValidationError(err)
	}
	if report.TotalComparisons != len(report.Results) {
		reason := fmt.Sprintf("must equal the number of results (%d)", len(report.Results))
		return schema.NewContractViolation("total_comparisons", report.TotalComparisons, reason)
	}
	return nil
}

// ValidateRequest checks a compare request before it is sent.
func ValidateRequest(req schema.CompareRequest) error {
	if err := validate.Struct(req); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) && len(errs) > 0 {
			e := errs[0]
			return fmt.Errorf("invalid compare request: %s failed rule '%s' (received %v)", fieldPath(e), e.Tag(), e.Value())
		}
		return fmt.Errorf("invalid compare request: %w", err)
	}
	return nil
}

// translateValidationError maps validator failures to contract violations.
func translateValidationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("failed to validate report: %w", err)
	}
	violations := make([]error, 0, len(errs))
	for _, e := range errs {
		reason := fmt.Sprintf("failed rule '%s'", e.Tag())
		if e.Param() != "" {
			reason += fmt.Sprintf(" (expected: %s)", e.Param())
		}
		violations = append(violations, schema.NewContractViolation(fieldPath(e), e.Value(), reason))
	}
	return errors.Join(violations...)
}

// fieldPath drops the root struct name from the namespace.
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return ns
}
