// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"fmt"
	"strings"
)

// ValidationError describes one invalid field of a solution record.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// ValidateSolutions checks a solution list at the input boundary.
// Rendering partial records is never attempted; the whole list is rejected.
func ValidateSolutions(solutions []Solution) error {
	var errs ValidateErrors
	seen := make(map[string]int, len(solutions))

	for i, s := range solutions {
		field := func(name string) string {
			return fmt.Sprintf("solutions[%d].%s", i, name)
		}

		if strings.TrimSpace(s.ID) == "" {
			errs = append(errs, ValidationError{Field: field("id"), Message: "is required"})
		} else if prev, dup := seen[s.ID]; dup {
			errs = append(errs, ValidationError{
				Field:   field("id"),
				Message: fmt.Sprintf("duplicate id %q (also used by solutions[%d])", s.ID, prev),
			})
		} else {
			seen[s.ID] = i
		}

		if strings.TrimSpace(s.Title) == "" {
			errs = append(errs, ValidationError{Field: field("title"), Message: "is required"})
		}
		if !s.Confidence.Valid() {
			errs = append(errs, ValidationError{
				Field:   field("confidence"),
				Message: fmt.Sprintf("invalid level %q, must be one of: low, medium, high", s.Confidence),
			})
		}
		if strings.TrimSpace(s.Source.Title) == "" {
			errs = append(errs, ValidationError{Field: field("source.title"), Message: "is required"})
		}
		if s.Source.Page != nil && *s.Source.Page <= 0 {
			errs = append(errs, ValidationError{
				Field:   field("source.page"),
				Message: fmt.Sprintf("must be positive, got %d", *s.Source.Page),
			})
		}

		for j, step := range s.Steps {
			if strings.TrimSpace(step.Text) == "" {
				errs = append(errs, ValidationError{
					Field:   field(fmt.Sprintf("steps[%d].text", j)),
					Message: "is required",
				})
			}
			if !step.Type.Valid() {
				errs = append(errs, ValidationError{
					Field:   field(fmt.Sprintf("steps[%d].type", j)),
					Message: fmt.Sprintf("invalid type %q, must be one of: warning, tip, normal", step.Type),
				})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
