// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for solutions and conversations.
package model

import (
	"strconv"
	"strings"
)

// =============================================================================
// CONFIDENCE
// =============================================================================

// Confidence is the ranking confidence attached to a solution.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Valid reports whether c is one of the three defined levels.
func (c Confidence) Valid() bool {
	switch c {
	case ConfidenceLow, ConfidenceMedium, ConfidenceHigh:
		return true
	}
	return false
}

// Label returns the badge text, e.g. "High Confidence".
func (c Confidence) Label() string {
	s := string(c)
	if s == "" {
		return "Confidence"
	}
	return strings.ToUpper(s[:1]) + s[1:] + " Confidence"
}

// =============================================================================
// STEP
// =============================================================================

// StepType is the semantic type of a diagnostic step.
type StepType string

const (
	StepNormal  StepType = "normal"
	StepWarning StepType = "warning"
	StepTip     StepType = "tip"
)

// Normalize maps the empty type to StepNormal.
func (t StepType) Normalize() StepType {
	if t == "" {
		return StepNormal
	}
	return t
}

// Valid reports whether t is a known step type (empty counts as normal).
func (t StepType) Valid() bool {
	switch t.Normalize() {
	case StepNormal, StepWarning, StepTip:
		return true
	}
	return false
}

// Step is one instruction in a solution's procedure.
type Step struct {
	Text string   `json:"text" yaml:"text"`
	Type StepType `json:"type,omitempty" yaml:"type,omitempty"`
	Bold bool     `json:"isBold,omitempty" yaml:"isBold,omitempty"`
}

// Kind returns the step type with the normal default applied.
func (s Step) Kind() StepType {
	return s.Type.Normalize()
}

// =============================================================================
// SOURCE
// =============================================================================

// Source cites the document a solution was drawn from.
type Source struct {
	Title    string `json:"title" yaml:"title"`
	Page     *int   `json:"page,omitempty" yaml:"page,omitempty"`
	Revision string `json:"revision,omitempty" yaml:"revision,omitempty"`
}

// Suffix returns the page and revision part of the citation, e.g. " p.247, Rev 2024.3".
func (s Source) Suffix() string {
	var b strings.Builder
	if s.Page != nil && *s.Page > 0 {
		b.WriteString(" p.")
		b.WriteString(strconv.Itoa(*s.Page))
	}
	if s.Revision != "" {
		b.WriteString(", Rev ")
		b.WriteString(s.Revision)
	}
	return b.String()
}

// Citation returns the full citation label.
func (s Source) Citation() string {
	return s.Title + s.Suffix()
}

// =============================================================================
// SOLUTION
// =============================================================================

// Solution is a ranked diagnostic answer. Solutions are supplied by the caller
// and never mutated by the UI.
type Solution struct {
	ID            string     `json:"id" yaml:"id"`
	Title         string     `json:"title" yaml:"title"`
	Confidence    Confidence `json:"confidence" yaml:"confidence"`
	Source        Source     `json:"source" yaml:"source"`
	Steps         []Step     `json:"steps" yaml:"steps"`
	ProcedureLink string     `json:"procedureLink,omitempty" yaml:"procedureLink,omitempty"`
}

// CopyText builds the plain-text rendition placed on the clipboard:
// the title, a blank line, then one bulleted line per step in order.
func (s Solution) CopyText() string {
	var b strings.Builder
	b.WriteString(s.Title)
	b.WriteString("\n\n")
	for i, step := range s.Steps {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("• ")
		b.WriteString(step.Text)
	}
	return b.String()
}

// IDs returns the solution ids in list order.
func IDs(solutions []Solution) []string {
	ids := make([]string, len(solutions))
	for i, s := range solutions {
		ids[i] = s.ID
	}
	return ids
}

// Find returns the solution with the given id.
func Find(solutions []Solution, id string) (Solution, bool) {
	for _, s := range solutions {
		if s.ID == id {
			return s, true
		}
	}
	return Solution{}, false
}

// IntPtr returns a pointer to n, for building Source values in code.
func IntPtr(n int) *int {
	return &n
}
