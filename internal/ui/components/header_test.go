// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/rigdiag/internal/ui/styles"
)

func newTestHeader() *Header {
	return NewHeader(styles.NewThemeFor(termenv.Ascii, true))
}

func TestNewHeader(t *testing.T) {
	h := newTestHeader()

	if h == nil {
		t.Fatal("NewHeader() returned nil")
	}
	if h.Title != "rigdiag" {
		t.Errorf("NewHeader() Title = %q, want %q", h.Title, "rigdiag")
	}
	if len(h.Badges()) != 0 {
		t.Errorf("NewHeader() Badges = %v, want none", h.Badges())
	}
}

func TestHeaderBadges(t *testing.T) {
	tests := []struct {
		name    string
		compact bool
		reduced bool
		want    []string
	}{
		{"none", false, false, nil},
		{"compact", true, false, []string{CompactBadge}},
		{"reduced", false, true, []string{ReducedMotionBadge}},
		{"both", true, true, []string{CompactBadge, ReducedMotionBadge}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestHeader()
			h.Compact = tc.compact
			h.ReducedMotion = tc.reduced
			got := h.Badges()
			if strings.Join(got, ",") != strings.Join(tc.want, ",") {
				t.Errorf("Badges() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestHeaderView_SingleRowWithinWidth(t *testing.T) {
	widths := []int{4, 20, 40, 80, 120}

	for _, w := range widths {
		h := newTestHeader()
		h.Subtitle = "maintenance diagnostics for the starboard main engine"
		h.Compact = true
		h.ReducedMotion = true
		h.SetWidth(w)

		view := h.View()
		if strings.Contains(view, "\n") {
			t.Errorf("width %d: header spans more than one row: %q", w, view)
		}
		if got := lipgloss.Width(view); got > w {
			t.Errorf("width %d: header is %d cells wide", w, got)
		}
	}
}

func TestHeaderView_Content(t *testing.T) {
	h := newTestHeader()
	h.Subtitle = "maintenance diagnostics"
	h.ReducedMotion = true
	h.SetWidth(80)

	view := h.View()
	for _, want := range []string{"rigdiag", "maintenance diagnostics", "[REDUCED MOTION]"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q: %q", want, view)
		}
	}
	if strings.Contains(view, CompactBadge) {
		t.Errorf("View() shows compact badge while not compact: %q", view)
	}
	if !strings.HasSuffix(strings.TrimRight(view, " "), "[REDUCED MOTION]") {
		t.Errorf("badge should be right-aligned: %q", view)
	}
}

func TestHeaderView_SubtitleGivesWayFirst(t *testing.T) {
	h := newTestHeader()
	h.Subtitle = "a very long subtitle that cannot possibly fit"
	h.Compact = true
	h.SetWidth(20)

	view := h.View()
	if !strings.Contains(view, "[COMPACT]") {
		t.Errorf("badge dropped before subtitle: %q", view)
	}
}
