// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the rigdiag TUI.
package components

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/jeranaias/rigdiag/internal/disclosure"
	"github.com/jeranaias/rigdiag/internal/model"
	"github.com/jeranaias/rigdiag/internal/motion"
	"github.com/jeranaias/rigdiag/internal/ui/styles"
	"github.com/jeranaias/rigdiag/internal/util"
)

// =============================================================================
// MESSAGES
// =============================================================================

// FrameMsg advances card animations of one list.
type FrameMsg struct {
	ListID string
	Time   time.Time
}

// CopyResultMsg reports the outcome of a copy action.
type CopyResultMsg struct {
	ListID     string
	SolutionID string
	Err        error
}

// ProcedureMsg asks the owner to show the full procedure of a solution.
type ProcedureMsg struct {
	Solution model.Solution
}

type noticeExpiredMsg struct {
	ListID string
	Seq    int
}

// =============================================================================
// OPTIONS
// =============================================================================

// Clock returns the current time. Tests inject a fake one.
type Clock func() time.Time

// SolutionListOptions configures a SolutionList.
type SolutionListOptions struct {
	Theme          *styles.Theme
	Logger         *log.Logger
	Clipboard      Clipboard
	Clock          Clock
	FPS            int
	TruncateLength int
	ReducedMotion  bool
	Compact        bool
	Width          int
}

const (
	defaultFPS     = 60
	defaultWidth   = 80
	noticeDuration = 2 * time.Second
)

// =============================================================================
// SOLUTION LIST
// =============================================================================

// SolutionList renders ranked solution cards with independent expand and
// collapse. The first card starts expanded. It is driven by a single Bubble
// Tea event loop and is not safe for concurrent use.
type SolutionList struct {
	id          string
	solutions   []model.Solution
	store       *disclosure.Set
	transitions map[string]*motion.Transition

	spec    motion.PhaseSpec
	compact bool
	focus   int
	focused bool
	width   int

	theme          *styles.Theme
	logger         *log.Logger
	clipboard      Clipboard
	now            Clock
	fps            int
	truncateLength int
	keys           SolutionKeyMap

	ticking   bool
	notice    string
	noticeErr bool
	noticeSeq int

	sub *motion.Subscription
}

// NewSolutionList creates a card list. Malformed solutions must be rejected
// before this point with model.ValidateSolutions.
func NewSolutionList(solutions []model.Solution, opts SolutionListOptions) *SolutionList {
	l := &SolutionList{
		id:             uuid.NewString(),
		transitions:    make(map[string]*motion.Transition),
		spec:           motion.Resolve(opts.ReducedMotion),
		compact:        opts.Compact,
		focused:        true,
		width:          opts.Width,
		theme:          opts.Theme,
		logger:         opts.Logger,
		clipboard:      opts.Clipboard,
		now:            opts.Clock,
		fps:            opts.FPS,
		truncateLength: opts.TruncateLength,
		keys:           DefaultSolutionKeyMap(),
	}
	if l.theme == nil {
		l.theme = styles.NewTheme()
	}
	if l.logger == nil {
		l.logger = log.Default()
	}
	if l.clipboard == nil {
		l.clipboard = SystemClipboard{}
	}
	if l.now == nil {
		l.now = time.Now
	}
	if l.fps <= 0 {
		l.fps = defaultFPS
	}
	if l.truncateLength <= 0 {
		l.truncateLength = util.DefaultTruncateLength
	}
	if l.width <= 0 {
		l.width = defaultWidth
	}
	l.theme.SetCompact(l.compact)

	l.store = disclosure.New(model.IDs(solutions))
	l.SetSolutions(solutions)
	return l
}

// ID returns the list instance id carried by its messages.
func (l *SolutionList) ID() string {
	return l.id
}

// Solutions returns the current list.
func (l *SolutionList) Solutions() []model.Solution {
	return l.solutions
}

// KeyMap returns the list's key bindings for help rendering.
func (l *SolutionList) KeyMap() SolutionKeyMap {
	return l.keys
}

// SetSolutions replaces the list. Expansion of surviving ids is kept, ids no
// longer present are dropped.
func (l *SolutionList) SetSolutions(solutions []model.Solution) {
	l.solutions = solutions
	ids := model.IDs(solutions)
	l.store.Reconcile(ids)

	present := make(map[string]struct{}, len(ids))
	for _, s := range solutions {
		present[s.ID] = struct{}{}
		if tr, ok := l.transitions[s.ID]; ok {
			tr.SetSteps(len(s.Steps))
			continue
		}
		tr, err := motion.NewTransition(l.store.IsExpanded(s.ID), len(s.Steps), l.spec)
		if err != nil {
			l.logger.Error("failed to build card transition", "solution", s.ID, "err", err)
			continue
		}
		l.transitions[s.ID] = tr
	}
	for id, tr := range l.transitions {
		if _, ok := present[id]; !ok {
			tr.Close()
			delete(l.transitions, id)
		}
	}

	if l.focus >= len(solutions) {
		l.focus = len(solutions) - 1
	}
	if l.focus < 0 {
		l.focus = 0
	}
}

// IsExpanded reports whether a card is expanded.
func (l *SolutionList) IsExpanded(id string) bool {
	return l.store.IsExpanded(id)
}

// Expanded returns the expanded ids in list order.
func (l *SolutionList) Expanded() []string {
	return l.store.Expanded()
}

// Phase returns the motion phase of a card.
func (l *SolutionList) Phase(id string) motion.Phase {
	if tr, ok := l.transitions[id]; ok {
		return tr.Phase()
	}
	return motion.PhaseCollapsed
}

// Frame samples the visual state of a card now.
func (l *SolutionList) Frame(id string) motion.Frame {
	if tr, ok := l.transitions[id]; ok {
		return tr.Sample(l.now())
	}
	return motion.Frame{}
}

// Focus returns the index of the focused card.
func (l *SolutionList) Focus() int {
	return l.focus
}

// SetFocused toggles whether the list draws a focus ring.
func (l *SolutionList) SetFocused(focused bool) {
	l.focused = focused
}

// SetWidth sets the render width in cells.
func (l *SolutionList) SetWidth(width int) {
	if width > 0 {
		l.width = width
	}
}

// SetCompact switches the compact layout. It changes layout and truncation
// only; expansion and motion are untouched.
func (l *SolutionList) SetCompact(compact bool) {
	l.compact = compact
	l.theme.SetCompact(compact)
}

// Compact reports whether the compact layout is active.
func (l *SolutionList) Compact() bool {
	return l.compact
}

// ReducedMotion reports the motion branch in use.
func (l *SolutionList) ReducedMotion() bool {
	return l.spec.Reduced
}

// SetReducedMotion switches the motion branch for every card without
// remounting. In-flight transitions continue from their current frame, or
// settle at once under reduced motion.
func (l *SolutionList) SetReducedMotion(reduced bool) tea.Cmd {
	if reduced == l.spec.Reduced {
		return nil
	}
	l.spec = motion.Resolve(reduced)
	now := l.now()
	for _, tr := range l.transitions {
		tr.SetSpec(l.spec, now)
	}
	l.logger.Info("card motion updated", "reduced", reduced)
	return l.scheduleFrame()
}

// Notice returns the transient status line and whether it reports an error.
func (l *SolutionList) Notice() (string, bool) {
	return l.notice, l.noticeErr
}

// =============================================================================
// PREFERENCE SUBSCRIPTION
// =============================================================================

// Watch adopts the detector's current preference and forwards later changes
// through send, usually tea.Program.Send. Call Close to release it.
func (l *SolutionList) Watch(d *motion.Detector, send func(tea.Msg)) tea.Cmd {
	if d == nil {
		return nil
	}
	l.sub.Release()
	l.sub = d.Subscribe(func(reduced bool) {
		if send != nil {
			send(motion.PreferenceMsg{Reduced: reduced})
		}
	})
	return l.SetReducedMotion(d.Current())
}

// Close releases the preference subscription and stops every card machine.
// It is safe to call more than once.
func (l *SolutionList) Close() {
	l.sub.Release()
	l.sub = nil
	for id, tr := range l.transitions {
		tr.Close()
		delete(l.transitions, id)
	}
}

// =============================================================================
// ACTIONS
// =============================================================================

// Toggle flips one card. Unknown ids are ignored.
func (l *SolutionList) Toggle(id string) tea.Cmd {
	tr, ok := l.transitions[id]
	if !ok {
		return nil
	}
	expanded := l.store.Toggle(id)
	if tr.Expanded() != expanded {
		tr.Toggle(l.now())
	}
	l.logger.Debug("card toggled", "solution", id, "expanded", expanded, "phase", tr.Phase())
	return l.scheduleFrame()
}

// Copy writes the plain-text rendition of a card to the clipboard. It never
// changes expansion.
func (l *SolutionList) Copy(id string) tea.Cmd {
	sol, ok := model.Find(l.solutions, id)
	if !ok {
		return nil
	}
	text := sol.CopyText()
	cb := l.clipboard
	listID := l.id
	return func() tea.Msg {
		return CopyResultMsg{ListID: listID, SolutionID: id, Err: cb.WriteAll(text)}
	}
}

// OpenProcedure asks the owner to show the full procedure of a card.
func (l *SolutionList) OpenProcedure(id string) tea.Cmd {
	sol, ok := model.Find(l.solutions, id)
	if !ok {
		return nil
	}
	return func() tea.Msg {
		return ProcedureMsg{Solution: sol}
	}
}

func (l *SolutionList) focusedID() (string, bool) {
	if l.focus < 0 || l.focus >= len(l.solutions) {
		return "", false
	}
	return l.solutions[l.focus].ID, true
}

func (l *SolutionList) moveFocus(delta int) {
	n := len(l.solutions)
	if n == 0 {
		return
	}
	l.focus = (l.focus + delta + n) % n
}

// scheduleFrame starts the frame ticker if any card is animating.
func (l *SolutionList) scheduleFrame() tea.Cmd {
	if l.ticking || !l.animating() {
		return nil
	}
	l.ticking = true
	return l.tick()
}

func (l *SolutionList) tick() tea.Cmd {
	listID := l.id
	return tea.Tick(time.Second/time.Duration(l.fps), func(t time.Time) tea.Msg {
		return FrameMsg{ListID: listID, Time: t}
	})
}

func (l *SolutionList) animating() bool {
	for _, tr := range l.transitions {
		if tr.Animating() {
			return true
		}
	}
	return false
}

// advance settles finished transitions and reports whether any is running.
func (l *SolutionList) advance() bool {
	now := l.now()
	running := false
	for _, tr := range l.transitions {
		if tr.Advance(now) {
			running = true
		}
	}
	return running
}

func (l *SolutionList) setNotice(text string, isErr bool) tea.Cmd {
	l.notice = text
	l.noticeErr = isErr
	l.noticeSeq++
	seq := l.noticeSeq
	listID := l.id
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return noticeExpiredMsg{ListID: listID, Seq: seq}
	})
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages. Mouse coordinates are relative to the list's top
// left corner; the owner translates them.
func (l *SolutionList) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case FrameMsg:
		if msg.ListID != l.id {
			return nil
		}
		if l.advance() {
			return l.tick()
		}
		l.ticking = false
		return nil

	case motion.PreferenceMsg:
		return l.SetReducedMotion(msg.Reduced)

	case CopyResultMsg:
		if msg.ListID != l.id {
			return nil
		}
		if msg.Err != nil {
			l.logger.Warn("clipboard write failed", "solution", msg.SolutionID, "err", msg.Err)
			return l.setNotice("Copy failed: "+msg.Err.Error(), true)
		}
		return l.setNotice("Copied to clipboard", false)

	case noticeExpiredMsg:
		if msg.ListID == l.id && msg.Seq == l.noticeSeq {
			l.notice = ""
			l.noticeErr = false
		}
		return nil

	case tea.MouseMsg:
		if msg.Type != tea.MouseLeft {
			return nil
		}
		return l.Click(msg.X, msg.Y)

	case tea.KeyMsg:
		return l.handleKey(msg)
	}
	return nil
}

func (l *SolutionList) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, l.keys.Up), key.Matches(msg, l.keys.Prev):
		l.moveFocus(-1)
	case key.Matches(msg, l.keys.Down), key.Matches(msg, l.keys.Next):
		l.moveFocus(1)
	case key.Matches(msg, l.keys.Toggle):
		if id, ok := l.focusedID(); ok {
			return l.Toggle(id)
		}
	case key.Matches(msg, l.keys.Copy):
		if id, ok := l.focusedID(); ok && l.store.IsExpanded(id) {
			return l.Copy(id)
		}
	case key.Matches(msg, l.keys.Procedure):
		if id, ok := l.focusedID(); ok && l.store.IsExpanded(id) {
			return l.OpenProcedure(id)
		}
	}
	return nil
}

// Click handles a press at list coordinates (x, y). The copy control is
// tested first so that it never toggles its card.
func (l *SolutionList) Click(x, y int) tea.Cmd {
	hit, ok := l.layout().hitTest(x, y)
	if !ok {
		return nil
	}
	l.focus = hit.index
	switch hit.kind {
	case regionCopy:
		return l.Copy(hit.id)
	case regionProcedure:
		return l.OpenProcedure(hit.id)
	case regionHeader:
		return l.Toggle(hit.id)
	}
	return nil
}
