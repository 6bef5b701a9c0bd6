// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package motion

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// PreferenceMsg carries a changed reduced-motion preference into a Bubble Tea
// program.
type PreferenceMsg struct {
	Reduced bool
}

// =============================================================================
// DETECTOR
// =============================================================================

// Detector reports whether the user prefers reduced motion and notifies
// subscribers when that changes.
type Detector struct {
	mu      sync.Mutex
	sources []Source
	logger  *log.Logger
	current bool
	subs    map[uint64]*Subscription
	nextID  uint64

	watcher      *fsnotify.Watcher
	watchingDesk bool
	ctx          context.Context
	cancel       context.CancelFunc
}

// NewDetector creates a detector over the given sources and samples it once.
func NewDetector(logger *log.Logger, sources ...Source) *Detector {
	if logger == nil {
		logger = log.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	d := &Detector{
		sources: sources,
		logger:  logger,
		subs:    make(map[uint64]*Subscription),
		ctx:     ctx,
		cancel:  cancel,
	}
	d.current = d.query()
	return d
}

var (
	defaultMu       sync.Mutex
	defaultDetector *Detector
)

// Default returns the process-wide detector, creating it from the
// environment on first use.
func Default() *Detector {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultDetector == nil {
		defaultDetector = NewDetector(nil, DefaultSources(Options{Mode: ModeAuto})...)
	}
	return defaultDetector
}

// SetDefault installs d as the process-wide detector. It is meant to be
// called once at startup, before any component subscribes.
func SetDefault(d *Detector) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultDetector = d
}

// Current returns the last sampled preference.
func (d *Detector) Current() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

// query walks the sources in order; the first that answers wins.
func (d *Detector) query() bool {
	for _, src := range d.sources {
		reduced, ok, err := src.Query(d.ctx)
		if err != nil {
			d.logger.Warn("motion preference source failed", "source", src.Name(), "err", err)
			continue
		}
		if ok {
			d.logger.Debug("motion preference resolved", "source", src.Name(), "reduced", reduced)
			return reduced
		}
	}
	return false
}

// Refresh re-queries the sources and notifies subscribers on change.
// It returns the new value.
func (d *Detector) Refresh() bool {
	value := d.query()

	d.mu.Lock()
	changed := value != d.current
	d.current = value
	var subs []*Subscription
	if changed {
		subs = make([]*Subscription, 0, len(d.subs))
		for _, sub := range d.subs {
			subs = append(subs, sub)
		}
	}
	d.mu.Unlock()

	if changed {
		d.logger.Info("motion preference changed", "reduced", value)
		sort.Slice(subs, func(i, j int) bool { return subs[i].id < subs[j].id })
		for _, sub := range subs {
			// A callback may release a later subscription.
			if sub.released.Load() {
				continue
			}
			sub.fn(value)
		}
	}
	return value
}

// =============================================================================
// SUBSCRIPTIONS
// =============================================================================

// Subscription is a handle on a change callback.
type Subscription struct {
	d        *Detector
	id       uint64
	fn       func(bool)
	released atomic.Bool
	once     sync.Once
}

// Subscribe registers fn to be called with the new value on every change.
// Callbacks run in subscription order and may run on a watcher goroutine.
func (d *Detector) Subscribe(fn func(reduced bool)) *Subscription {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	sub := &Subscription{d: d, id: d.nextID, fn: fn}
	d.subs[sub.id] = sub
	return sub
}

// Release unregisters the callback. Once Release returns the callback is not
// started again, even by a notification already in progress. It is safe to
// call more than once.
func (s *Subscription) Release() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		s.released.Store(true)
		s.d.mu.Lock()
		delete(s.d.subs, s.id)
		s.d.mu.Unlock()
	})
}

// Subscribers returns the number of live subscriptions.
func (d *Detector) Subscribers() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.subs)
}

// =============================================================================
// FILE WATCHING
// =============================================================================

// Watch re-queries the sources whenever the preference file at path changes.
// The parent directory is watched so that atomic replaces are seen.
func (d *Detector) Watch(path string) error {
	d.mu.Lock()
	if d.watcher != nil {
		d.mu.Unlock()
		return fmt.Errorf("detector is already watching")
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		d.mu.Unlock()
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		d.mu.Unlock()
		_ = watcher.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}
	d.watcher = watcher
	d.mu.Unlock()

	go d.processEvents(watcher, filepath.Clean(path))
	return nil
}

func (d *Detector) processEvents(watcher *fsnotify.Watcher, path string) {
	for {
		select {
		case <-d.ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				d.Refresh()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			d.logger.Warn("motion preference watcher error", "err", err)
		}
	}
}

// =============================================================================
// DESKTOP WATCHING
// =============================================================================

// DefaultPollInterval is how often the sources are re-queried when the
// desktop setting cannot be streamed.
const DefaultPollInterval = 2 * time.Second

// WatchDesktop re-queries the sources whenever the desktop animation setting
// changes. It follows the change stream of src and falls back to polling
// every interval when the stream cannot be started or ends.
func (d *Detector) WatchDesktop(src DesktopSource, interval time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.watchingDesk {
		return fmt.Errorf("detector is already watching the desktop")
	}
	if d.ctx.Err() != nil {
		return fmt.Errorf("detector is closed")
	}
	d.watchingDesk = true
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	go d.followDesktop(src, interval)
	return nil
}

func (d *Detector) followDesktop(src DesktopSource, interval time.Duration) {
	err := d.monitorDesktop(src)
	if d.ctx.Err() != nil {
		return
	}
	d.logger.Debug("desktop monitor unavailable, polling", "err", err, "interval", interval)
	d.pollSources(interval)
}

// monitorDesktop refreshes once per line of the change stream. It returns
// when the stream ends or the detector is closed.
func (d *Detector) monitorDesktop(src DesktopSource) error {
	stream, err := src.monitor(d.ctx)
	if err != nil {
		return err
	}
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-d.ctx.Done():
			_ = stream.Close()
		case <-done:
			_ = stream.Close()
		}
	}()

	scanner := bufio.NewScanner(stream)
	for scanner.Scan() {
		if d.ctx.Err() != nil {
			return nil
		}
		d.Refresh()
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return errors.New("desktop monitor exited")
}

func (d *Detector) pollSources(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-d.ctx.Done():
			return
		case <-ticker.C:
			d.Refresh()
		}
	}
}

// Close stops the file and desktop watchers. Subscriptions stay registered
// but never fire again from watched changes.
func (d *Detector) Close() error {
	d.cancel()
	d.mu.Lock()
	watcher := d.watcher
	d.watcher = nil
	d.mu.Unlock()
	if watcher != nil {
		return watcher.Close()
	}
	return nil
}
