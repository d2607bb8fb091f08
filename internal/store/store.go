/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"screendesigner/internal/domain"
	applog "screendesigner/internal/log"
	"screendesigner/internal/persist"
)

// LocalCache mirrors the last-known layouts on disk. Implemented by the
// cache package; nil disables mirroring.
type LocalCache interface {
	PutLayout(domain.Layout) error
	PutLayouts(map[string]domain.Layout) error
	DeleteTab(tabID string) error
	Layouts() (map[string]domain.Layout, error)
}

// Store owns the current State snapshot and pushes it to subscribers after
// every mutation. Mutations apply synchronously in memory; remote saves are
// fire-and-forget and debounced per tab, so a slow or failing network never
// blocks the next pointer event. A failed save surfaces later as State.Err
// without rolling the mutation back.
type Store struct {
	mu     sync.Mutex
	state  State
	subs   map[int]func(State)
	nextID int

	gw     persist.Gateway
	cache  LocalCache
	userID string

	saveDelay time.Duration
	timers    map[string]*time.Timer
	saves     sync.WaitGroup

	log *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithCache attaches a local layout mirror.
func WithCache(c LocalCache) Option { return func(s *Store) { s.cache = c } }

// WithSaveDelay overrides the per-tab save debounce window.
func WithSaveDelay(d time.Duration) Option { return func(s *Store) { s.saveDelay = d } }

// New creates a Store saving through gw under the given user identity.
func New(gw persist.Gateway, userID string, opts ...Option) *Store {
	s := &Store{
		state:     NewState(),
		subs:      map[int]func(State){},
		gw:        gw,
		userID:    userID,
		saveDelay: 250 * time.Millisecond,
		timers:    map[string]*time.Timer{},
		log:       applog.WithComponent("store"),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Snapshot returns the current immutable state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to receive every new snapshot. The returned
// function cancels the subscription.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// setState replaces the snapshot and notifies subscribers outside the lock
// so a subscriber may read the store re-entrantly.
func (s *Store) setState(next State) {
	s.mu.Lock()
	s.state = next
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(next)
	}
}

// Load fetches the user's layouts from the document store. On transport
// failure it falls back to the local cache so the designer still opens with
// the last-known screens; the fetch error stays visible on the state.
func (s *Store) Load(ctx context.Context) {
	s.setState(s.Snapshot().StartLoad())

	fetched, err := s.gw.FetchAllLayouts(ctx, s.userID)
	if err != nil {
		s.log.Error("load layouts failed", slog.Any("err", err))
		if s.cache != nil {
			if cached, cerr := s.cache.Layouts(); cerr == nil && len(cached) > 0 {
				s.log.Info("falling back to cached layouts", slog.Int("tabs", len(cached)))
				next := s.Snapshot().LoadLayouts(cached)
				next.Err = err.Error()
				s.setState(next)
				return
			}
		}
		s.setState(s.Snapshot().FailLoad(err.Error()))
		return
	}

	next := s.Snapshot().LoadLayouts(fetched)
	s.setState(next)
	if s.cache != nil {
		if cerr := s.cache.PutLayouts(next.Layouts); cerr != nil {
			s.log.Warn("cache mirror failed", slog.Any("err", cerr))
		}
	}
}

// AddWidget appends a widget to the active layout and returns it.
func (s *Store) AddWidget(typ string, x, y float64) domain.Widget {
	next, w := s.Snapshot().AddWidget(typ, x, y)
	s.setState(next)
	s.scheduleSave(next.ActiveTabID)
	return w
}

// MoveWidget updates a widget's position; stale ids are logged no-ops.
func (s *Store) MoveWidget(widgetID string, x, y float64) {
	next, ok := s.Snapshot().MoveWidget(widgetID, x, y)
	if !ok {
		s.log.Debug("moveWidget no-op", slog.String("widget_id", widgetID))
		return
	}
	s.setState(next)
	s.scheduleSave(next.ActiveTabID)
}

// ResizeWidget updates a widget's size; stale ids are logged no-ops.
func (s *Store) ResizeWidget(widgetID string, width, height float64) {
	next, ok := s.Snapshot().ResizeWidget(widgetID, width, height)
	if !ok {
		s.log.Debug("resizeWidget no-op", slog.String("widget_id", widgetID))
		return
	}
	s.setState(next)
	s.scheduleSave(next.ActiveTabID)
}

// DeleteWidget removes a widget from the active layout.
func (s *Store) DeleteWidget(widgetID string) {
	next, ok := s.Snapshot().DeleteWidget(widgetID)
	if !ok {
		s.log.Debug("deleteWidget no-op", slog.String("widget_id", widgetID))
		return
	}
	s.setState(next)
	s.scheduleSave(next.ActiveTabID)
}

// CreateTab inserts a fresh empty tab and returns its id.
func (s *Store) CreateTab(tabName string) string {
	tabID := uuid.NewString()
	next, ok := s.Snapshot().CreateTab(tabID, tabName)
	if !ok {
		s.log.Debug("createTab no-op", slog.String("tab_name", tabName))
		return ""
	}
	s.setState(next)
	s.scheduleSave(tabID)
	return tabID
}

// SwitchTab changes the active tab; no save is triggered.
func (s *Store) SwitchTab(tabID string) {
	next, ok := s.Snapshot().SwitchTab(tabID)
	if !ok {
		return
	}
	s.setState(next)
}

// RenameTab updates a tab's display name.
func (s *Store) RenameTab(tabID, newName string) {
	next, ok := s.Snapshot().RenameTab(tabID, newName)
	if !ok {
		s.log.Debug("renameTab no-op", slog.String("tab_id", tabID))
		return
	}
	s.setState(next)
	s.scheduleSave(tabID)
}

// DeleteTab removes a tab, never the last one. The remote delete and a
// consolidating save-all run fire-and-forget.
func (s *Store) DeleteTab(tabID string) {
	next, ok := s.Snapshot().DeleteTab(tabID)
	if !ok {
		s.log.Debug("deleteTab no-op", slog.String("tab_id", tabID))
		return
	}
	s.setState(next)

	if s.cache != nil {
		if err := s.cache.DeleteTab(tabID); err != nil {
			s.log.Warn("cache delete failed", slog.Any("err", err))
		}
	}
	s.saves.Add(1)
	go func() {
		defer s.saves.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.gw.DeleteTab(ctx, s.userID, tabID); err != nil {
			s.failSave(err)
			return
		}
		if err := s.gw.SaveAllLayouts(ctx, s.userID, next.Layouts); err != nil {
			s.failSave(err)
		}
	}()
}

// scheduleSave debounces the remote write for one tab. The cache mirror is
// updated immediately; only the network write is deferred.
func (s *Store) scheduleSave(tabID string) {
	if tabID == "" {
		return
	}
	if s.cache != nil {
		if l, ok := s.Snapshot().Layouts[tabID]; ok {
			if err := s.cache.PutLayout(l); err != nil {
				s.log.Warn("cache mirror failed", slog.Any("err", err))
			}
		}
	}

	s.mu.Lock()
	if t, ok := s.timers[tabID]; ok && t.Stop() {
		s.saves.Done()
	}
	s.saves.Add(1)
	s.timers[tabID] = time.AfterFunc(s.saveDelay, func() {
		defer s.saves.Done()
		s.saveTab(tabID)
	})
	s.mu.Unlock()
}

func (s *Store) saveTab(tabID string) {
	l, ok := s.Snapshot().Layouts[tabID]
	if !ok {
		// Deleted between schedule and fire; the delete path saved already.
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.gw.SaveLayout(ctx, s.userID, l); err != nil {
		s.failSave(err)
		return
	}
	s.log.Debug("layout saved", slog.String("tab_id", tabID))
}

func (s *Store) failSave(err error) {
	s.log.Error("save failed", slog.Any("err", err))
	s.setState(s.Snapshot().FailSave(err.Error()))
}

// Flush fires all pending debounced saves immediately and waits for
// in-flight writes. Used on shutdown.
func (s *Store) Flush() {
	s.mu.Lock()
	timers := s.timers
	s.timers = map[string]*time.Timer{}
	s.mu.Unlock()
	for tabID, t := range timers {
		if t.Stop() {
			// Timer had not fired yet; run its save now.
			s.saveTab(tabID)
			s.saves.Done()
		}
	}
	s.saves.Wait()
}
