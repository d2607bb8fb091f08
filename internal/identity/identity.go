/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package identity resolves the anonymous user id that keys all layouts on
// the backend. There is no login: a uuid is minted on first run and reused
// forever. It lives in the OS keyring, with a plain file fallback for
// systems without one (headless Linux, containers).
package identity

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/zalando/go-keyring"

	applog "screendesigner/internal/log"
)

const (
	keyringService = "ScreenDesigner"
	keyringUser    = "anonymous_user_id"
	fallbackFile   = "identity"
)

// Store abstracts the keyring so tests can stub it.
type Store interface {
	Get(service, key string) (string, error)
	Set(service, key, value string) error
}

type osKeyring struct{}

func (osKeyring) Get(service, key string) (string, error) { return keyring.Get(service, key) }
func (osKeyring) Set(service, key, value string) error    { return keyring.Set(service, key, value) }

// Resolver loads or mints the anonymous user id.
type Resolver struct {
	store   Store
	dataDir string
	log     *slog.Logger
}

// New creates a Resolver using the OS keyring, with dataDir holding the
// file fallback.
func New(dataDir string) *Resolver {
	return &Resolver{store: osKeyring{}, dataDir: dataDir, log: applog.WithComponent("identity")}
}

// NewWithStore creates a Resolver with an explicit keyring implementation.
func NewWithStore(store Store, dataDir string) *Resolver {
	return &Resolver{store: store, dataDir: dataDir, log: applog.WithComponent("identity")}
}

// UserID returns the stable anonymous user id, creating it on first call.
// Resolution order: keyring, fallback file, mint new. A freshly minted id
// is written to the keyring when possible, otherwise to the fallback file.
func (r *Resolver) UserID() (string, error) {
	if id, err := r.store.Get(keyringService, keyringUser); err == nil {
		if id = strings.TrimSpace(id); isValid(id) {
			return id, nil
		}
	}

	path := filepath.Join(r.dataDir, fallbackFile)
	if b, err := os.ReadFile(path); err == nil {
		if id := strings.TrimSpace(string(b)); isValid(id) {
			// Promote a file-resolved id into the keyring when it works now.
			if err := r.store.Set(keyringService, keyringUser, id); err == nil {
				r.log.Debug("identity promoted to keyring")
			}
			return id, nil
		}
	}

	id := uuid.NewString()
	if err := r.store.Set(keyringService, keyringUser, id); err != nil {
		r.log.Warn("keyring unavailable, using file fallback", slog.Any("err", err))
		if err := os.MkdirAll(r.dataDir, 0o755); err != nil {
			return "", err
		}
		if err := os.WriteFile(path, []byte(id+"\n"), 0o600); err != nil {
			return "", err
		}
	}
	r.log.Info("minted anonymous identity")
	return id, nil
}

func isValid(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
