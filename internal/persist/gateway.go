/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package persist talks to the remote layout document store. Per-tab writes
// use merge semantics: saving or deleting one tab never touches sibling tabs
// in the same user document. SaveAllLayouts is the exception: it replaces
// the whole document.
package persist

import (
	"context"
	"errors"

	"screendesigner/internal/domain"
)

// ErrNoIdentity is returned when an operation is attempted without a user id.
var ErrNoIdentity = errors.New("persist: no user identity")

// Gateway is the document-store surface the layout store saves through.
type Gateway interface {
	// FetchAllLayouts returns the user's layouts keyed by tab id. A user
	// with no document yet yields an empty map, not an error.
	FetchAllLayouts(ctx context.Context, userID string) (map[string]domain.Layout, error)
	// SaveLayout upserts one tab within the user's document.
	SaveLayout(ctx context.Context, userID string, layout domain.Layout) error
	// SaveAllLayouts replaces the user's whole document with exactly the
	// given tabs; tabs absent from the map are removed on the server.
	SaveAllLayouts(ctx context.Context, userID string, layouts map[string]domain.Layout) error
	// DeleteTab removes exactly one tab key from the user's document.
	DeleteTab(ctx context.Context, userID string, tabID string) error
}
