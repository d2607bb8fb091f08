/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package persist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"screendesigner/internal/domain"
)

// Client is the HTTP implementation of Gateway against the layout document
// server. Layout documents fetched from the server are validated against
// the embedded JSON schema before being adopted.
type Client struct {
	BaseURL string
	Token   string // bearer token
	client  *http.Client
}

// NewClient creates a new document-store client. baseURL may include a
// trailing slash; it will be normalized.
func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body any, dest any) error {
	u, err := url.Parse(c.BaseURL + path)
	if err != nil {
		return err
	}
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("server %s %s: %s", method, u.Path, resp.Status)
	}
	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(dest)
}

// FetchAllLayouts returns every tab in the user's document.
func (c *Client) FetchAllLayouts(ctx context.Context, userID string) (map[string]domain.Layout, error) {
	if userID == "" {
		return nil, ErrNoIdentity
	}
	var raw map[string]json.RawMessage
	path := fmt.Sprintf("/api/users/%s/layouts", url.PathEscape(userID))
	if err := c.do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	out := make(map[string]domain.Layout, len(raw))
	for tabID, doc := range raw {
		if err := ValidateLayoutDocument(doc); err != nil {
			return nil, fmt.Errorf("layout %s: %w", tabID, err)
		}
		var l domain.Layout
		if err := json.Unmarshal(doc, &l); err != nil {
			return nil, fmt.Errorf("layout %s: %w", tabID, err)
		}
		out[tabID] = l
	}
	return out, nil
}

// SaveLayout upserts one tab under its tabId key (merge-write; siblings
// are untouched).
func (c *Client) SaveLayout(ctx context.Context, userID string, layout domain.Layout) error {
	if userID == "" {
		return ErrNoIdentity
	}
	path := fmt.Sprintf("/api/users/%s/layouts/%s", url.PathEscape(userID), url.PathEscape(layout.TabID))
	return c.do(ctx, http.MethodPut, path, layout, nil)
}

// SaveAllLayouts replaces the user's whole document with exactly the given
// tabs. Callers must send the complete surviving set.
func (c *Client) SaveAllLayouts(ctx context.Context, userID string, layouts map[string]domain.Layout) error {
	if userID == "" {
		return ErrNoIdentity
	}
	path := fmt.Sprintf("/api/users/%s/layouts", url.PathEscape(userID))
	return c.do(ctx, http.MethodPut, path, layouts, nil)
}

// DeleteTab removes one tab key from the user's document.
func (c *Client) DeleteTab(ctx context.Context, userID, tabID string) error {
	if userID == "" {
		return ErrNoIdentity
	}
	path := fmt.Sprintf("/api/users/%s/layouts/%s", url.PathEscape(userID), url.PathEscape(tabID))
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
