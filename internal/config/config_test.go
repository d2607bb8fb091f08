/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"os"
	"testing"
)

// stubStore keeps tokens in memory so tests never touch the OS keyring.
type stubStore struct {
	values map[string]string
}

func (s *stubStore) Get(service, key string) (string, error) {
	v, ok := s.values[service+"/"+key]
	if !ok {
		return "", errors.New("not found")
	}
	return v, nil
}

func (s *stubStore) Set(service, key, value string) error {
	s.values[service+"/"+key] = value
	return nil
}

func (s *stubStore) Delete(service, key string) error {
	delete(s.values, service+"/"+key)
	return nil
}

func withStubKeyring(t *testing.T) *stubStore {
	t.Helper()
	old := tokenStore
	st := &stubStore{values: map[string]string{}}
	tokenStore = st
	t.Cleanup(func() { tokenStore = old })
	return st
}

func TestEnvOverridesBackendURL(t *testing.T) {
	withStubKeyring(t)
	old := os.Getenv(EnvBackendURL)
	_ = os.Setenv(EnvBackendURL, "https://example.test:8443")
	t.Cleanup(func() { _ = os.Setenv(EnvBackendURL, old) })
	cfg, _, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got, want := cfg.Backend.BaseURL, "https://example.test:8443"; got != want {
		t.Fatalf("Backend.BaseURL = %q, want %q", got, want)
	}
}

func TestEnvOverridesTelemetry(t *testing.T) {
	withStubKeyring(t)
	old := os.Getenv(EnvTelemetryOptIn)
	_ = os.Setenv(EnvTelemetryOptIn, "true")
	t.Cleanup(func() { _ = os.Setenv(EnvTelemetryOptIn, old) })
	cfg, _, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !cfg.General.TelemetryOptIn {
		t.Fatalf("General.TelemetryOptIn expected true from env override")
	}
}

func TestMergeIncludesEnableServer(t *testing.T) {
	dst := Defaults()
	src := Defaults()
	src.General.EnableServer = true
	mergeInto(&dst, &src)
	if !dst.General.EnableServer {
		t.Fatalf("EnableServer was not merged from file config")
	}
}

func TestMergeIncludesDesigner(t *testing.T) {
	dst := Defaults()
	src := Defaults()
	src.Designer.ZoomStep = 1.5
	src.Designer.GridSpacing = 0
	mergeInto(&dst, &src)
	if dst.Designer.ZoomStep != 1.5 {
		t.Fatalf("ZoomStep not merged: %#v", dst.Designer)
	}
	if dst.Designer.GridSpacing != 0 {
		t.Fatalf("GridSpacing zero (grid off) not merged: %#v", dst.Designer)
	}
}

func TestMergeRejectsDegenerateZoomStep(t *testing.T) {
	dst := Defaults()
	src := Defaults()
	src.Designer.ZoomStep = 0.5 // would invert zoom in/out
	mergeInto(&dst, &src)
	if dst.Designer.ZoomStep != Defaults().Designer.ZoomStep {
		t.Fatalf("degenerate zoom step accepted: %v", dst.Designer.ZoomStep)
	}
}

func TestMergeIncludesLogging(t *testing.T) {
	dst := Defaults()
	src := Defaults()
	src.Logging.Level = "debug"
	src.Logging.Format = "json"
	src.Logging.Source = true
	src.Logging.File = "/tmp/sdn.log"
	mergeInto(&dst, &src)
	if dst.Logging.Level != "debug" || dst.Logging.Format != "json" || !dst.Logging.Source || dst.Logging.File != "/tmp/sdn.log" {
		t.Fatalf("logging fields not merged correctly: %#v", dst.Logging)
	}
}

func TestEnvOverridesLogging(t *testing.T) {
	withStubKeyring(t)
	oldLevel := os.Getenv(EnvLogLevel)
	oldFmt := os.Getenv(EnvLogFormat)
	oldSrc := os.Getenv(EnvLogSource)
	oldFile := os.Getenv(EnvLogFile)
	_ = os.Setenv(EnvLogLevel, "error")
	_ = os.Setenv(EnvLogFormat, "json")
	_ = os.Setenv(EnvLogSource, "1")
	_ = os.Setenv(EnvLogFile, "/tmp/sdn-env.log")
	t.Cleanup(func() {
		_ = os.Setenv(EnvLogLevel, oldLevel)
		_ = os.Setenv(EnvLogFormat, oldFmt)
		_ = os.Setenv(EnvLogSource, oldSrc)
		_ = os.Setenv(EnvLogFile, oldFile)
	})
	cfg, _, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Logging.Level != "error" || cfg.Logging.Format != "json" || !cfg.Logging.Source || cfg.Logging.File != "/tmp/sdn-env.log" {
		t.Fatalf("env overrides not applied to logging: %#v", cfg.Logging)
	}
}

func TestTokenRoundTripsThroughStore(t *testing.T) {
	st := withStubKeyring(t)
	st.values[keyringService+"/"+keyringToken] = "tok-123"
	_, tok, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if tok != "tok-123" {
		t.Fatalf("token = %q, want tok-123", tok)
	}
}

func TestEnvOverrideFor(t *testing.T) {
	old := os.Getenv(EnvBackendURL)
	_ = os.Setenv(EnvBackendURL, "http://override:9999")
	t.Cleanup(func() { _ = os.Setenv(EnvBackendURL, old) })
	env, ok := EnvOverrideFor("backend.base_url")
	if !ok || env != EnvBackendURL {
		t.Fatalf("EnvOverrideFor = %q, %v", env, ok)
	}
	if _, ok := EnvOverrideFor("backend.unknown"); ok {
		t.Fatal("unknown key reported as overridden")
	}
}
