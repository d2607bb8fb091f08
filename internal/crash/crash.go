/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package crash turns a panic into a crash report file plus a last-chance
// autosave of the in-memory layouts, then exits non-zero.
package crash

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"

	"screendesigner/internal/domain"
	applog "screendesigner/internal/log"
	"screendesigner/internal/telemetry"
	"screendesigner/internal/version"
)

// exitFn is swapped in tests so Recover does not terminate the test process.
var exitFn = os.Exit

// Recover captures a panic, logs it with its stacktrace, writes a report
// file under dataDir, and dumps the layouts returned by snapshot (may be
// nil) next to it so nothing drawn is lost.
//
// Usage: defer crash.Recover(dataDir, func() map[string]domain.Layout {
//	return st.Snapshot().Layouts
// })
func Recover(dataDir string, snapshot func() map[string]domain.Layout) {
	if r := recover(); r != nil {
		l := applog.WithComponent("crash")
		stack := debug.Stack()
		l.Error("panic recovered", slog.Any("panic", r), slog.String("stack", string(stack)))

		reportPath, _ := writeReport(dataDir, r, stack)
		if snapshot != nil {
			if path, err := autosaveLayouts(dataDir, snapshot()); err != nil {
				l.Error("layout autosave failed", slog.Any("err", err))
			} else {
				l.Info("layout autosave written", slog.String("path", path))
			}
		}

		fmt.Fprintf(os.Stderr, "A fatal error occurred. A crash report was saved to: %s\n", reportPath)
		fmt.Fprintf(os.Stderr, "Version: %s\nOS/Arch: %s/%s\n", version.String(), runtime.GOOS, runtime.GOARCH)
		exitFn(2)
	}
}

func writeReport(dataDir string, panicVal any, stack []byte) (string, error) {
	dir := os.TempDir()
	if dataDir != "" {
		dir = filepath.Join(dataDir, "crash")
		_ = os.MkdirAll(dir, 0o755)
	}
	stamp := time.Now().Format("20060102-150405")
	path := filepath.Join(dir, fmt.Sprintf("crash-%s.log", stamp))

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Screen Designer Crash Report\n")
	fmt.Fprintf(&buf, "Timestamp: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(&buf, "Version: %s\n", version.String())
	fmt.Fprintf(&buf, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(&buf, "\nPanic: %v\n\n", panicVal)
	fmt.Fprintf(&buf, "Stack:\n%s\n", string(stack))

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return path, err
	}

	// optionally upload anonymized crash report (opt-in via env)
	telemetry.UploadCrash(buf.Bytes())
	return path, nil
}

// autosaveLayouts dumps the layouts as JSON so a user can recover work
// after a crash even if the last debounced save never fired.
func autosaveLayouts(dataDir string, layouts map[string]domain.Layout) (string, error) {
	dir := os.TempDir()
	if dataDir != "" {
		dir = filepath.Join(dataDir, "crash")
		_ = os.MkdirAll(dir, 0o755)
	}
	stamp := time.Now().Format("20060102-150405")
	path := filepath.Join(dir, fmt.Sprintf("layouts-autosave-%s.json", stamp))
	b, err := json.MarshalIndent(layouts, "", "  ")
	if err != nil {
		return path, err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return path, err
	}
	return path, nil
}
