/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"screendesigner/internal/cache"
	"screendesigner/internal/config"
	"screendesigner/internal/crash"
	"screendesigner/internal/export"
	applog "screendesigner/internal/log"
	"screendesigner/internal/server"
	"screendesigner/internal/ui"
	"screendesigner/internal/version"
)

func usage() {
	fmt.Println("Screen Designer")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  screendesigner version|-v|--version    Show version")
	fmt.Println("  screendesigner ui                      Launch the designer (build with -tags fyne for full UI)")
	fmt.Println("  screendesigner serve                   Run the layout backend server")
	fmt.Println("  screendesigner export png <outDir>     Export cached layouts as PNG files")
	fmt.Println("  screendesigner export pdf <out.pdf>    Export cached layouts as one PDF")
}

func main() {
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("cli")
	dataDir, _ := config.DataDir()
	defer crash.Recover(dataDir, nil)

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) > 1 {
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println("Screen Designer")
			fmt.Println(version.String())
			return
		case "serve":
			l.Info("starting backend server")
			if err := server.Start(); err != nil {
				l.Error("server failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			return
		case "export":
			if len(args) < 4 {
				fmt.Println("export requires a format and an output path")
				usage()
				os.Exit(2)
			}
			if err := runExport(dataDir, args[2], args[3]); err != nil {
				l.Error("export failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			return
		case "ui":
			if err := ui.Run(); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			return
		}
		usage()
		os.Exit(2)
	}

	// No arguments launches the designer.
	if err := ui.Run(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}

// runExport renders the locally cached layouts; the designer mirrors every
// save there, so export works offline.
func runExport(dataDir, format, out string) error {
	c, err := cache.Open(dataDir)
	if err != nil {
		return fmt.Errorf("open layout cache: %w", err)
	}
	defer func() { _ = c.Close() }()
	layouts, err := c.Layouts()
	if err != nil {
		return err
	}
	if len(layouts) == 0 {
		return fmt.Errorf("no cached layouts; run the designer first")
	}

	switch format {
	case "png":
		ids := make([]string, 0, len(layouts))
		for id := range layouts {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			lay := layouts[id]
			name := filepath.Join(out, fmt.Sprintf("%s.png", lay.TabID))
			if err := export.ExportPNG(lay, name, export.PNGOptions{DrawLabels: true}); err != nil {
				return err
			}
			fmt.Println("Wrote", name)
		}
		return nil
	case "pdf":
		if err := export.ExportPDF(layouts, out, export.PDFOptions{DrawLabels: true, TitleBar: true}); err != nil {
			return err
		}
		fmt.Println("Wrote", out)
		return nil
	default:
		return fmt.Errorf("unknown export format %q (want png or pdf)", format)
	}
}
