/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"anchorkit/internal/config"
	"anchorkit/internal/crash"
	applog "anchorkit/internal/log"
	"anchorkit/internal/profile"
	"anchorkit/internal/ui"
	"anchorkit/internal/version"
)

func usage() {
	fmt.Println("AnchorKit — anchored overlay positioning")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  anchorkit version|-v|--version               Show version")
	fmt.Println("  anchorkit profiles list                      List stored placement profiles")
	fmt.Println("  anchorkit profiles export <name>             Print a profile as JSON")
	fmt.Println("  anchorkit profiles import <file>             Import a JSON profile")
	fmt.Println("  anchorkit profiles delete <name>             Delete a profile")
	fmt.Println("  anchorkit ui                                 Launch the demo window (build with -tags fyne)")
}

func main() {
	// initialize structured logging using environment defaults
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("cli")
	reportDir, _ := config.ConfigDir()
	defer func() { crash.Recover(reportDir) }()

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) > 1 {
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println("AnchorKit — anchored overlay positioning")
			fmt.Println(version.String())
			return
		case "profiles":
			if len(args) < 3 {
				usage()
				os.Exit(2)
			}
			if err := runProfiles(l, args[2], args[3:]); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			return
		case "ui":
			cfg, err := config.Load()
			if err != nil {
				l.Error("load config failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			if err := ui.Run(cfg); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			return
		}
	}

	usage()
}

func runProfiles(l *slog.Logger, sub string, rest []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	dbPath, err := cfg.ProfilesDBPath()
	if err != nil {
		return err
	}
	store, err := profile.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch sub {
	case "list":
		names, err := store.List(ctx)
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Println("No profiles stored.")
			return nil
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return nil
	case "export":
		if len(rest) < 1 {
			return fmt.Errorf("export requires <name>")
		}
		p, err := store.Get(ctx, rest[0])
		if err != nil {
			return err
		}
		data, err := profile.Export(p)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	case "import":
		if len(rest) < 1 {
			return fmt.Errorf("import requires <file>")
		}
		data, err := os.ReadFile(rest[0])
		if err != nil {
			return err
		}
		p, err := profile.Import(data)
		if err != nil {
			return err
		}
		if err := store.Put(ctx, p); err != nil {
			return err
		}
		l.Info("profile imported", slog.String("name", p.Name))
		fmt.Println("Imported profile", p.Name)
		return nil
	case "delete":
		if len(rest) < 1 {
			return fmt.Errorf("delete requires <name>")
		}
		if err := store.Delete(ctx, rest[0]); err != nil {
			return err
		}
		fmt.Println("Deleted profile", rest[0])
		return nil
	default:
		usage()
		return fmt.Errorf("unknown profiles subcommand %q", sub)
	}
}
