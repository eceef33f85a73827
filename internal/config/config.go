/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.
// Unknown fields are ignored on unmarshal, so older binaries tolerate newer files.

type OverlayConfig struct {
	PaddingX   float32 `yaml:"padding_x"`
	PaddingY   float32 `yaml:"padding_y"`
	SkipFrames int     `yaml:"skip_frames"`
	FPS        int     `yaml:"fps"`
}

type ProfilesConfig struct {
	DBPath string `yaml:"db_path"` // empty means the default under the config dir
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int            `yaml:"config_version"`
	Overlay       OverlayConfig  `yaml:"overlay"`
	Profiles      ProfilesConfig `yaml:"profiles"`
	Logging       LoggingConfig  `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Overlay:       OverlayConfig{PaddingX: 0, PaddingY: 0, SkipFrames: 0, FPS: 60},
		Profiles:      ProfilesConfig{DBPath: ""},
		Logging:       LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvOverlayPaddingX   = "AK_PADDING_X"
	EnvOverlayPaddingY   = "AK_PADDING_Y"
	EnvOverlaySkipFrames = "AK_SKIP_FRAMES"
	EnvOverlayFPS        = "AK_FPS"
	EnvProfilesDB        = "AK_PROFILES_DB"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "AK_LOG_LEVEL"
	EnvLogFormat = "AK_LOG_FORMAT"
	EnvLogSource = "AK_LOG_SOURCE"
	EnvLogFile   = "AK_LOG_FILE"
)

// ConfigDir returns the per-user configuration directory.
func ConfigDir() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "AnchorKit")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "AnchorKit")
	default: // linux and others
		base = filepath.Join(os.Getenv("HOME"), ".config", "anchorkit")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return base, nil
}

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// ProfilesDBPath resolves the placement profile database location: the
// configured path when set, otherwise profiles.db inside the config dir.
func (c AppConfig) ProfilesDBPath() (string, error) {
	if p := strings.TrimSpace(c.Profiles.DBPath); p != "" {
		return p, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "profiles.db"), nil
}

// Load reads the user config file (if present), applies defaults, and merges
// environment overrides.
func Load() (AppConfig, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			mergeInto(&cfg, &fileCfg)
		}
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	// overlay: non-negative values copy over; padding zero is a valid value
	// so it copies unconditionally like the booleans in logging
	dst.Overlay.PaddingX = src.Overlay.PaddingX
	dst.Overlay.PaddingY = src.Overlay.PaddingY
	if src.Overlay.SkipFrames > 0 {
		dst.Overlay.SkipFrames = src.Overlay.SkipFrames
	}
	if src.Overlay.FPS > 0 {
		dst.Overlay.FPS = src.Overlay.FPS
	}
	if strings.TrimSpace(src.Profiles.DBPath) != "" {
		dst.Profiles.DBPath = strings.TrimSpace(src.Profiles.DBPath)
	}
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvOverlayPaddingX)); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil && f >= 0 {
			cfg.Overlay.PaddingX = float32(f)
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvOverlayPaddingY)); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil && f >= 0 {
			cfg.Overlay.PaddingY = float32(f)
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvOverlaySkipFrames)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Overlay.SkipFrames = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvOverlayFPS)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Overlay.FPS = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvProfilesDB)); v != "" {
		cfg.Profiles.DBPath = v
	}
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		lv := strings.ToLower(v)
		cfg.Logging.Source = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	switch key {
	case "overlay.padding_x":
		if os.Getenv(EnvOverlayPaddingX) != "" {
			return EnvOverlayPaddingX, true
		}
	case "overlay.padding_y":
		if os.Getenv(EnvOverlayPaddingY) != "" {
			return EnvOverlayPaddingY, true
		}
	case "overlay.skip_frames":
		if os.Getenv(EnvOverlaySkipFrames) != "" {
			return EnvOverlaySkipFrames, true
		}
	case "overlay.fps":
		if os.Getenv(EnvOverlayFPS) != "" {
			return EnvOverlayFPS, true
		}
	case "profiles.db_path":
		if os.Getenv(EnvProfilesDB) != "" {
			return EnvProfilesDB, true
		}
	case "logging.level":
		if os.Getenv(EnvLogLevel) != "" {
			return EnvLogLevel, true
		}
	case "logging.format":
		if os.Getenv(EnvLogFormat) != "" {
			return EnvLogFormat, true
		}
	case "logging.source":
		if os.Getenv(EnvLogSource) != "" {
			return EnvLogSource, true
		}
	case "logging.file":
		if os.Getenv(EnvLogFile) != "" {
			return EnvLogFile, true
		}
	}
	return "", false
}
