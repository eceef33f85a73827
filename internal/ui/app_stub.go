//go:build !fyne

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package ui binds the overlay engine to Fyne. Without the "fyne" build tag
// only this stub compiles, keeping headless builds free of GUI dependencies.
package ui

import (
	"fmt"

	"anchorkit/internal/config"
)

// Run reports that the binary was built without the demo UI.
func Run(_ config.AppConfig) error {
	return fmt.Errorf("this binary was built without the demo UI; rebuild with -tags fyne")
}
