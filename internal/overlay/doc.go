/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package overlay positions a floating element relative to an anchor element
// inside a resizable viewport, keeping it aligned frame by frame as layout
// changes, optionally clamping its size and shifting it to stay inside the
// viewport.
//
// A consumer calls Engine.Start with the floating element, its host, and a set
// of Options; the engine recomputes geometry on every scheduled display frame
// and writes the result to the element until Session.Stop is called. Forced
// updates recompute all active sessions immediately.
//
// The engine is cooperative and single-threaded: Start, Stop, ForceUpdate and
// all scheduled frames must run on the UI thread. The MouseTracker is the only
// shared state and serializes its own access.
package overlay
