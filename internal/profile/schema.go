/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package profile

import (
	"encoding/json"
	"fmt"
	"strings"

	gojsonschema "github.com/xeipuuv/gojsonschema"
)

// jsonSchema validates exported profile documents before the keyword parsers
// ever see them, so import errors point at the offending field.
const jsonSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "AnchorKit placement profile",
  "type": "object",
  "required": ["name", "position", "align"],
  "additionalProperties": false,
  "properties": {
    "name":                {"type": "string", "minLength": 1},
    "position":            {"type": "string", "minLength": 1},
    "align":               {"type": "string", "minLength": 1},
    "fallback_position":   {"type": "string"},
    "fallback_align":      {"type": "string"},
    "anchor_selector":     {"type": "string"},
    "selector_scope":      {"type": "string", "enum": ["host", "viewport"]},
    "offset_x":            {"type": "number"},
    "offset_y":            {"type": "number"},
    "restrict_size":       {"type": "string", "enum": ["none", "x", "y", "both", "width", "height"]},
    "prevent_overflow":    {"type": "string", "enum": ["none", "x", "y", "both"]},
    "min_width_selector":  {"type": "string"},
    "min_height_selector": {"type": "string"},
    "padding_x":           {"type": "number", "minimum": 0},
    "padding_y":           {"type": "number", "minimum": 0},
    "skip_frames":         {"type": "integer", "minimum": 0},
    "compute_only":        {"type": "boolean"}
  }
}`

// Export serializes the profile as an indented JSON document.
func Export(p Profile) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return json.MarshalIndent(p, "", "  ")
}

// Import parses and validates a JSON profile document. The document is
// checked against the schema first and then against the keyword parsers.
func Import(data []byte) (Profile, error) {
	var p Profile
	schemaLoader := gojsonschema.NewStringLoader(jsonSchema)
	docLoader := gojsonschema.NewBytesLoader(data)
	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return p, fmt.Errorf("profile: schema validate: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return p, fmt.Errorf("profile: invalid document: %s", strings.Join(msgs, "; "))
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("profile: parse: %w", err)
	}
	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}
