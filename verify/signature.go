// Copyright (c) 2026 TTBT Enterprises LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package verify

import "strings"

// StyleSignature matches an element by a literal substring of its inline
// style attribute, e.g. `div[style*="max-width: 600px"]`.
type StyleSignature struct {
	Tag   string
	Style string
}

// Selector returns the CSS attribute selector for s.
func (s StyleSignature) Selector() string {
	tag := s.Tag
	if tag == "" {
		tag = "div"
	}
	return tag + `[style*="` + escapeAttr(s.Style) + `"]`
}

// Child returns the selector of the direct div children of s. Used with a
// single-node query it resolves to the first child.
func (s StyleSignature) Child() string {
	return s.Selector() + " > div"
}

func (s StyleSignature) String() string {
	return s.Selector()
}

func escapeAttr(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	return strings.ReplaceAll(v, `"`, `\"`)
}
