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

import "testing"

func TestStyleSignature(t *testing.T) {
	tests := []struct {
		name      string
		sig       StyleSignature
		wantSel   string
		wantChild string
	}{
		{
			name:      "roster grid",
			sig:       StyleSignature{Style: DefaultRosterStyle},
			wantSel:   `div[style*="grid-template-columns: repeat(auto-fill, minmax(300px, 1fr))"]`,
			wantChild: `div[style*="grid-template-columns: repeat(auto-fill, minmax(300px, 1fr))"] > div`,
		},
		{
			name:      "modal",
			sig:       StyleSignature{Style: DefaultModalStyle},
			wantSel:   `div[style*="max-width: 600px"]`,
			wantChild: `div[style*="max-width: 600px"] > div`,
		},
		{
			name:      "custom tag and quotes",
			sig:       StyleSignature{Tag: "section", Style: `font-family: "Inter"`},
			wantSel:   `section[style*="font-family: \"Inter\""]`,
			wantChild: `section[style*="font-family: \"Inter\""] > div`,
		},
		{
			name:    "backslash",
			sig:     StyleSignature{Style: `content: "\2014"`},
			wantSel: `div[style*="content: \"\\2014\""]`,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.sig.Selector(); got != tc.wantSel {
				t.Errorf("Selector() = %s, want %s", got, tc.wantSel)
			}
			if tc.wantChild != "" {
				if got := tc.sig.Child(); got != tc.wantChild {
					t.Errorf("Child() = %s, want %s", got, tc.wantChild)
				}
			}
			if tc.sig.String() != tc.sig.Selector() {
				t.Errorf("String() = %s, want %s", tc.sig.String(), tc.sig.Selector())
			}
		})
	}
}
