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

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCompareGolden(t *testing.T) {
	dir := t.TempDir()
	golden := filepath.Join(dir, "goldens", "report-card.txt")
	text := "Report Card\n\nAda Lovelace\n\nGrade: A"

	// Missing golden file
	err := CompareGolden(golden, text, false)
	if err == nil || !strings.Contains(err.Error(), "golden file missing") {
		t.Fatalf("err = %v, want missing golden", err)
	}

	// Update creates it, including the directory
	if err := CompareGolden(golden, "  "+text+"\n\n", true); err != nil {
		t.Fatalf("update: %v", err)
	}
	b, err := os.ReadFile(golden)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != text+"\n" {
		t.Errorf("golden content = %q", b)
	}

	// Match ignores surrounding whitespace
	if err := CompareGolden(golden, "\n"+text+"  ", false); err != nil {
		t.Errorf("match: %v", err)
	}

	// Mismatch
	err = CompareGolden(golden, "Report Card\n\nAda Lovelace\n\nGrade: B", false)
	if !errors.Is(err, ErrGoldenMismatch) {
		t.Fatalf("err = %v, want ErrGoldenMismatch", err)
	}
	for _, want := range []string{"--- Expected", "+++ Actual", "-Grade: A", "+Grade: B"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("diff missing %q:\n%s", want, err)
		}
	}
}
