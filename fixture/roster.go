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

package fixture

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseRoster parses comma-separated NAME[:GRADE[:ATTENDANCE]] entries.
// Grade defaults to "-" and attendance to 100.
func ParseRoster(s string) ([]Student, error) {
	var roster []Student
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ":", 3)
		st := Student{Name: strings.TrimSpace(parts[0]), Grade: "-", Attendance: 100}
		if st.Name == "" {
			return nil, fmt.Errorf("empty name in %q", entry)
		}
		if len(parts) > 1 && strings.TrimSpace(parts[1]) != "" {
			st.Grade = strings.TrimSpace(parts[1])
		}
		if len(parts) > 2 {
			n, err := strconv.Atoi(strings.TrimSpace(parts[2]))
			if err != nil || n < 0 || n > 100 {
				return nil, fmt.Errorf("invalid attendance in %q", entry)
			}
			st.Attendance = n
		}
		roster = append(roster, st)
	}
	return roster, nil
}
