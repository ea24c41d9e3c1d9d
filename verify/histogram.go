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
	"math"
	"time"
)

const LatencyBuckets = 61
const LatencyBucketSize = 500 * time.Millisecond

// Histogram counts step durations in fixed buckets. The last bucket
// absorbs everything beyond LatencyBuckets*LatencyBucketSize.
type Histogram struct {
	Buckets [LatencyBuckets]uint64 `json:"b"`
	Count   uint64                 `json:"c"`
	Sum     float64                `json:"s"` // Sum of durations in milliseconds
}

func (h *Histogram) Add(d time.Duration) {
	if d < 0 {
		d = 0
	}
	idx := int(d / LatencyBucketSize)
	if idx >= LatencyBuckets {
		idx = LatencyBuckets - 1
	}
	h.Buckets[idx]++
	h.Count++
	h.Sum += float64(d.Milliseconds())
}

func (h *Histogram) Merge(other *Histogram) {
	if other == nil {
		return
	}
	for i := 0; i < LatencyBuckets; i++ {
		h.Buckets[i] += other.Buckets[i]
	}
	h.Count += other.Count
	h.Sum += other.Sum
}

// Mean returns the average duration, or 0 for an empty histogram.
func (h *Histogram) Mean() time.Duration {
	if h.Count == 0 {
		return 0
	}
	return time.Duration(h.Sum/float64(h.Count)) * time.Millisecond
}

// Percentile returns the upper bound of the bucket holding the p-th
// percentile, p in [0,100].
func (h *Histogram) Percentile(p float64) time.Duration {
	if h.Count == 0 {
		return 0
	}
	rank := uint64(math.Ceil(p / 100 * float64(h.Count)))
	if rank == 0 {
		rank = 1
	}
	var seen uint64
	for i, n := range h.Buckets {
		seen += n
		if seen >= rank {
			return time.Duration(i+1) * LatencyBucketSize
		}
	}
	return LatencyBuckets * LatencyBucketSize
}
