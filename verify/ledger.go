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
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/c2FmZQ/storage"
	"github.com/c2FmZQ/storage/crypto"
)

const (
	ledgerRunsFile    = "runs.json"
	ledgerLatencyFile = "latency.json"

	DefaultLedgerMaxRuns = 200
)

// Run outcomes.
const (
	OutcomeOK     = "ok"
	OutcomeFailed = "failed"
)

// RunRecord is the persisted form of one verification run.
type RunRecord struct {
	ID              string       `json:"id"`
	URL             string       `json:"url"`
	Started         int64        `json:"started"` // Unix milliseconds
	DurationMS      int64        `json:"durationMs"`
	Outcome         string       `json:"outcome"`
	FailedStep      string       `json:"failedStep,omitempty"`
	Error           string       `json:"error,omitempty"`
	Screenshot      string       `json:"screenshot,omitempty"`
	ScreenshotBytes int          `json:"screenshotBytes,omitempty"`
	Steps           []StepTiming `json:"steps"`
}

// Ledger keeps the history of verification runs and per-step latency
// histograms in a storage directory.
type Ledger struct {
	storage *storage.Storage
	maxRuns int

	mu sync.Mutex
}

// NewLedger returns a Ledger backed by s that keeps the newest maxRuns
// records. maxRuns <= 0 selects DefaultLedgerMaxRuns.
func NewLedger(s *storage.Storage, maxRuns int) *Ledger {
	if maxRuns <= 0 {
		maxRuns = DefaultLedgerMaxRuns
	}
	return &Ledger{storage: s, maxRuns: maxRuns}
}

// Record appends rec and folds its step durations into the latency
// histograms.
func (l *Ledger) Record(rec RunRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	runs, err := l.readRuns()
	if err != nil {
		return err
	}
	runs = append(runs, rec)
	if len(runs) > l.maxRuns {
		runs = runs[len(runs)-l.maxRuns:]
	}
	if err := l.storage.SaveDataFile(ledgerRunsFile, runs); err != nil {
		return fmt.Errorf("storage.SaveDataFile: %w", err)
	}

	latency, err := l.readLatency()
	if err != nil {
		return err
	}
	for _, st := range rec.Steps {
		if st.Err != "" {
			continue
		}
		h, ok := latency[st.Name]
		if !ok {
			h = &Histogram{}
			latency[st.Name] = h
		}
		h.Add(st.Duration)
	}
	if err := l.storage.SaveDataFile(ledgerLatencyFile, latency); err != nil {
		return fmt.Errorf("storage.SaveDataFile: %w", err)
	}
	return nil
}

// Runs returns the recorded runs, oldest first.
func (l *Ledger) Runs() ([]RunRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.readRuns()
}

// Latency returns the per-step latency histograms of successful steps.
func (l *Ledger) Latency() (map[string]*Histogram, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.readLatency()
}

func (l *Ledger) readRuns() ([]RunRecord, error) {
	var runs []RunRecord
	if err := l.storage.ReadDataFile(ledgerRunsFile, &runs); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("ReadDataFile: %w", err)
	}
	return runs, nil
}

func (l *Ledger) readLatency() (map[string]*Histogram, error) {
	latency := make(map[string]*Histogram)
	if err := l.storage.ReadDataFile(ledgerLatencyFile, &latency); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return make(map[string]*Histogram), nil
		}
		return nil, fmt.Errorf("ReadDataFile: %w", err)
	}
	return latency, nil
}

// OpenStorage opens the ledger storage in dataDir. A non-empty passphrase
// unlocks (or creates) dataDir/master.key and enables encryption. Without
// a passphrase the data is stored unencrypted, and an existing key file is
// an error so encrypted data is never mixed with plaintext.
func OpenStorage(dataDir, passphrase string, logf func(string, ...any)) (*storage.Storage, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	keyFile := filepath.Join(dataDir, "master.key")

	var masterKey crypto.MasterKey
	if passphrase != "" {
		var err error
		masterKey, err = crypto.ReadMasterKey([]byte(passphrase), keyFile)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read master key: %w", err)
			}
			logf("Initializing new master encryption key...")
			if masterKey, err = crypto.CreateMasterKey(); err != nil {
				return nil, fmt.Errorf("failed to create master key: %w", err)
			}
			if err := masterKey.Save([]byte(passphrase), keyFile); err != nil {
				return nil, fmt.Errorf("failed to save master key: %w", err)
			}
		}
	} else {
		if _, err := os.Stat(keyFile); err == nil {
			return nil, fmt.Errorf("%s exists but %s is not set, refusing to open encrypted data unencrypted", keyFile, EnvMasterKey)
		}
		logf("Warning: No %s provided. Run history will be stored UNENCRYPTED.", EnvMasterKey)
	}

	return storage.New(dataDir, masterKey), nil
}
