// Package reporting records link-generation activity in memory and
// aggregates it into retrospective reports. Entries are operational
// telemetry only: nothing in here is ever read back into an orchestration
// decision, and no payment state is persisted.
package reporting

import (
	"sync"
	"time"
)

// Entry statuses.
const (
	StatusSuccess = "SUCCESS"
	StatusFailure = "FAILURE"
)

// Entry represents a single link-generation attempt.
type Entry struct {
	Timestamp    time.Time `json:"timestamp"`
	RequestID    string    `json:"requestId"`
	Provider     string    `json:"provider"`
	PaymentType  string    `json:"paymentType"`
	Status       string    `json:"status"` // SUCCESS or FAILURE
	AmountMinor  int64     `json:"amountMinor"`
	Currency     string    `json:"currency"`
	ErrorKind    string    `json:"errorKind,omitempty"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
}

// maxEntries bounds the in-memory log; the oldest entries are dropped once
// the bound is reached.
const maxEntries = 4096

// Recorder is a bounded, mutex-guarded in-memory activity log.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Append adds an entry, evicting the oldest when the bound is exceeded.
func (r *Recorder) Append(entry Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	if len(r.entries) > maxEntries {
		r.entries = r.entries[len(r.entries)-maxEntries:]
	}
}

// Snapshot returns a copy of the current entries.
func (r *Recorder) Snapshot() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// RetrospectiveReport summarizes link-generation activity.
type RetrospectiveReport struct {
	TotalRequests    int              `json:"totalRequests"`
	SuccessfulLinks  int              `json:"successfulLinks"`
	FailedRequests   int              `json:"failedRequests"`
	AmountByCurrency map[string]int64 `json:"amountByCurrency"` // successful requests only, minor units
	ErrorBreakdown   map[string]int   `json:"errorBreakdown"`   // count per error kind for failures
	ProviderUsage    map[string]int   `json:"providerUsage"`    // attempts per provider
	DateFrom         time.Time        `json:"dateFrom"`
	DateTo           time.Time        `json:"dateTo"`
}

// RetrospectiveReporter generates retrospective reports from entries.
type RetrospectiveReporter struct{}

// NewRetrospectiveReporter creates a new RetrospectiveReporter.
func NewRetrospectiveReporter() *RetrospectiveReporter {
	return &RetrospectiveReporter{}
}

// GenerateRetrospective analyzes a slice of entries and produces a report.
func (rr *RetrospectiveReporter) GenerateRetrospective(entries []Entry) *RetrospectiveReport {
	report := &RetrospectiveReport{
		AmountByCurrency: make(map[string]int64),
		ErrorBreakdown:   make(map[string]int),
		ProviderUsage:    make(map[string]int),
	}
	if len(entries) == 0 {
		return report
	}

	report.DateFrom = entries[0].Timestamp
	report.DateTo = entries[0].Timestamp

	for _, entry := range entries {
		report.TotalRequests++
		report.ProviderUsage[entry.Provider]++

		switch entry.Status {
		case StatusSuccess:
			report.SuccessfulLinks++
			report.AmountByCurrency[entry.Currency] += entry.AmountMinor
		case StatusFailure:
			report.FailedRequests++
			if entry.ErrorKind != "" {
				report.ErrorBreakdown[entry.ErrorKind]++
			}
		}

		if entry.Timestamp.Before(report.DateFrom) {
			report.DateFrom = entry.Timestamp
		}
		if entry.Timestamp.After(report.DateTo) {
			report.DateTo = entry.Timestamp
		}
	}
	return report
}
