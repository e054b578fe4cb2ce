package domain

import (
	"time"

	"github.com/google/uuid"
)

// EnrichmentField names the front matter field an enrichment step writes.
type EnrichmentField string

const (
	FieldEtymology     EnrichmentField = "etymology"
	FieldPronunciation EnrichmentField = "pronunciation"
	FieldAudio         EnrichmentField = "audio"
	FieldSeeAlso       EnrichmentField = "see_also"
)

func (f EnrichmentField) IsValid() bool {
	switch f {
	case FieldEtymology, FieldPronunciation, FieldAudio, FieldSeeAlso:
		return true
	}
	return false
}

func (f EnrichmentField) String() string { return string(f) }

// EnrichmentOutcome is the result of processing one field of one entry.
type EnrichmentOutcome string

const (
	OutcomeUpdated EnrichmentOutcome = "updated"
	OutcomeSkipped EnrichmentOutcome = "skipped"
	OutcomeAbsent  EnrichmentOutcome = "absent"
	OutcomeFailed  EnrichmentOutcome = "failed"
)

func (o EnrichmentOutcome) IsValid() bool {
	switch o {
	case OutcomeUpdated, OutcomeSkipped, OutcomeAbsent, OutcomeFailed:
		return true
	}
	return false
}

func (o EnrichmentOutcome) String() string { return string(o) }

// EnrichmentRecord is one ledger line: what happened to a field of a word
// during a run.
type EnrichmentRecord struct {
	ID        uuid.UUID
	RunID     uuid.UUID
	Word      string
	Field     EnrichmentField
	Outcome   EnrichmentOutcome
	Detail    string
	CreatedAt time.Time
}

// RunStats holds aggregate counts by outcome for a batch run.
type RunStats struct {
	Updated int
	Skipped int
	Absent  int
	Failed  int
	Total   int
}

// Add counts one outcome.
func (s *RunStats) Add(o EnrichmentOutcome) {
	switch o {
	case OutcomeUpdated:
		s.Updated++
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeAbsent:
		s.Absent++
	case OutcomeFailed:
		s.Failed++
	}
	s.Total++
}

// Merge adds the counts of other into s.
func (s *RunStats) Merge(other RunStats) {
	s.Updated += other.Updated
	s.Skipped += other.Skipped
	s.Absent += other.Absent
	s.Failed += other.Failed
	s.Total += other.Total
}
