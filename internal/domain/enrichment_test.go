package domain

import "testing"

func TestEnrichmentField_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		field EnrichmentField
		want  bool
	}{
		{FieldEtymology, true},
		{FieldPronunciation, true},
		{FieldAudio, true},
		{FieldSeeAlso, true},
		{EnrichmentField("etymology_alt"), false},
		{EnrichmentField(""), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.field), func(t *testing.T) {
			t.Parallel()
			if got := tt.field.IsValid(); got != tt.want {
				t.Errorf("EnrichmentField(%q).IsValid() = %v, want %v", tt.field, got, tt.want)
			}
		})
	}
}

func TestEnrichmentOutcome_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		outcome EnrichmentOutcome
		want    bool
	}{
		{OutcomeUpdated, true},
		{OutcomeSkipped, true},
		{OutcomeAbsent, true},
		{OutcomeFailed, true},
		{EnrichmentOutcome("done"), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.outcome), func(t *testing.T) {
			t.Parallel()
			if got := tt.outcome.IsValid(); got != tt.want {
				t.Errorf("EnrichmentOutcome(%q).IsValid() = %v, want %v", tt.outcome, got, tt.want)
			}
		})
	}
}

func TestRunStats(t *testing.T) {
	t.Parallel()

	var s RunStats
	s.Add(OutcomeUpdated)
	s.Add(OutcomeUpdated)
	s.Add(OutcomeSkipped)
	s.Add(OutcomeFailed)

	var other RunStats
	other.Add(OutcomeAbsent)
	s.Merge(other)

	want := RunStats{Updated: 2, Skipped: 1, Absent: 1, Failed: 1, Total: 5}
	if s != want {
		t.Errorf("RunStats = %+v, want %+v", s, want)
	}
}
