package scheduler

import (
	"context"
	"testing"

	"github.com/iho/hucha/internal/domain"
)

func TestGenerateJobIDUnique(t *testing.T) {
	r := NewRunner()

	a := r.GenerateJobID()
	b := r.GenerateJobID()

	if a == "" || b == "" {
		t.Fatalf("expected non-empty job ids, got %q and %q", a, b)
	}
	if a == b {
		t.Fatalf("expected distinct job ids, got %q twice", a)
	}
}

func TestScheduleAndCancel(t *testing.T) {
	r := NewRunner()

	jobID := r.GenerateJobID()
	if err := r.Schedule(jobID, domain.FrequencyDaily, func(ctx context.Context) {}); err != nil {
		t.Fatalf("schedule failed: %v", err)
	}

	if r.Active() != 1 {
		t.Fatalf("expected 1 active entry, got %d", r.Active())
	}

	if err := r.Cancel(context.Background(), jobID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	if r.Active() != 0 {
		t.Fatalf("expected 0 active entries after cancel, got %d", r.Active())
	}
}

func TestScheduleReplacesExistingEntry(t *testing.T) {
	r := NewRunner()

	jobID := r.GenerateJobID()
	for i := 0; i < 2; i++ {
		if err := r.Schedule(jobID, domain.FrequencyMonthly, func(ctx context.Context) {}); err != nil {
			t.Fatalf("schedule failed: %v", err)
		}
	}

	if r.Active() != 1 {
		t.Fatalf("expected rescheduling to replace the entry, got %d entries", r.Active())
	}
}

func TestCancelUnknownJobIsNoop(t *testing.T) {
	r := NewRunner()

	if err := r.Cancel(context.Background(), "never-scheduled"); err != nil {
		t.Fatalf("expected cancel of unknown job to be a no-op, got %v", err)
	}
}

func TestScheduleInvalidFrequency(t *testing.T) {
	r := NewRunner()

	err := r.Schedule("job", domain.Frequency("hourly"), func(ctx context.Context) {})
	if err == nil {
		t.Fatalf("expected error for unsupported frequency")
	}
}

func TestCronSpecMapping(t *testing.T) {
	tests := []struct {
		frequency domain.Frequency
		want      string
	}{
		{domain.FrequencyDaily, "@daily"},
		{domain.FrequencyWeekly, "@weekly"},
		{domain.FrequencyMonthly, "@monthly"},
		{domain.FrequencyYearly, "@yearly"},
	}

	for _, tt := range tests {
		spec, err := cronSpec(tt.frequency)
		if err != nil {
			t.Fatalf("cronSpec(%s) failed: %v", tt.frequency, err)
		}
		if spec != tt.want {
			t.Fatalf("cronSpec(%s) = %q, want %q", tt.frequency, spec, tt.want)
		}
	}
}
