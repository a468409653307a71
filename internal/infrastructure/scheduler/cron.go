package scheduler

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/iho/hucha/internal/domain"
)

// Job is the work executed on each tick of a recurring rule.
type Job func(ctx context.Context)

// Runner schedules recurring movement rules with an in-process cron.
// It implements usecase.JobScheduler. Entries do not survive restarts;
// Schedule must be called again for every active rule on startup.
type Runner struct {
	cron *cron.Cron

	mu      sync.Mutex
	entries map[string]cron.EntryID
}

// NewRunner creates a stopped Runner. Call Start to begin ticking.
func NewRunner() *Runner {
	return &Runner{
		cron:    cron.New(),
		entries: make(map[string]cron.EntryID),
	}
}

// GenerateJobID returns a fresh job id for a new rule.
func (r *Runner) GenerateJobID() string {
	return uuid.NewString()
}

// Schedule registers job under jobID at the cadence of frequency.
// Scheduling the same jobID twice replaces the previous entry.
func (r *Runner) Schedule(jobID string, frequency domain.Frequency, job Job) error {
	spec, err := cronSpec(frequency)
	if err != nil {
		return err
	}

	entryID, err := r.cron.AddFunc(spec, func() {
		job(context.Background())
	})
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.entries[jobID]; ok {
		r.cron.Remove(old)
	}
	r.entries[jobID] = entryID

	return nil
}

// Cancel removes the entry for jobID. Cancelling an unknown job is a
// no-op so rule deletion stays idempotent.
func (r *Runner) Cancel(ctx context.Context, jobID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entryID, ok := r.entries[jobID]
	if !ok {
		log.Debug().Str("job_id", jobID).Msg("cancel of unknown job ignored")
		return nil
	}

	r.cron.Remove(entryID)
	delete(r.entries, jobID)

	return nil
}

// Active reports the number of scheduled entries.
func (r *Runner) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.entries)
}

// Start begins executing scheduled entries.
func (r *Runner) Start() {
	r.cron.Start()
}

// Stop halts scheduling and waits for running jobs to finish or the
// context to expire.
func (r *Runner) Stop(ctx context.Context) error {
	done := r.cron.Stop().Done()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func cronSpec(frequency domain.Frequency) (string, error) {
	switch frequency {
	case domain.FrequencyDaily:
		return "@daily", nil
	case domain.FrequencyWeekly:
		return "@weekly", nil
	case domain.FrequencyMonthly:
		return "@monthly", nil
	case domain.FrequencyYearly:
		return "@yearly", nil
	default:
		return "", domain.ErrInvalidFrequency
	}
}
