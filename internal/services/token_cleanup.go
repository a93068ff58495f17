package services

import (
	"context"
	"fmt"
	"time"

	"bizadmin/internal/utils"

	"github.com/robfig/cron/v3"
)

type Purger interface {
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// TokenCleanup periodically drops revoked tokens past their expiry.
type TokenCleanup struct {
	Store Purger
	Spec  string

	runner *cron.Cron
}

// RunOnce performs a single purge.
func (t *TokenCleanup) RunOnce(ctx context.Context) (int64, error) {
	n, err := t.Store.PurgeExpired(ctx, time.Now())
	if err != nil {
		utils.LogError("", "auth", "purge_revoked", err, nil)
		return 0, err
	}
	if n > 0 {
		utils.LogEvent("", "auth", "purge_revoked", fmt.Sprintf("deleted=%d", n))
	}
	return n, nil
}

// Start schedules the purge on Spec (standard cron or @every/@hourly).
func (t *TokenCleanup) Start() error {
	spec := t.Spec
	if spec == "" {
		spec = "@hourly"
	}
	t.runner = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
		cron.Recover(cron.DefaultLogger),
	))
	if _, err := t.runner.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		_, _ = t.RunOnce(ctx)
	}); err != nil {
		return fmt.Errorf("schedule token purge %q: %w", spec, err)
	}
	t.runner.Start()
	return nil
}

// Stop waits for a running purge to finish.
func (t *TokenCleanup) Stop() {
	if t.runner == nil {
		return
	}
	<-t.runner.Stop().Done()
}
