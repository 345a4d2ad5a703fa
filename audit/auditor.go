package audit

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/use-agent/sitelens/config"
	"github.com/use-agent/sitelens/inspector"
	"github.com/use-agent/sitelens/models"
	"golang.org/x/sync/semaphore"
)

// Auditor runs the four audit modules against target pages. Each module
// invocation launches its own disposable rendering session; the
// weighted semaphore bounds how many sessions exist at once so a burst
// of audits cannot exhaust the host.
//
// Sessions are deliberately not pooled or reused across modules: every
// module pays full browser-launch cost in exchange for complete
// isolation. This is a known inefficiency.
type Auditor struct {
	browserCfg config.BrowserConfig
	auditCfg   config.AuditConfig
	prober     *inspector.Prober
	sessions   *semaphore.Weighted
	active     atomic.Int32
}

// New creates an Auditor from the application configuration.
func New(cfg *config.Config) *Auditor {
	return &Auditor{
		browserCfg: cfg.Browser,
		auditCfg:   cfg.Audit,
		prober:     inspector.NewProber(cfg.Browser.DefaultProxy, cfg.Audit.ProbeTimeout),
		sessions:   semaphore.NewWeighted(cfg.Browser.MaxSessions),
	}
}

// acquireSession blocks until a session slot is free, then launches a
// disposable browser. The returned release func closes the session and
// frees the slot; callers must defer it on every path.
func (a *Auditor) acquireSession(ctx context.Context) (*inspector.Session, func(), error) {
	if err := a.sessions.Acquire(ctx, 1); err != nil {
		return nil, nil, models.NewAuditError(
			models.ErrCodeTimeout,
			"timed out waiting for a rendering session slot",
			err,
		)
	}

	sess, err := inspector.Open(ctx, a.browserCfg)
	if err != nil {
		a.sessions.Release(1)
		return nil, nil, err
	}

	a.active.Add(1)
	release := func() {
		sess.Close()
		a.sessions.Release(1)
		a.active.Add(-1)
	}
	return sess, release, nil
}

// Stats returns a snapshot of session utilisation.
func (a *Auditor) Stats() models.SessionStats {
	return models.SessionStats{
		MaxSessions:    a.browserCfg.MaxSessions,
		ActiveSessions: a.active.Load(),
	}
}

// Screenshot renders target and returns a full-page PNG. When selector
// is non-empty the first matching element is scrolled into view and
// outlined before capture. Not scored; used for visual evidence only.
func (a *Auditor) Screenshot(ctx context.Context, target, selector string) ([]byte, error) {
	sess, release, err := a.acquireSession(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	if _, err := sess.Navigate(ctx, target, a.auditCfg.ScreenshotTimeout); err != nil {
		return nil, err
	}
	if selector != "" {
		if err := sess.Highlight(ctx, selector); err != nil {
			slog.Warn("selector highlight failed, capturing without it",
				"selector", selector, "error", err)
		}
	}
	return sess.Screenshot(ctx)
}
