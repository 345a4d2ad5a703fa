package inspector

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/use-agent/sitelens/config"
	"github.com/use-agent/sitelens/models"
	"github.com/ysmood/gson"
)

// Session is a disposable headless-browser instance bound to a single
// audit module invocation. It owns exactly one browser process and one
// page; it is never shared across modules and must be closed on every
// exit path. Close is idempotent.
type Session struct {
	browser   *rod.Browser
	launcher  *launcher.Launcher
	page      *rod.Page
	closeOnce sync.Once
}

// Open launches a fresh headless browser and opens one blank page.
// The caller owns the session and must call Close.
func Open(ctx context.Context, cfg config.BrowserConfig) (*Session, error) {
	l := launcher.New().
		Headless(cfg.Headless).
		NoSandbox(cfg.NoSandbox)

	if cfg.BrowserBin != "" {
		l = l.Bin(cfg.BrowserBin)
	}
	if cfg.DefaultProxy != "" {
		l = l.Proxy(cfg.DefaultProxy)
	}

	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("disable-extensions"))
	l.Set(flags.Flag("disable-default-apps"))
	l.Set(flags.Flag("no-first-run"))

	controlURL, err := l.Launch()
	if err != nil {
		return nil, models.NewAuditError(
			models.ErrCodeLaunch,
			"failed to launch browser",
			err,
		)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, models.NewAuditError(
			models.ErrCodeLaunch,
			"failed to connect to browser",
			err,
		)
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = browser.Close()
		l.Kill()
		return nil, models.NewAuditError(
			models.ErrCodeLaunch,
			"failed to open page",
			err,
		)
	}

	if cfg.Stealth {
		if _, evalErr := page.EvalOnNewDocument(stealth.JS); evalErr != nil {
			slog.Warn("stealth injection failed, proceeding without stealth",
				"error", evalErr,
			)
		}
	}

	return &Session{browser: browser, launcher: l, page: page}, nil
}

// Navigate loads target and waits for the DOM to settle, returning the
// wall-clock duration from navigation start to DOM-content-ready. The
// timer stops at DOMContentLoaded; the stability settle that follows is
// not part of the measured load time.
func (s *Session) Navigate(ctx context.Context, target string, timeout time.Duration) (time.Duration, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	p := s.page.Context(ctx)

	// A plausible Referer makes some targets behave like a real visit.
	if u, parseErr := url.Parse(target); parseErr == nil && u.Hostname() != "" {
		_ = proto.NetworkSetExtraHTTPHeaders{
			Headers: proto.NetworkHeaders{
				"Referer": gson.New("https://www.google.com/search?q=" + url.QueryEscape(u.Hostname())),
			},
		}.Call(p)
	}

	// Subscribe before navigating so the event cannot be missed.
	domReady := p.WaitEvent(&proto.PageDomContentEventFired{})

	start := time.Now()
	if err := p.Navigate(target); err != nil {
		return 0, categorizeError(err, "navigation to target URL failed")
	}
	domReady()
	elapsed := time.Since(start)

	if stableErr := p.WaitDOMStable(300*time.Millisecond, 0.1); stableErr != nil {
		slog.Debug("WaitDOMStable did not converge, proceeding with current DOM",
			"error", stableErr,
		)
	}
	return elapsed, nil
}

// NavigateStatus loads target and returns the HTTP status code of the
// navigation response. The status is recovered from the page's own
// performance timeline, which needs no CDP event listeners; 0 means
// the status could not be determined.
func (s *Session) NavigateStatus(ctx context.Context, target string, timeout time.Duration) (int, error) {
	if _, err := s.Navigate(ctx, target, timeout); err != nil {
		return 0, err
	}

	p := s.page.Context(ctx)
	res, err := p.Eval(`() => {
		try {
			const entries = performance.getEntriesByType("navigation");
			if (entries.length > 0) return entries[0].responseStatus || 0;
		} catch(e) {}
		return 0;
	}`)
	if err != nil {
		// Indeterminate, not fatal; the caller treats 0 as unknown.
		slog.Debug("navigation status evaluation failed, reporting status unknown",
			"target", target, "error", err,
		)
		return 0, nil
	}
	return res.Value.Int(), nil
}

// HTML returns the rendered page HTML.
func (s *Session) HTML(ctx context.Context) (string, error) {
	p := s.page.Context(ctx)
	html, err := p.HTML()
	if err != nil {
		return "", categorizeError(err, "failed to extract page HTML")
	}
	return html, nil
}

// Document returns the rendered page parsed into a goquery document.
func (s *Session) Document(ctx context.Context) (*goquery.Document, error) {
	html, err := s.HTML(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, models.NewAuditError(
			models.ErrCodeEvaluation,
			"failed to parse rendered HTML",
			err,
		)
	}
	return doc, nil
}

// Text returns the page's visible text, preserving line breaks between
// blocks. It evaluates document.body.innerText in-page and falls back
// to a tokenizer walk over the rendered HTML when evaluation fails.
func (s *Session) Text(ctx context.Context) (string, error) {
	p := s.page.Context(ctx)
	res, err := p.Eval(`() => document.body ? document.body.innerText : ""`)
	if err == nil {
		return res.Value.Str(), nil
	}

	html, htmlErr := s.HTML(ctx)
	if htmlErr != nil {
		return "", htmlErr
	}
	return visibleText([]byte(html)), nil
}

// FinalURL returns window.location.href, or fallback when evaluation fails.
func (s *Session) FinalURL(ctx context.Context, fallback string) string {
	p := s.page.Context(ctx)
	res, err := p.Eval(`() => window.location.href`)
	if err != nil || res.Value.Str() == "" {
		return fallback
	}
	return res.Value.Str()
}

// Close shuts down the browser process. Safe to call multiple times.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		if err := s.browser.Close(); err != nil {
			slog.Debug("browser close failed", "error", err)
		}
		s.launcher.Kill()
	})
}

// categorizeError wraps raw errors into typed AuditErrors so the API layer
// can map them to appropriate HTTP status codes.
func categorizeError(err error, msg string) *models.AuditError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewAuditError(models.ErrCodeTimeout, msg, err)
	case errors.Is(err, context.Canceled):
		return models.NewAuditError(models.ErrCodeTimeout, "request canceled", err)
	default:
		return models.NewAuditError(models.ErrCodeNavigation, msg, err)
	}
}
