package audit

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/use-agent/sitelens/config"
	"github.com/use-agent/sitelens/models"
)

// fakeSession records navigations and serves canned statuses and HTML.
type fakeSession struct {
	visited  []string
	statuses map[string]int
	navErr   error
	html     string
	htmlErr  error
}

func (f *fakeSession) NavigateStatus(_ context.Context, target string, _ time.Duration) (int, error) {
	f.visited = append(f.visited, target)
	if f.navErr != nil {
		return 0, f.navErr
	}
	if status, ok := f.statuses[target]; ok {
		return status, nil
	}
	return http.StatusOK, nil
}

func (f *fakeSession) HTML(context.Context) (string, error) {
	return f.html, f.htmlErr
}

func probeAuditor() *Auditor {
	return &Auditor{auditCfg: config.AuditConfig{
		ProbeTimeout: 5 * time.Second,
		LinkTimeout:  5 * time.Second,
		MaxDeadLinks: 20,
	}}
}

func TestCheck404_StatusNotFound(t *testing.T) {
	a := probeAuditor()
	sess := &fakeSession{statuses: map[string]int{
		"https://example.com" + notFoundPath: http.StatusNotFound,
	}}

	check := a.check404(context.Background(), sess, "https://example.com")

	assert.Equal(t, models.StatusPass, check.Status)
	require.Len(t, sess.visited, 1)
	assert.Equal(t, "https://example.com"+notFoundPath, sess.visited[0])
}

func TestCheck404_SoftNotFoundPage(t *testing.T) {
	a := probeAuditor()
	sess := &fakeSession{html: "<html><body><h1>Page Not Found</h1></body></html>"}

	check := a.check404(context.Background(), sess, "https://example.com/")

	assert.Equal(t, models.StatusPass, check.Status)
	// A trailing slash must not produce a double slash in the probe URL.
	assert.Equal(t, "https://example.com"+notFoundPath, sess.visited[0])
}

func TestCheck404_NoHandlingDetected(t *testing.T) {
	a := probeAuditor()
	sess := &fakeSession{html: "<html><body><h1>Welcome home</h1></body></html>"}

	check := a.check404(context.Background(), sess, "https://example.com")

	assert.Equal(t, models.StatusError, check.Status)
	assert.Contains(t, check.Message, "No custom 404 page")
}

func TestCheck404_ProbeFailureIsError(t *testing.T) {
	a := probeAuditor()
	sess := &fakeSession{navErr: errors.New("net::ERR_CONNECTION_REFUSED")}

	check := a.check404(context.Background(), sess, "https://example.com")

	assert.Equal(t, models.StatusError, check.Status)
	assert.Equal(t, "404 detection failed.", check.Message)
}

func TestNotFoundRe(t *testing.T) {
	assert.True(t, notFoundRe.MatchString("HTTP 404"))
	assert.True(t, notFoundRe.MatchString("Sorry, NOT FOUND"))
	assert.True(t, notFoundRe.MatchString("抱歉，页面不存在"))
	assert.True(t, notFoundRe.MatchString("未找到该页面"))
	assert.False(t, notFoundRe.MatchString("Welcome to our catalogue"))
}

func TestCollectAnchors(t *testing.T) {
	doc := mustDoc(t, `<html><body>
		<a href="https://example.com/a">A</a>
		<a href="http://example.com/b">B</a>
		<a href="/relative">C</a>
		<a href="mailto:x@example.com">D</a>
		<a>E</a>
	</body></html>`)

	links := collectAnchors(doc)

	assert.Equal(t, []string{"https://example.com/a", "http://example.com/b"}, links)
}

func TestScanDeadLinks_VisitBound(t *testing.T) {
	a := probeAuditor()
	links := make([]string, 35)
	for i := range links {
		links[i] = fmt.Sprintf("https://example.com/p%d", i)
	}
	sess := &fakeSession{}

	report := a.scanDeadLinks(context.Background(), sess, links)

	// Total counts every discovered link, but only the first 20 are
	// visited.
	assert.Equal(t, 35, report.Total)
	assert.Len(t, sess.visited, 20)
	assert.Equal(t, links[:20], sess.visited)
	assert.Equal(t, 0, report.Dead)
	assert.Equal(t, models.StatusPass, report.Status)
	assert.Equal(t, "No dead links found.", report.Message)
}

func TestScanDeadLinks_DeadOnNotFoundOrFailure(t *testing.T) {
	a := probeAuditor()
	sess := &fakeSession{statuses: map[string]int{
		"https://example.com/gone": http.StatusNotFound,
	}}
	links := []string{"https://example.com/ok", "https://example.com/gone"}

	report := a.scanDeadLinks(context.Background(), sess, links)

	assert.Equal(t, 1, report.Dead)
	assert.Equal(t, []string{"https://example.com/gone"}, report.DeadLinkList)
	assert.Equal(t, models.StatusWarning, report.Status)
	assert.Contains(t, report.Message, "1 dead link")
}

func TestScanDeadLinks_Empty(t *testing.T) {
	a := probeAuditor()

	report := a.scanDeadLinks(context.Background(), &fakeSession{}, nil)

	assert.Equal(t, 0, report.Total)
	assert.Equal(t, models.StatusPass, report.Status)
}

func TestClassifyAccessibility_AllPass(t *testing.T) {
	result := classifyAccessibility(
		models.Check{Status: models.StatusPass},
		models.DeadLinkReport{Status: models.StatusPass},
		models.ReadabilityCheck{Status: models.StatusPass, Score: 100},
	)

	assert.Equal(t, models.ScorePass, result.Score)
	assert.Equal(t, models.StatusPass, result.Status)
	assert.Empty(t, result.Suggestions)
	assert.Empty(t, result.Suggestion)
}

func TestClassifyAccessibility_WarningCollapsesToError(t *testing.T) {
	// A dead-link warning is enough to fail the module; sub-check
	// warnings are not forgiven at the module level.
	result := classifyAccessibility(
		models.Check{Status: models.StatusPass},
		models.DeadLinkReport{Status: models.StatusWarning, Dead: 2},
		models.ReadabilityCheck{Status: models.StatusPass, Score: 100},
	)

	assert.Equal(t, models.ScorePenalty, result.Score)
	assert.Equal(t, models.StatusError, result.Status)
	assert.Equal(t, []string{KindDeadLinks.Remediation()}, result.Suggestions)
	assert.Equal(t, KindDeadLinks.Remediation(), result.Suggestion)
}

func TestClassifyAccessibility_MultipleFailures(t *testing.T) {
	result := classifyAccessibility(
		models.Check{Status: models.StatusError},
		models.DeadLinkReport{Status: models.StatusWarning},
		models.ReadabilityCheck{Status: models.StatusWarning, Score: 40},
	)

	require.Len(t, result.Suggestions, 3)
	assert.Equal(t, KindNo404Page.Remediation(), result.Suggestions[0])
	assert.Equal(t, result.Suggestions[0], result.Suggestion)
	assert.Equal(t, models.ScorePenalty, result.Score)
}
