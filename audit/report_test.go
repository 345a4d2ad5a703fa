package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/use-agent/sitelens/models"
)

func stubRunner(basicScore, seoScore, techScore, accessScore int) moduleRunner {
	return moduleRunner{
		basic: func(context.Context, string) (*models.BasicInfoResult, error) {
			return &models.BasicInfoResult{
				Score:   basicScore,
				Status:  models.StatusPass,
				Message: "All basic site information is present.",
			}, nil
		},
		seo: func(context.Context, string) (*models.SEOElementsResult, error) {
			return &models.SEOElementsResult{Score: seoScore, Status: models.StatusPass}, nil
		},
		tech: func(context.Context, string) (*models.TechSEOResult, error) {
			return &models.TechSEOResult{Score: techScore, Status: models.StatusPass}, nil
		},
		access: func(context.Context, string) (*models.AccessibilityResult, error) {
			return &models.AccessibilityResult{Score: accessScore, Status: models.StatusPass}, nil
		},
	}
}

func TestRunReport_WeightedTotal(t *testing.T) {
	report, err := runReport(context.Background(), "https://example.com", stubRunner(90, 80, 70, 60))

	require.NoError(t, err)
	assert.Equal(t, "https://example.com", report.URL)
	assert.Equal(t, 75, report.TotalScore)
	assert.Equal(t, 90, report.Modules.Basic.Score)
	assert.Equal(t, 80, report.Modules.SEOElements.Score)
	assert.Equal(t, 70, report.Modules.TechSEO.Score)
	assert.Equal(t, 60, report.Modules.Accessibility.Score)
}

func TestRunReport_FlatScoresRound(t *testing.T) {
	// Three passes and one penalty: 0.25 * 360 = 90.
	report, err := runReport(context.Background(), "https://example.com",
		stubRunner(models.ScorePass, models.ScorePass, models.ScorePass, models.ScorePenalty))

	require.NoError(t, err)
	assert.Equal(t, 90, report.TotalScore)
}

func TestRunReport_ModuleFailureNamesModule(t *testing.T) {
	r := stubRunner(100, 100, 100, 100)
	r.tech = func(context.Context, string) (*models.TechSEOResult, error) {
		return nil, errors.New("browser launch failed")
	}

	report, err := runReport(context.Background(), "https://example.com", r)

	require.Error(t, err)
	assert.Nil(t, report)
	assert.Contains(t, err.Error(), "tech-seo module failed")
	assert.Contains(t, err.Error(), "browser launch failed")
}

func TestRunReport_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := moduleRunner{
		basic: func(ctx context.Context, _ string) (*models.BasicInfoResult, error) {
			return nil, ctx.Err()
		},
		seo: func(ctx context.Context, _ string) (*models.SEOElementsResult, error) {
			return nil, ctx.Err()
		},
		tech: func(ctx context.Context, _ string) (*models.TechSEOResult, error) {
			return nil, ctx.Err()
		},
		access: func(ctx context.Context, _ string) (*models.AccessibilityResult, error) {
			return nil, ctx.Err()
		},
	}

	_, err := runReport(ctx, "https://example.com", r)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildReport_ModuleRollups(t *testing.T) {
	basic := &models.BasicInfoResult{
		Score:      models.ScorePenalty,
		Status:     models.StatusError,
		Message:    "Some basic site information is missing.",
		Suggestion: KindMissingBasicInfo.Remediation(),
	}
	seo := &models.SEOElementsResult{Score: models.ScorePass, Status: models.StatusPass}
	tech := &models.TechSEOResult{Score: models.ScorePass, Status: models.StatusPass}
	access := &models.AccessibilityResult{
		Score:       models.ScorePenalty,
		Status:      models.StatusError,
		Suggestion:  KindDeadLinks.Remediation(),
		Suggestions: []string{KindDeadLinks.Remediation(), KindPoorReadability.Remediation()},
	}

	report := buildReport("https://example.com", basic, seo, tech, access)

	assert.Equal(t, 80, report.TotalScore)
	assert.Equal(t, "Some basic site information is missing.", report.Modules.Basic.Message)
	assert.Equal(t, KindMissingBasicInfo.Remediation(), report.Modules.Basic.Suggestion)
	assert.Len(t, report.Modules.Accessibility.Suggestions, 2)
	assert.Equal(t, KindDeadLinks.Remediation(), report.Modules.Accessibility.Suggestion)
}
