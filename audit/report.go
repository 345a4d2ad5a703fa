package audit

import (
	"context"
	"fmt"
	"math"

	"github.com/use-agent/sitelens/models"
	"golang.org/x/sync/errgroup"
)

// moduleWeight is the equal weighting applied to each of the four
// module scores; the weights sum to 1.
const moduleWeight = 0.25

// moduleRunner holds the four module extraction functions. Report wires
// in the Auditor's own methods; tests substitute stubs.
type moduleRunner struct {
	basic  func(context.Context, string) (*models.BasicInfoResult, error)
	seo    func(context.Context, string) (*models.SEOElementsResult, error)
	tech   func(context.Context, string) (*models.TechSEOResult, error)
	access func(context.Context, string) (*models.AccessibilityResult, error)
}

// Report runs all four audit modules concurrently in-process and joins
// them into the weighted composite. If any module fails, the report
// fails with that module named; a partial composite is never produced.
func (a *Auditor) Report(ctx context.Context, target string) (*models.Report, error) {
	return runReport(ctx, target, moduleRunner{
		basic:  a.BasicInfo,
		seo:    a.SEOElements,
		tech:   a.TechSEO,
		access: a.Accessibility,
	})
}

func runReport(ctx context.Context, target string, r moduleRunner) (*models.Report, error) {
	var (
		basic  *models.BasicInfoResult
		seo    *models.SEOElementsResult
		tech   *models.TechSEOResult
		access *models.AccessibilityResult
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := r.basic(ctx, target)
		if err != nil {
			return fmt.Errorf("basic-info module failed: %w", err)
		}
		basic = res
		return nil
	})
	g.Go(func() error {
		res, err := r.seo(ctx, target)
		if err != nil {
			return fmt.Errorf("seo-elements module failed: %w", err)
		}
		seo = res
		return nil
	})
	g.Go(func() error {
		res, err := r.tech(ctx, target)
		if err != nil {
			return fmt.Errorf("tech-seo module failed: %w", err)
		}
		tech = res
		return nil
	})
	g.Go(func() error {
		res, err := r.access(ctx, target)
		if err != nil {
			return fmt.Errorf("accessibility module failed: %w", err)
		}
		access = res
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return buildReport(target, basic, seo, tech, access), nil
}

// buildReport computes the composite score and the per-module rollups.
func buildReport(target string, basic *models.BasicInfoResult, seo *models.SEOElementsResult, tech *models.TechSEOResult, access *models.AccessibilityResult) *models.Report {
	sum := float64(basic.Score) + float64(seo.Score) + float64(tech.Score) + float64(access.Score)
	return &models.Report{
		URL:        target,
		TotalScore: int(math.Round(moduleWeight * sum)),
		Modules: models.ReportModules{
			Basic: models.ModuleSummary{
				Score:      basic.Score,
				Status:     basic.Status,
				Suggestion: basic.Suggestion,
				Message:    basic.Message,
			},
			SEOElements: models.ModuleSummary{
				Score:      seo.Score,
				Status:     seo.Status,
				Suggestion: seo.Suggestion,
			},
			TechSEO: models.ModuleSummary{
				Score:      tech.Score,
				Status:     tech.Status,
				Suggestion: tech.Suggestion,
			},
			Accessibility: models.ModuleSummary{
				Score:       access.Score,
				Status:      access.Status,
				Suggestion:  access.Suggestion,
				Suggestions: access.Suggestions,
			},
		},
	}
}
