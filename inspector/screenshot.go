package inspector

import (
	"context"

	"github.com/go-rod/rod/lib/proto"
	"github.com/use-agent/sitelens/models"
)

// Highlight scrolls the first element matching selector into view and
// outlines it in red, so the element stands out in a later screenshot.
// A selector that matches nothing is not an error.
func (s *Session) Highlight(ctx context.Context, selector string) error {
	p := s.page.Context(ctx)
	_, err := p.Eval(`(sel) => {
		const el = document.querySelector(sel);
		if (el) {
			el.scrollIntoView({ behavior: 'auto', block: 'center' });
			el.style.outline = '3px solid red';
			el.style.background = 'rgba(255,0,0,0.08)';
		}
	}`, selector)
	if err != nil {
		return models.NewAuditError(
			models.ErrCodeEvaluation,
			"failed to highlight selector",
			err,
		)
	}
	return nil
}

// Screenshot captures a full-page PNG of the current page.
func (s *Session) Screenshot(ctx context.Context) ([]byte, error) {
	p := s.page.Context(ctx)
	bin, err := p.Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, models.NewAuditError(
			models.ErrCodeEvaluation,
			"failed to capture screenshot",
			err,
		)
	}
	return bin, nil
}
