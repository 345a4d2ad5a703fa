package audit

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/use-agent/sitelens/models"
)

// linkVisitor is the slice of a rendering session the dead-link scan
// needs: navigate and report the response status.
type linkVisitor interface {
	NavigateStatus(ctx context.Context, target string, timeout time.Duration) (int, error)
}

// scanDeadLinks visits at most MaxDeadLinks of the given links,
// sequentially and within the same session, in discovery order. A 404
// response or any navigation failure counts as dead; the scan itself
// never aborts on a flaky link. Dead links downgrade the check to a
// warning, never an error.
func (a *Auditor) scanDeadLinks(ctx context.Context, sess linkVisitor, links []string) models.DeadLinkReport {
	report := models.DeadLinkReport{
		Total:        len(links),
		DeadLinkList: []string{},
	}

	limit := a.auditCfg.MaxDeadLinks
	for i := 0; i < len(links) && i < limit; i++ {
		status, err := sess.NavigateStatus(ctx, links[i], a.auditCfg.LinkTimeout)
		if err != nil || status == http.StatusNotFound {
			report.Dead++
			report.DeadLinkList = append(report.DeadLinkList, links[i])
		}
	}

	if report.Dead == 0 {
		report.Status = models.StatusPass
		report.Message = "No dead links found."
	} else {
		report.Status = models.StatusWarning
		report.Message = fmt.Sprintf("Found %d dead link(s); fix them.", report.Dead)
	}
	return report
}
