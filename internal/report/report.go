// Package report builds and renders the text dashboard report.
package report

import (
	"context"
	"time"

	"github.com/edmetric/lrslens/internal/analytics"
	"github.com/edmetric/lrslens/internal/model"
	"github.com/edmetric/lrslens/internal/store"
)

// Report contains precomputed data for report rendering.
type Report struct {
	Summary   model.DashboardSummary
	Anomalies model.AnomalyReport
	Config    model.ReportConfig
}

// Build loads the statement snapshot from the store, trims it to the report
// window, and runs the aggregation pass over it.
func Build(ctx context.Context, st *store.Store, eng *analytics.Engine, cfg model.ReportConfig, now time.Time) (Report, error) {
	stmts, err := st.ListStatements(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	// ListStatements orders ascending, so the window is the tail.
	if cfg.Last > 0 && len(stmts) > cfg.Last {
		stmts = stmts[len(stmts)-cfg.Last:]
	}

	summary, err := eng.DashboardFromPool(stmts, false, now)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Summary:   summary,
		Anomalies: eng.Anomalies(summary),
		Config:    cfg,
	}, nil
}
