package ports

import (
	"context"

	"github.com/relaycrm/crm-api/internal/core/domain"
)

// StageCount is one row of the lead stage histogram. Stage is kept as a
// raw string so unknown values can be dropped by the caller.
type StageCount struct {
	Stage string
	Count int64
}

// ReportRepository runs the read-only aggregate queries.
type ReportRepository interface {
	CustomerStats(ctx context.Context) (domain.CustomerStats, error)
	// LeadStats fills everything except ConversionRate.
	LeadStats(ctx context.Context) (domain.LeadStats, error)
	TaskStats(ctx context.Context) (domain.TaskStats, error)
	StageCounts(ctx context.Context) ([]StageCount, error)
	// ConversionBuckets fills everything except ConversionRate.
	ConversionBuckets(ctx context.Context, period domain.ReportPeriod, windowDays int) ([]domain.ConversionBucket, error)
}
