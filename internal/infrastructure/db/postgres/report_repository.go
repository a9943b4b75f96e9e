package postgres

import (
	"context"

	"github.com/relaycrm/crm-api/internal/core/domain"
	"github.com/relaycrm/crm-api/internal/core/ports"
)

// ReportRepository runs the dashboard aggregates, one query per table.
type ReportRepository struct {
	db DBTX
}

func NewReportRepository(db DBTX) *ReportRepository {
	return &ReportRepository{db: db}
}

var _ ports.ReportRepository = (*ReportRepository)(nil)

func (r *ReportRepository) CustomerStats(ctx context.Context) (domain.CustomerStats, error) {
	var s domain.CustomerStats
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE created_at >= NOW() - INTERVAL '30 days')
		 FROM customers`).Scan(&s.Total, &s.NewThisMonth)
	if err != nil {
		return s, mapError(err, nil)
	}
	return s, nil
}

func (r *ReportRepository) LeadStats(ctx context.Context) (domain.LeadStats, error) {
	var s domain.LeadStats
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(value), 0)::float8,
		        COUNT(*) FILTER (WHERE stage = 'closed')
		 FROM leads`).Scan(&s.Total, &s.TotalValue, &s.Closed)
	if err != nil {
		return s, mapError(err, nil)
	}
	return s, nil
}

func (r *ReportRepository) TaskStats(ctx context.Context) (domain.TaskStats, error) {
	var s domain.TaskStats
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE status = 'completed'),
		        COUNT(*) FILTER (WHERE status = 'pending')
		 FROM tasks`).Scan(&s.Total, &s.Completed, &s.Pending)
	if err != nil {
		return s, mapError(err, nil)
	}
	return s, nil
}

func (r *ReportRepository) StageCounts(ctx context.Context) ([]ports.StageCount, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT stage::text, COUNT(*) FROM leads GROUP BY stage`)
	if err != nil {
		return nil, mapError(err, nil)
	}
	defer rows.Close()

	var counts []ports.StageCount
	for rows.Next() {
		var c ports.StageCount
		if err := rows.Scan(&c.Stage, &c.Count); err != nil {
			return nil, mapError(err, nil)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, nil)
	}
	return counts, nil
}

// ConversionBuckets groups leads created in the trailing window by the
// truncated period, oldest bucket first.
func (r *ReportRepository) ConversionBuckets(ctx context.Context, period domain.ReportPeriod, windowDays int) ([]domain.ConversionBucket, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT date_trunc($1::text, created_at) AS bucket,
		        COUNT(*),
		        COUNT(*) FILTER (WHERE stage = 'closed'),
		        COALESCE(SUM(value), 0)::float8
		 FROM leads
		 WHERE created_at >= NOW() - make_interval(days => $2::int)
		 GROUP BY bucket
		 ORDER BY bucket`,
		string(period), windowDays)
	if err != nil {
		return nil, mapError(err, nil)
	}
	defer rows.Close()

	buckets := []domain.ConversionBucket{}
	for rows.Next() {
		var b domain.ConversionBucket
		if err := rows.Scan(&b.Period, &b.Total, &b.Closed, &b.Value); err != nil {
			return nil, mapError(err, nil)
		}
		b.Period = b.Period.UTC()
		buckets = append(buckets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, nil)
	}
	return buckets, nil
}
