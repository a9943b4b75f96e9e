package service

import (
	"context"
	"fmt"

	"github.com/relaycrm/crm-api/internal/core/domain"
	"github.com/relaycrm/crm-api/internal/core/ports"
)

type ReportService struct {
	repo ports.ReportRepository
}

func NewReportService(repo ports.ReportRepository) *ReportService {
	return &ReportService{repo: repo}
}

func (s *ReportService) Dashboard(ctx context.Context) (*domain.Dashboard, error) {
	customers, err := s.repo.CustomerStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard customers: %w", err)
	}
	leads, err := s.repo.LeadStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard leads: %w", err)
	}
	tasks, err := s.repo.TaskStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard tasks: %w", err)
	}
	counts, err := s.repo.StageCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard stages: %w", err)
	}

	leads.ConversionRate = domain.ConversionRate(leads.Closed, leads.Total)

	return &domain.Dashboard{
		Customers:         customers,
		Leads:             leads,
		Tasks:             tasks,
		StageDistribution: stageDistribution(counts),
	}, nil
}

func (s *ReportService) Conversion(ctx context.Context, period domain.ReportPeriod) (*domain.ConversionReport, error) {
	if period == "" {
		period = domain.PeriodMonth
	}
	if !period.Valid() {
		return nil, fmt.Errorf("conversion report: unknown period %q", period)
	}
	window := period.WindowDays()

	buckets, err := s.repo.ConversionBuckets(ctx, period, window)
	if err != nil {
		return nil, fmt.Errorf("conversion report: %w", err)
	}
	if buckets == nil {
		buckets = []domain.ConversionBucket{}
	}

	var sum float64
	for i := range buckets {
		buckets[i].ConversionRate = domain.ConversionRate(buckets[i].Closed, buckets[i].Total)
		sum += buckets[i].ConversionRate
	}
	var avg float64
	if len(buckets) > 0 {
		avg = domain.Round2(sum / float64(len(buckets)))
	}

	return &domain.ConversionReport{
		Period:                period,
		WindowDays:            window,
		Buckets:               buckets,
		AverageConversionRate: avg,
	}, nil
}

// stageDistribution always reports the four known stages and drops
// anything else the table may contain.
func stageDistribution(counts []ports.StageCount) map[domain.LeadStage]int64 {
	dist := make(map[domain.LeadStage]int64, len(domain.Stages))
	for _, s := range domain.Stages {
		dist[s] = 0
	}
	for _, c := range counts {
		stage := domain.LeadStage(c.Stage)
		if stage.Valid() {
			dist[stage] += c.Count
		}
	}
	return dist
}
