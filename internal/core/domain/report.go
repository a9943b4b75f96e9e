package domain

import (
	"math"
	"time"
)

// CustomerStats summarises the customer table.
type CustomerStats struct {
	Total        int64 `json:"total"`
	NewThisMonth int64 `json:"newThisMonth"`
}

// LeadStats summarises the lead table.
type LeadStats struct {
	Total          int64   `json:"total"`
	TotalValue     float64 `json:"totalValue"`
	Closed         int64   `json:"closed"`
	ConversionRate float64 `json:"conversionRate"`
}

// TaskStats summarises the task table.
type TaskStats struct {
	Total     int64 `json:"total"`
	Completed int64 `json:"completed"`
	Pending   int64 `json:"pending"`
}

// Dashboard is the aggregate served to the dashboard view.
type Dashboard struct {
	Customers         CustomerStats       `json:"customers"`
	Leads             LeadStats           `json:"leads"`
	Tasks             TaskStats           `json:"tasks"`
	StageDistribution map[LeadStage]int64 `json:"stageDistribution"`
}

// ReportPeriod selects the bucket size of the conversion report.
type ReportPeriod string

const (
	PeriodWeek    ReportPeriod = "week"
	PeriodMonth   ReportPeriod = "month"
	PeriodQuarter ReportPeriod = "quarter"
	PeriodYear    ReportPeriod = "year"
)

// WindowDays is the trailing window, in days, matching the period.
func (p ReportPeriod) WindowDays() int {
	switch p {
	case PeriodWeek:
		return 7
	case PeriodQuarter:
		return 90
	case PeriodYear:
		return 365
	default:
		return 30
	}
}

// Valid reports whether p is a known period.
func (p ReportPeriod) Valid() bool {
	switch p {
	case PeriodWeek, PeriodMonth, PeriodQuarter, PeriodYear:
		return true
	}
	return false
}

// ConversionBucket is one truncated period of the conversion report.
type ConversionBucket struct {
	Period         time.Time `json:"period"`
	Total          int64     `json:"total"`
	Closed         int64     `json:"closed"`
	Value          float64   `json:"value"`
	ConversionRate float64   `json:"conversionRate"`
}

// ConversionReport groups lead conversion by period.
type ConversionReport struct {
	Period                ReportPeriod       `json:"period"`
	WindowDays            int                `json:"windowDays"`
	Buckets               []ConversionBucket `json:"buckets"`
	AverageConversionRate float64            `json:"averageConversionRate"`
}

// ConversionRate is closed/total*100 rounded to two decimals, 0 when total is 0.
func ConversionRate(closed, total int64) float64 {
	if total == 0 {
		return 0
	}
	return Round2(float64(closed) / float64(total) * 100)
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
