package service

import (
	"context"
	"slices"
)

var defaultInsights = []string{
	"Revenue grew 12% this month",
	"Expenses trending lower than last quarter",
	"Healthy cash flow maintained",
}

type reportService struct {
	insights []string
}

// NewReportService returns a ReportService serving the fixed insights list.
func NewReportService() ReportService {
	return &reportService{insights: defaultInsights}
}

// Insights returns a copy, so callers cannot alter later responses.
func (s *reportService) Insights(ctx context.Context) []string {
	return slices.Clone(s.insights)
}
