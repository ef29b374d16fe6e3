package service

import (
	"context"
	"time"

	"github.com/muneer-ahmed-khan/ecom-admin-api/internal/dto"
	"github.com/muneer-ahmed-khan/ecom-admin-api/internal/repository"

	"github.com/shopspring/decimal"
)

// ReportService builds the read-side sales aggregations. It never mutates
// anything: repeated calls with no intervening writes return identical results.
type ReportService interface {
	Revenue(ctx context.Context, period, from, to string) (*dto.RevenueReportResponse, error)
	Compare(ctx context.Context, currentFrom, currentTo, previousFrom, previousTo string) (*dto.CompareReportResponse, error)
}

type reportService struct {
	sales repository.SaleRepository
}

func NewReportService(sales repository.SaleRepository) ReportService {
	return &reportService{sales: sales}
}

// periodBuckets maps the API period names onto date_trunc fields, with a
// default reporting window for each granularity.
var periodBuckets = map[string]struct {
	truncField    string
	defaultWindow time.Duration
}{
	"daily":   {"day", 30 * 24 * time.Hour},
	"weekly":  {"week", 12 * 7 * 24 * time.Hour},
	"monthly": {"month", 365 * 24 * time.Hour},
}

func parseRangeBound(raw string, fallback time.Time) (time.Time, error) {
	if raw == "" {
		return fallback, nil
	}
	return parseSaleDate(raw)
}

func (s *reportService) Revenue(ctx context.Context, period, from, to string) (*dto.RevenueReportResponse, error) {
	if period == "" {
		period = "daily"
	}
	bucket, ok := periodBuckets[period]
	if !ok {
		return nil, invalidf("period must be daily, weekly or monthly, got %q", period)
	}

	now := time.Now().UTC()
	toTime, err := parseRangeBound(to, now)
	if err != nil {
		return nil, invalidf("to %q is not a valid date", to)
	}
	fromTime, err := parseRangeBound(from, toTime.Add(-bucket.defaultWindow))
	if err != nil {
		return nil, invalidf("from %q is not a valid date", from)
	}
	if fromTime.After(toTime) {
		return nil, invalidf("from must not be after to")
	}

	rows, err := s.sales.RevenueByPeriod(ctx, bucket.truncField, fromTime, toTime)
	if err != nil {
		return nil, err
	}

	buckets := make([]dto.RevenueBucketResponse, 0, len(rows))
	for _, r := range rows {
		buckets = append(buckets, dto.RevenueBucketResponse{
			Period:  r.Period.UTC().Format("2006-01-02"),
			Orders:  r.Orders,
			Units:   r.Units,
			Revenue: r.Revenue,
		})
	}

	return &dto.RevenueReportResponse{
		Period:  period,
		From:    fromTime.Format("2006-01-02"),
		To:      toTime.Format("2006-01-02"),
		Buckets: buckets,
	}, nil
}

func (s *reportService) Compare(ctx context.Context, currentFrom, currentTo, previousFrom, previousTo string) (*dto.CompareReportResponse, error) {
	ranges := [4]struct {
		name string
		raw  string
	}{
		{"current_from", currentFrom},
		{"current_to", currentTo},
		{"previous_from", previousFrom},
		{"previous_to", previousTo},
	}
	var parsed [4]time.Time
	for i, r := range ranges {
		if r.raw == "" {
			return nil, invalidf("%s is required", r.name)
		}
		t, err := parseSaleDate(r.raw)
		if err != nil {
			return nil, invalidf("%s %q is not a valid date", r.name, r.raw)
		}
		parsed[i] = t
	}
	if parsed[0].After(parsed[1]) || parsed[2].After(parsed[3]) {
		return nil, invalidf("range start must not be after range end")
	}

	current, err := s.sales.SumRange(ctx, parsed[0], parsed[1])
	if err != nil {
		return nil, err
	}
	previous, err := s.sales.SumRange(ctx, parsed[2], parsed[3])
	if err != nil {
		return nil, err
	}

	change := current.Revenue.Sub(previous.Revenue)
	var pct *decimal.Decimal
	if !previous.Revenue.IsZero() {
		v := change.Div(previous.Revenue).Mul(decimal.NewFromInt(100)).Round(2)
		pct = &v
	}

	return &dto.CompareReportResponse{
		Current: dto.RangeSummary{
			From:    parsed[0].Format("2006-01-02"),
			To:      parsed[1].Format("2006-01-02"),
			Orders:  current.Orders,
			Units:   current.Units,
			Revenue: current.Revenue,
		},
		Previous: dto.RangeSummary{
			From:    parsed[2].Format("2006-01-02"),
			To:      parsed[3].Format("2006-01-02"),
			Orders:  previous.Orders,
			Units:   previous.Units,
			Revenue: previous.Revenue,
		},
		RevenueChange:    change,
		RevenueChangePct: pct,
	}, nil
}
