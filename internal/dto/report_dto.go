package dto

import "github.com/shopspring/decimal"

// ── Revenue by period ─────────────────────────────────────────────────────────

type RevenueBucketResponse struct {
	Period  string          `json:"period"`
	Orders  int64           `json:"orders"`
	Units   int64           `json:"units"`
	Revenue decimal.Decimal `json:"revenue"`
}

type RevenueReportResponse struct {
	Period  string                  `json:"period"` // daily | weekly | monthly
	From    string                  `json:"from"`
	To      string                  `json:"to"`
	Buckets []RevenueBucketResponse `json:"buckets"`
}

// ── Range comparison ──────────────────────────────────────────────────────────

type RangeSummary struct {
	From    string          `json:"from"`
	To      string          `json:"to"`
	Orders  int64           `json:"orders"`
	Units   int64           `json:"units"`
	Revenue decimal.Decimal `json:"revenue"`
}

type CompareReportResponse struct {
	Current  RangeSummary `json:"current"`
	Previous RangeSummary `json:"previous"`
	// RevenueChange = current - previous; RevenueChangePct is nil when the
	// previous range had zero revenue.
	RevenueChange    decimal.Decimal  `json:"revenue_change"`
	RevenueChangePct *decimal.Decimal `json:"revenue_change_pct"`
}
