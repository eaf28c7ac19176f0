package api

import (
	"context"
	"net/url"
	"strconv"

	smartwallet "github.com/Debraj8301/smart-wallet"
)

// Transaction is one extracted statement line after (or before) the agent's
// categorization pass.
type Transaction struct {
	ID                 int64    `json:"id"`
	Date               string   `json:"date"`
	Details            string   `json:"transaction_details"`
	Type               string   `json:"transaction_type"`
	Amount             float64  `json:"amount"`
	Category           string   `json:"category"`
	Tags               []string `json:"tags"`
	StatementType      string   `json:"statement_type"`
	VerificationStatus string   `json:"verification_status"`
}

// TransactionFilter narrows a transaction listing. Zero values mean
// "no filter"; amounts use pointers because zero is a meaningful bound.
type TransactionFilter struct {
	StartDate string // YYYY-MM-DD
	EndDate   string // YYYY-MM-DD
	MinAmount *float64
	MaxAmount *float64
	Category  string
	Type      string // Credit or Debit
	// StatementType accepts the same loose spellings as uploads.
	StatementType      string
	VerificationStatus string
	Tags               []string
	Search             string
	Limit              int // backend default 50, cap 1000
	Offset             int
}

// TransactionPage is one page of a filtered listing, newest first, with the
// total match count for pagination.
type TransactionPage struct {
	Data   []Transaction `json:"data"`
	Count  int           `json:"count"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

// Transactions lists transactions matching the filter. Date bounds and the
// statement type are validated locally before any I/O.
func (c *Client) Transactions(ctx context.Context, filter TransactionFilter) (*TransactionPage, error) {
	if err := smartwallet.ValidateDate(filter.StartDate); err != nil {
		return nil, err
	}
	if err := smartwallet.ValidateDate(filter.EndDate); err != nil {
		return nil, err
	}
	stype, err := smartwallet.NormalizeStatementType(filter.StatementType)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	set := func(key, value string) {
		if value != "" {
			q.Set(key, value)
		}
	}
	set("start_date", filter.StartDate)
	set("end_date", filter.EndDate)
	if filter.MinAmount != nil {
		q.Set("min_amount", strconv.FormatFloat(*filter.MinAmount, 'f', -1, 64))
	}
	if filter.MaxAmount != nil {
		q.Set("max_amount", strconv.FormatFloat(*filter.MaxAmount, 'f', -1, 64))
	}
	set("category", filter.Category)
	set("transaction_type", filter.Type)
	set("statement_type", stype)
	set("verification_status", filter.VerificationStatus)
	for _, tag := range filter.Tags {
		q.Add("tags", tag)
	}
	set("search", filter.Search)
	if filter.Limit > 0 {
		q.Set("limit", strconv.Itoa(filter.Limit))
	}
	if filter.Offset > 0 {
		q.Set("offset", strconv.Itoa(filter.Offset))
	}

	var page TransactionPage
	if err := c.get(ctx, "/transactions/", q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// StatsOverview summarizes the transactions that fed the charts.
type StatsOverview struct {
	TotalTransactions int `json:"total_transactions"`
	Unverified        int `json:"unverified"`
	Flagged           int `json:"flagged"`
}

// StatsCharts holds the three raw chart mappings. Key order of each mapping
// is preserved from the response document so series sorting and coloring stay
// reproducible.
type StatsCharts struct {
	CategoryDebits          smartwallet.Mapping `json:"category_debits"`
	TagSpending             smartwallet.Mapping `json:"tag_spending"`
	PaymentTypeDistribution smartwallet.Mapping `json:"payment_type_distribution"`
}

// StatsReport is the aggregate statistics payload for one month (or for all
// time when no month filter was given).
type StatsReport struct {
	Overview StatsOverview `json:"overview"`
	Charts   StatsCharts   `json:"charts"`
}

// Stats fetches aggregate transaction statistics. month is an optional
// YYYY-MM filter, validated before any I/O.
func (c *Client) Stats(ctx context.Context, month string) (*StatsReport, error) {
	if err := smartwallet.ValidateMonth(month); err != nil {
		return nil, err
	}
	var q url.Values
	if month != "" {
		q = url.Values{"month": {month}}
	}
	var report StatsReport
	if err := c.get(ctx, "/transactions/stats", q, &report); err != nil {
		return nil, err
	}
	return &report, nil
}
