package api

import (
	"context"
	"errors"
	"net/http"
	"testing"

	smartwallet "github.com/Debraj8301/smart-wallet"
)

func TestTransactions(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transactions/" {
			t.Errorf("path = %q, want /transactions/", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("start_date") != "2025-06-01" || q.Get("end_date") != "2025-06-30" {
			t.Errorf("date bounds = %q..%q", q.Get("start_date"), q.Get("end_date"))
		}
		if q.Get("category") != "Food" || q.Get("transaction_type") != "Debit" {
			t.Errorf("filters = %v", q)
		}
		if q.Get("statement_type") != "Credit Card" {
			t.Errorf("statement_type = %q, want normalized Credit Card", q.Get("statement_type"))
		}
		if got := q["tags"]; len(got) != 2 || got[0] != "impulse" || got[1] != "recurring" {
			t.Errorf("tags = %v, want [impulse recurring]", got)
		}
		if q.Get("min_amount") != "100" {
			t.Errorf("min_amount = %q, want 100", q.Get("min_amount"))
		}
		if q.Get("limit") != "10" || q.Get("offset") != "20" {
			t.Errorf("pagination = limit %q offset %q", q.Get("limit"), q.Get("offset"))
		}
		w.Write([]byte(`{
			"data": [
				{"id": 7, "date": "2025-06-12", "transaction_details": "SWIGGY ORDER",
				 "transaction_type": "Debit", "amount": 450.5, "category": "Food",
				 "tags": ["impulse"], "statement_type": "Credit Card",
				 "verification_status": "ai_verified"}
			],
			"count": 31, "limit": 10, "offset": 20
		}`))
	}))

	min := 100.0
	page, err := client.Transactions(context.Background(), TransactionFilter{
		StartDate:     "2025-06-01",
		EndDate:       "2025-06-30",
		MinAmount:     &min,
		Category:      "Food",
		Type:          "Debit",
		StatementType: "credit-card",
		Tags:          []string{"impulse", "recurring"},
		Limit:         10,
		Offset:        20,
	})
	if err != nil {
		t.Fatalf("Transactions() error = %v", err)
	}
	if page.Count != 31 {
		t.Errorf("Count = %d, want 31", page.Count)
	}
	if len(page.Data) != 1 {
		t.Fatalf("len(Data) = %d, want 1", len(page.Data))
	}
	tx := page.Data[0]
	if tx.Details != "SWIGGY ORDER" || tx.Amount != 450.5 || tx.Category != "Food" {
		t.Errorf("Data[0] = %+v", tx)
	}
}

func TestTransactions_NoFilter(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "" {
			t.Errorf("query = %q, want none", r.URL.RawQuery)
		}
		w.Write([]byte(`{"data":[],"count":0,"limit":50,"offset":0}`))
	}))

	page, err := client.Transactions(context.Background(), TransactionFilter{})
	if err != nil {
		t.Fatalf("Transactions() error = %v", err)
	}
	if len(page.Data) != 0 {
		t.Errorf("Data = %v, want empty", page.Data)
	}
}

func TestTransactions_InvalidDateBlocksRequest(t *testing.T) {
	requests := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))

	_, err := client.Transactions(context.Background(), TransactionFilter{StartDate: "12/06/2025"})
	var verr *smartwallet.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("Transactions() error = %v, want validation error", err)
	}
	if requests != 0 {
		t.Errorf("backend received %d requests for an invalid date, want 0", requests)
	}
}

func TestStats(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transactions/stats" {
			t.Errorf("path = %q, want /transactions/stats", r.URL.Path)
		}
		if got := r.URL.Query().Get("month"); got != "2025-06" {
			t.Errorf("month = %q, want 2025-06", got)
		}
		w.Write([]byte(`{
			"overview": {"total_transactions": 42, "unverified": 3, "flagged": 1},
			"charts": {
				"category_debits": {"Food": 30, "Transport": 10, "Rent": 30},
				"tag_spending": {"Impulse": 12},
				"payment_type_distribution": {"UPI": 30, "Card": 12}
			}
		}`))
	}))

	report, err := client.Stats(context.Background(), "2025-06")
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if report.Overview.TotalTransactions != 42 {
		t.Errorf("TotalTransactions = %d, want 42", report.Overview.TotalTransactions)
	}

	// document key order must survive decoding
	wantOrder := []string{"Food", "Transport", "Rent"}
	for i, want := range wantOrder {
		if report.Charts.CategoryDebits[i].Label != want {
			t.Errorf("CategoryDebits[%d] = %q, want %q", i, report.Charts.CategoryDebits[i].Label, want)
		}
	}
}

func TestStats_NoMonthFilter(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "" {
			t.Errorf("query = %q, want none", r.URL.RawQuery)
		}
		w.Write([]byte(`{"overview":{},"charts":{}}`))
	}))

	if _, err := client.Stats(context.Background(), ""); err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
}

func TestStats_InvalidMonthBlocksRequest(t *testing.T) {
	requests := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))

	_, err := client.Stats(context.Background(), "June 2025")
	var verr *smartwallet.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("Stats() error = %v, want validation error", err)
	}
	if requests != 0 {
		t.Errorf("backend received %d requests for an invalid month, want 0", requests)
	}
}
