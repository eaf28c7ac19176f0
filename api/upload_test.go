package api

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	smartwallet "github.com/Debraj8301/smart-wallet"
)

func writeStatement(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "statement.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4 fake"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestUploadStatement(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/upload-statement/" {
			t.Errorf("request = %s %s, want POST /upload-statement/", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("ParseMultipartForm() error = %v", err)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("FormFile() error = %v", err)
		}
		defer file.Close()
		if header.Filename != "statement.pdf" {
			t.Errorf("filename = %q, want statement.pdf", header.Filename)
		}
		if ct := header.Header.Get("Content-Type"); ct != "application/pdf" {
			t.Errorf("part content type = %q, want application/pdf", ct)
		}
		if got := r.FormValue("statement_type"); got != "Credit Card" {
			t.Errorf("statement_type = %q, want Credit Card", got)
		}
		w.Write([]byte(`{"message":"Statement uploaded, 17 transactions extracted"}`))
	}))

	receipt, err := client.UploadStatement(context.Background(), writeStatement(t), "credit-card")
	if err != nil {
		t.Fatalf("UploadStatement() error = %v", err)
	}
	if receipt.Message == "" {
		t.Error("receipt message is empty")
	}
}

func TestUploadStatement_OmitsEmptyType(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("ParseMultipartForm() error = %v", err)
		}
		if _, ok := r.MultipartForm.Value["statement_type"]; ok {
			t.Error("statement_type field sent despite empty input")
		}
		w.Write([]byte(`{"message":"ok"}`))
	}))

	if _, err := client.UploadStatement(context.Background(), writeStatement(t), ""); err != nil {
		t.Fatalf("UploadStatement() error = %v", err)
	}
}

func TestUploadStatement_RejectsUnknownType(t *testing.T) {
	requests := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))

	_, err := client.UploadStatement(context.Background(), writeStatement(t), "crypto")
	var verr *smartwallet.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("UploadStatement() error = %v, want validation error", err)
	}
	if requests != 0 {
		t.Errorf("backend received %d requests for an invalid type, want 0", requests)
	}
}

func TestUploadStatement_MissingFile(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	if _, err := client.UploadStatement(context.Background(), "/nonexistent/statement.pdf", "bank"); err == nil {
		t.Error("UploadStatement() = nil error for a missing file, want error")
	}
}
