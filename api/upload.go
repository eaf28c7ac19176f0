package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"

	smartwallet "github.com/Debraj8301/smart-wallet"
)

// UploadReceipt acknowledges an accepted statement upload. The extraction
// itself runs in the backend's background; JobID only identifies the upload
// in backend logs.
type UploadReceipt struct {
	Message string `json:"message"`
	JobID   string `json:"job_id"`
}

// UploadStatement sends a PDF statement for extraction. statementType may be
// empty or any loose spelling of Bank, Credit Card or UPI; it is normalized
// locally the same way the backend does it.
func (c *Client) UploadStatement(ctx context.Context, path, statementType string) (*UploadReceipt, error) {
	stype, err := smartwallet.NormalizeStatementType(statementType)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open statement file: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	// The backend rejects anything but application/pdf, so the part must
	// carry an explicit content type.
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filepath.Base(path)))
	header.Set("Content-Type", "application/pdf")
	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("cannot build upload form: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("cannot read statement file: %w", err)
	}
	if stype != "" {
		if err := mw.WriteField("statement_type", stype); err != nil {
			return nil, fmt.Errorf("cannot build upload form: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("cannot finish upload form: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/upload-statement/", nil, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var receipt UploadReceipt
	if err := c.execute(req, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}
