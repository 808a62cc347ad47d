package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
)

// Upload is a document to send for signature.
type Upload struct {
	FileName     string
	ContentType  string
	Content      io.Reader
	SignerEmails []string
}

// UploadResult is the decoded upload response.
type UploadResult struct {
	Message string `json:"message"`
	Data    struct {
		EnvelopeID string `json:"docuSignEnvelopeId"`
	} `json:"data"`
}

// EnvelopeID returns the signing envelope id, or "" when the API sent none.
func (r *UploadResult) EnvelopeID() string {
	return r.Data.EnvelopeID
}

// UploadDocument sends a document and its signer list to the API.
func (c *Client) UploadDocument(ctx context.Context, token string, u Upload) (*UploadResult, error) {
	if u.Content == nil {
		return nil, fmt.Errorf("upload %q has no content", u.FileName)
	}

	signers := u.SignerEmails
	if signers == nil {
		signers = []string{}
	}
	encodedSigners, err := json.Marshal(signers)
	if err != nil {
		return nil, fmt.Errorf("failed to encode signer emails: %w", err)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreatePart(fileHeader(u))
	if err != nil {
		return nil, fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := io.Copy(part, u.Content); err != nil {
		return nil, fmt.Errorf("failed to write file part: %w", err)
	}
	if err := mw.WriteField("signerEmails", string(encodedSigners)); err != nil {
		return nil, fmt.Errorf("failed to write signer emails: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish multipart body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/documents/upload", token, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var result UploadResult
	if err := c.do(req, &result); err != nil {
		return nil, err
	}

	c.logger.Info("document uploaded",
		"file", u.FileName,
		"signers", len(signers),
		"envelope_id", result.EnvelopeID())
	return &result, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func fileHeader(u Upload) textproto.MIMEHeader {
	contentType := u.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(u.FileName)))
	h.Set("Content-Type", contentType)
	return h
}
