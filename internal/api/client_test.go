package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/signdesk/internal/testutil"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL + "/"}, testutil.NewTestLogger(t))
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(Config{BaseURL: "https://api.example.com/"}, nil)
	assert.Equal(t, "https://api.example.com/api/v1", c.BaseURL())
	assert.Equal(t, DefaultTimeout, c.httpClient.Timeout)

	c = NewClient(Config{BaseURL: "https://api.example.com", Timeout: time.Second}, nil)
	assert.Equal(t, time.Second, c.httpClient.Timeout)

	c.WithHTTPClient(&http.Client{})
	assert.Equal(t, time.Second, c.httpClient.Timeout)
}

func TestUploadDocument_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/documents/upload", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer func() { _ = file.Close() }()
		content, _ := io.ReadAll(file)
		assert.Equal(t, "contract.pdf", header.Filename)
		assert.Equal(t, "application/pdf", header.Header.Get("Content-Type"))
		assert.Equal(t, "%PDF-1.7", string(content))

		var signers []string
		require.NoError(t, json.Unmarshal([]byte(r.FormValue("signerEmails")), &signers))
		assert.Equal(t, []string{"a@b.co", "c@d.co"}, signers)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"ok","data":{"docuSignEnvelopeId":"env-42"}}`))
	})

	res, err := c.UploadDocument(context.Background(), "tok-1", Upload{
		FileName:     "contract.pdf",
		ContentType:  "application/pdf",
		Content:      strings.NewReader("%PDF-1.7"),
		SignerEmails: []string{"a@b.co", "c@d.co"},
	})
	require.NoError(t, err)
	assert.Equal(t, "env-42", res.EnvelopeID())
}

func TestUploadDocument_EmptySuccessBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	res, err := c.UploadDocument(context.Background(), "tok", Upload{FileName: "a.pdf", Content: strings.NewReader("x")})
	require.NoError(t, err)
	assert.Empty(t, res.EnvelopeID())
}

func TestUploadDocument_NoSignersSendsEmptyArray(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "[]", r.FormValue("signerEmails"))
		w.WriteHeader(http.StatusOK)
	})

	_, err := c.UploadDocument(context.Background(), "", Upload{FileName: "a.pdf", Content: strings.NewReader("x")})
	require.NoError(t, err)
}

func TestUploadDocument_Errors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantStatus  int
		wantMessage string
	}{
		{name: "message", status: http.StatusBadRequest, body: `{"message":"invalid file type"}`, wantStatus: 400, wantMessage: "invalid file type"},
		{name: "no message", status: http.StatusInternalServerError, body: `{"error":"boom"}`, wantStatus: 500},
		{name: "not json", status: http.StatusBadGateway, body: `<html>bad gateway</html>`, wantStatus: 502},
		{name: "empty", status: http.StatusUnauthorized, wantStatus: 401},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.UploadDocument(context.Background(), "tok", Upload{FileName: "a.pdf", Content: strings.NewReader("x")})
			require.Error(t, err)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.wantStatus, apiErr.Status)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			assert.Equal(t, tt.wantMessage, MessageOf(err))
		})
	}
}

func TestUploadDocument_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	c := NewClient(Config{BaseURL: srv.URL}, nil)
	_, err := c.UploadDocument(context.Background(), "tok", Upload{FileName: "a.pdf", Content: strings.NewReader("x")})
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
	assert.Empty(t, MessageOf(err))
}

func TestUploadDocument_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		<-release
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	c := NewClient(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond}, nil)
	_, err := c.UploadDocument(context.Background(), "tok", Upload{FileName: "a.pdf", Content: strings.NewReader("x")})
	require.Error(t, err)
}

func TestUploadDocument_NoContent(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://unused"}, nil)
	_, err := c.UploadDocument(context.Background(), "tok", Upload{FileName: "a.pdf"})
	assert.Error(t, err)
}

func TestSignIn(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    Session
		wantErr bool
	}{
		{name: "top level", body: `{"accessToken":"t1","email":"a@b.co","name":"Ann"}`, want: Session{AccessToken: "t1", Email: "a@b.co", Name: "Ann"}},
		{name: "data envelope", body: `{"data":{"accessToken":"t2","email":"a@b.co"}}`, want: Session{AccessToken: "t2", Email: "a@b.co"}},
		{name: "no token", body: `{"email":"a@b.co"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/v1/auth/sign-in", r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				assert.Empty(t, r.Header.Get("Authorization"))

				var payload map[string]string
				require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
				assert.Equal(t, "a@b.co", payload["email"])
				assert.Equal(t, "secret", payload["password"])

				_, _ = w.Write([]byte(tt.body))
			})

			got, err := c.SignIn(context.Background(), "a@b.co", "secret")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAccountCalls(t *testing.T) {
	var paths []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if r.URL.Path == "/api/v1/auth/verify-token" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"message":"token expired"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	ctx := context.Background()

	require.NoError(t, c.SignUp(ctx, SignUpRequest{Name: "Ann", Email: "a@b.co", Password: "pw"}))
	require.NoError(t, c.ForgotPassword(ctx, "a@b.co"))
	err := c.VerifyToken(ctx, "a@b.co", "123456")
	assert.Equal(t, "token expired", MessageOf(err))
	require.NoError(t, c.ResetPassword(ctx, "a@b.co", "new-pw"))

	assert.Equal(t, []string{
		"/api/v1/auth/sign-up",
		"/api/v1/auth/forgot-password",
		"/api/v1/auth/verify-token",
		"/api/v1/auth/reset-password",
	}, paths)
}

func TestAPIError_Error(t *testing.T) {
	assert.Equal(t, "api returned status 400: bad", (&APIError{Status: 400, Message: "bad"}).Error())
	assert.Equal(t, "api returned status 500", (&APIError{Status: 500}).Error())
}
