package contactclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/zach-dev/internal/contact"
)

func TestClient_Submit_Success(t *testing.T) {
	t.Parallel()

	var got contact.Submission
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"Message sent successfully!"}`))
	}))
	t.Cleanup(srv.Close)

	sub := contact.Submission{Name: "Jane", Email: "jane@x.com", Message: "Hello"}
	msg, err := New(srv.URL).Submit(context.Background(), sub)

	require.NoError(t, err)
	assert.Equal(t, "Message sent successfully!", msg)
	assert.Equal(t, sub, got)
}

func TestClient_Submit_StatusErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{name: "validation", status: http.StatusBadRequest, body: `{"error":"Missing required fields."}`, wantMsg: "Missing required fields."},
		{name: "method", status: http.StatusMethodNotAllowed, body: `{"message":"Only POST requests allowed"}`, wantMsg: "Only POST requests allowed"},
		{name: "dispatch", status: http.StatusInternalServerError, body: `{"error":"Failed to send message."}`, wantMsg: "Failed to send message."},
		{name: "html page", status: http.StatusBadGateway, body: `<html>bad gateway</html>`, wantMsg: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			t.Cleanup(srv.Close)

			_, err := New(srv.URL).Submit(context.Background(), contact.Submission{Name: "a", Email: "b", Message: "c"})

			var se *StatusError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.status, se.StatusCode)
			assert.Equal(t, tt.wantMsg, se.Message)
		})
	}
}

func TestClient_Submit_NetworkFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url).Submit(context.Background(), contact.Submission{Name: "a", Email: "b", Message: "c"})

	require.Error(t, err)
	var se *StatusError
	assert.False(t, errors.As(err, &se))
}

func TestClient_WithHTTPClient(t *testing.T) {
	t.Parallel()

	called := false
	hc := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		called = true
		return nil, errors.New("offline")
	})}

	_, err := New("http://example.invalid/api/contact", WithHTTPClient(hc)).
		Submit(context.Background(), contact.Submission{})

	require.Error(t, err)
	assert.True(t, called)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestStatusError_Error(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "contact endpoint returned 500: boom", (&StatusError{StatusCode: 500, Message: "boom"}).Error())
	assert.Equal(t, "contact endpoint returned 502", (&StatusError{StatusCode: 502}).Error())
}
