package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher_Fetch(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		wantErr    bool
	}{
		{name: "ok", statusCode: http.StatusOK, body: "<html><body>hi</body></html>"},
		{name: "not found", statusCode: http.StatusNotFound, body: "missing", wantErr: true},
		{name: "server error", statusCode: http.StatusInternalServerError, wantErr: true},
		{name: "no content is not ok", statusCode: http.StatusNoContent, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			f := New(Options{})
			result, err := f.Fetch(context.Background(), server.URL)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnexpectedStatus))
				assert.Equal(t, tt.statusCode, StatusCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, result.StatusCode)
			assert.Equal(t, tt.body, result.HTML)
			assert.Equal(t, server.URL, result.URL)
		})
	}
}

func TestHTTPFetcher_SendsIdentifyingHeader(t *testing.T) {
	var gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
	}))
	defer server.Close()

	f := New(Options{UserAgent: "test-agent/2"})
	_, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "test-agent/2", gotAgent)
}

func TestHTTPFetcher_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := server.URL
	server.Close()

	f := New(Options{Timeout: time.Second})
	result, err := f.Fetch(context.Background(), addr)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, 0, StatusCode(err))
}
