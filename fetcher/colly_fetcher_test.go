package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollyFetcher_Fetch(t *testing.T) {
	var gotUA, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.UserAgent()
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer srv.Close()

	body, err := NewCollyFetcher("taglinks-test", 5*time.Second).Fetch(context.Background(), srv.URL+"/ReferenceWML")
	require.NoError(t, err)
	assert.Equal(t, "<html><body>ok</body></html>", string(body))
	assert.Equal(t, "taglinks-test", gotUA)
	assert.Equal(t, "/ReferenceWML", gotPath)
}

func TestCollyFetcher_LargeBodyNotTruncated(t *testing.T) {
	row := `<tr><td><a href="/Tag">Tag</a></td></tr>` + "\n"
	page := "<table>" + strings.Repeat(row, (12<<20)/len(row)) + `<tr><td><a href="/Last">Last</a></td></tr></table>`
	require.Greater(t, len(page), 10<<20)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(page))
	}))
	defer srv.Close()

	body, err := NewCollyFetcher("taglinks-test", 30*time.Second).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, len(page), len(body))
	assert.True(t, strings.HasSuffix(string(body), `<a href="/Last">Last</a></td></tr></table>`))
}

func TestCollyFetcher_NonSuccessStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"not found", http.StatusNotFound},
		{"server error", http.StatusInternalServerError},
		{"forbidden", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", tt.status)
			}))
			defer srv.Close()

			body, err := NewCollyFetcher("taglinks-test", 5*time.Second).Fetch(context.Background(), srv.URL+"/ReferenceWML")
			require.Error(t, err)
			assert.Nil(t, body)

			var statusErr *StatusError
			require.True(t, errors.As(err, &statusErr))
			assert.Equal(t, tt.status, statusErr.StatusCode)
			assert.Contains(t, err.Error(), srv.URL)
		})
	}
}

func TestCollyFetcher_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewCollyFetcher("taglinks-test", 2*time.Second).Fetch(context.Background(), url+"/ReferenceWML")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to visit")
}

func TestCollyFetcher_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := NewCollyFetcher("taglinks-test", 100*time.Millisecond).Fetch(context.Background(), srv.URL)
	require.Error(t, err)
}
