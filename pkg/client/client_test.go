package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opencensus.io/plugin/ochttp"

	"github.com/oseiserwaa/kitchen/internal/domain"
)

func newFakeServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL)
}

func TestClient_JSONErrorBody(t *testing.T) {
	c := newFakeServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"price must not be negative"}`)
	})

	_, err := c.CreateMenuItem(context.Background(), &domain.MenuItemInput{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "price must not be negative", apiErr.Message)
	assert.True(t, IsStatus(err, http.StatusBadRequest))
}

func TestClient_PlainTextErrorAndRetryAfter(t *testing.T) {
	c := newFakeServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "42")
		http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
	})

	_, err := c.CreateReservation(context.Background(), &domain.CreateReservationRequest{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Too Many Requests", apiErr.Message)
	assert.Equal(t, 42*time.Second, apiErr.RetryAfter)
}

func TestClient_SendsBearerToken(t *testing.T) {
	var got string
	c := newFakeServer(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		_, _ = io.WriteString(w, `[]`)
	})

	_, err := c.Users(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)

	authed := c.WithToken("abc")
	_, err = authed.Users(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", got)
	assert.Empty(t, c.Token(), "WithToken must not change the receiver")
}

func TestClient_ContentNullIsNil(t *testing.T) {
	c := newFakeServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/content/hero_texts", r.URL.Path)
		_, _ = io.WriteString(w, "null\n")
	})

	raw, err := c.Content(context.Background(), domain.KeyHeroTexts)
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestClient_TrackVisitSessionHeader(t *testing.T) {
	var seen []string
	c := newFakeServer(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get(SessionHeader))
		w.Header().Set(SessionHeader, "session-1")
		_ = json.NewEncoder(w).Encode(domain.TrackResult{Counted: len(seen) == 1, Total: 7})
	})

	res, err := c.TrackVisit(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, res.Counted)
	assert.Equal(t, "session-1", res.SessionToken)

	res, err = c.TrackVisit(context.Background(), res.SessionToken)
	require.NoError(t, err)
	assert.False(t, res.Counted)
	assert.Equal(t, []string{"", "session-1"}, seen)
}

func TestClient_UploadImage(t *testing.T) {
	c := newFakeServer(t, func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("image")
		if !assert.NoError(t, err) {
			http.Error(w, "bad upload", http.StatusBadRequest)
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)

		assert.Equal(t, "dish.png", header.Filename)
		assert.Equal(t, "image/png", header.Header.Get("Content-Type"))
		assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data)

		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, `{"id":"img-1","filename":"dish.png","url":"/api/images/img-1"}`)
	})

	res, err := c.UploadImage(context.Background(), "dish.png", "image/png", []byte{0x89, 'P', 'N', 'G'})
	require.NoError(t, err)
	assert.Equal(t, "/api/images/img-1", res.URL)
}

func TestClient_ExportFilename(t *testing.T) {
	c := newFakeServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="reservations_2026-10-15.csv"`)
		_, _ = io.WriteString(w, "ID,Name\n1,Ama")
	})

	d, err := c.ExportReservations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "reservations_2026-10-15.csv", d.Filename)
	assert.Equal(t, "ID,Name\n1,Ama", string(d.Data))
}

func TestClient_VisitorStatsTopQuery(t *testing.T) {
	var query string
	c := newFakeServer(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		_, _ = io.WriteString(w, `{"total":3,"window":3}`)
	})

	stats, err := c.VisitorStats(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "top=3", query)
	assert.EqualValues(t, 3, stats.Total)

	_, err = c.VisitorStats(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, query)
}

func TestClient_WithTracing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"status":"ok"}`)
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, WithTracing())
	assert.IsType(t, &ochttp.Transport{}, c.http.Transport)
	assert.NoError(t, c.Health(context.Background()))
}
