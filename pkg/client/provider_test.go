package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oseiserwaa/kitchen/config"
	"github.com/oseiserwaa/kitchen/internal/app"
	"github.com/oseiserwaa/kitchen/internal/domain"
	"github.com/oseiserwaa/kitchen/pkg/logger"
	"github.com/oseiserwaa/kitchen/pkg/mailer"
)

const (
	chromeUA      = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	adminEmail    = "admin@oseiserwaa.com"
	adminPassword = "admin123"
)

// newBackend serves the real API over an in-memory database
func newBackend(t *testing.T) *Provider {
	t.Helper()
	cfg := &config.Config{
		Environment: "test",
		Storage:     config.StorageConfig{Driver: config.DriverSQLite, SQLitePath: ":memory:"},
		Security:    config.SecurityConfig{JWTSecret: "client-test-secret", TokenTTL: time.Hour},
		Root:        config.RootUserConfig{Email: adminEmail, Password: adminPassword, Name: "Admin"},
		Images:      config.ImageConfig{MaxBytes: 1 << 20, Store: config.ImageStoreInline},
		Visitors:    config.VisitorConfig{SessionTTL: time.Minute, Window: 50, Days: 30},
		LogLevel:    "error",
	}
	a := app.NewApp(cfg,
		app.WithLogger(logger.NewLoggerWithWriter(io.Discard, "error")),
		app.WithMockMailer(mailer.NewConsoleMailerWithWriter(io.Discard)),
	).(*app.App)
	require.NoError(t, a.Initialize())

	srv := httptest.NewServer(a.Handler())
	t.Cleanup(func() {
		srv.Close()
		_ = a.Shutdown(context.Background())
	})
	return NewProvider(New(srv.URL, WithUserAgent(chromeUA)))
}

func TestProvider_LoadReportsPartialFailures(t *testing.T) {
	var adminCalls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/menu":
			_, _ = io.WriteString(w, `[{"id":"1","name":"Waakye","price":15,"category":"mains","available":true}]`)
		case r.URL.Path == "/api/categories":
			http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
		case r.URL.Path == "/api/visitors":
			_, _ = io.WriteString(w, `{"count":12}`)
		case r.URL.Path == "/api/content/footer":
			_, _ = io.WriteString(w, `{"copyrightText":"OSK"}`)
		case strings.HasPrefix(r.URL.Path, "/api/content/"):
			_, _ = io.WriteString(w, `null`)
		default:
			adminCalls++
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	st, report := NewProvider(New(srv.URL)).Load(context.Background(), "")

	assert.False(t, report.OK())
	assert.Contains(t, report.Errors, "categories")
	assert.Len(t, report.Errors, 1)
	assert.ErrorContains(t, report.Err(), "categories: api error 500: boom")

	require.Len(t, st.Menu, 1)
	assert.Equal(t, "Waakye", st.Menu[0].Name)
	assert.EqualValues(t, 12, st.VisitorCount)
	require.NotNil(t, st.Footer)
	assert.Equal(t, "OSK", st.Footer.CopyrightText)
	assert.Nil(t, st.Home)
	assert.Zero(t, adminCalls, "admin collections need a token")
}

func TestProvider_MutatorErrorKeepsState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)
	p := NewProvider(New(srv.URL))

	before := State{Token: "expired", Menu: []*domain.MenuItem{jollof}}
	after, err := p.DeleteMenuItem(context.Background(), before, jollof.ID)
	assert.True(t, IsStatus(err, http.StatusForbidden))
	assert.Equal(t, before, after)
}

func TestProvider_EndToEnd(t *testing.T) {
	p := newBackend(t)
	ctx := context.Background()

	st, report := p.Load(ctx, "")
	require.True(t, report.OK(), "%v", report.Err())
	assert.Empty(t, st.Menu)
	assert.Nil(t, st.Reservations)

	// visits count once per session
	st, err := p.TrackVisit(ctx, st)
	require.NoError(t, err)
	require.NotEmpty(t, st.SessionToken)
	assert.EqualValues(t, 1, st.VisitorCount)
	st, err = p.TrackVisit(ctx, st)
	require.NoError(t, err)
	assert.EqualValues(t, 1, st.VisitorCount)

	// public forms
	_, resID, err := p.SubmitReservation(ctx, st, &domain.CreateReservationRequest{
		Name: "Kofi", Email: "kofi@example.com", Date: "2026-10-24", Time: "19:30", Guests: 4,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resID)
	_, msgID, err := p.SendMessage(ctx, st, &domain.CreateMessageRequest{
		Name: "Efua", Email: "efua@example.com", Message: "Do you cater weddings?",
	})
	require.NoError(t, err)

	anonymous := st
	st, err = p.Login(ctx, st, adminEmail, adminPassword)
	require.NoError(t, err)
	assert.False(t, anonymous.Authenticated())

	st, report = p.Refresh(ctx, st)
	require.True(t, report.OK(), "%v", report.Err())
	assert.NotEmpty(t, st.SessionToken)
	require.Len(t, st.Reservations, 1)
	require.Len(t, st.Messages, 1)
	assert.Len(t, st.Users, 1)
	assert.Equal(t, 1, st.UnreadMessages())

	// viewing a message marks it read
	opened, msg, err := p.OpenMessage(ctx, st, msgID)
	require.NoError(t, err)
	assert.Equal(t, domain.MessageRead, msg.Status)
	assert.Equal(t, 0, opened.UnreadMessages())
	assert.Equal(t, 1, st.UnreadMessages())
	st = opened

	st, err = p.UpdateReservationStatus(ctx, st, resID, domain.ReservationConfirmed)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationConfirmed, st.Reservations[0].Status)

	name, price := "Red Red", 7.0
	st, err = p.AddMenuItem(ctx, st, &domain.MenuItemInput{Name: &name, Price: &price})
	require.NoError(t, err)
	require.Len(t, st.Menu, 1)
	assert.True(t, st.Menu[0].Available)

	st = st.AddToCart(st.Menu[0], 2)
	st, err = p.DeleteMenuItem(ctx, st, st.Menu[0].ID)
	require.NoError(t, err)
	assert.Empty(t, st.Menu)
	assert.Empty(t, st.Cart)

	st, err = p.SaveContent(ctx, st, &domain.FooterContent{CopyrightText: "Osei Serwaa Kitchen"})
	require.NoError(t, err)
	assert.Equal(t, "Osei Serwaa Kitchen", st.Footer.CopyrightText)

	fresh, report := p.Load(ctx, "")
	require.True(t, report.OK(), "%v", report.Err())
	require.NotNil(t, fresh.Footer)
	assert.Equal(t, "Osei Serwaa Kitchen", fresh.Footer.CopyrightText)
	assert.EqualValues(t, 1, fresh.VisitorCount)

	st, err = p.ResetVisitors(ctx, st)
	require.NoError(t, err)
	assert.Zero(t, st.VisitorCount)

	st = p.Logout(st)
	assert.Nil(t, st.Reservations)
	_, err = p.DeleteReservation(ctx, st, resID)
	assert.True(t, IsStatus(err, http.StatusUnauthorized))
}
