package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/oseiserwaa/kitchen/config"
	"github.com/oseiserwaa/kitchen/internal/domain"
	"github.com/oseiserwaa/kitchen/internal/domain/mocks"
	"github.com/oseiserwaa/kitchen/pkg/logger"
	"github.com/oseiserwaa/kitchen/pkg/mailer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"

func createTestConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Server:      config.ServerConfig{Host: "127.0.0.1", Port: 0},
		Storage: config.StorageConfig{
			Driver:     config.DriverSQLite,
			SQLitePath: ":memory:",
		},
		Security: config.SecurityConfig{
			JWTSecret: "test-jwt-secret",
			TokenTTL:  time.Hour,
		},
		Root: config.RootUserConfig{
			Email:    "admin@oseiserwaa.com",
			Password: "admin123",
			Name:     "Admin",
		},
		Images:         config.ImageConfig{MaxBytes: 1 << 20, Store: config.ImageStoreInline},
		Visitors:       config.VisitorConfig{SessionTTL: time.Minute, Window: 50, Days: 30},
		RestaurantName: "Osei Serwaa Kitchen",
		LogLevel:       "error",
	}
}

func newInitializedApp(t *testing.T) *App {
	t.Helper()
	a := NewApp(createTestConfig(),
		WithLogger(logger.NewTestLogger(t)),
		WithMockMailer(mailer.NewConsoleMailerWithWriter(io.Discard)),
	).(*App)
	require.NoError(t, a.Initialize())
	t.Cleanup(func() { _ = a.cleanupResources() })
	return a
}

func call(t *testing.T, srv *httptest.Server, method, path, token string, body interface{}, headers map[string]string) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", chromeUA)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = json.Unmarshal(raw, &out)
	return resp, out
}

func TestNewApp(t *testing.T) {
	cfg := createTestConfig()
	a := NewApp(cfg)
	require.NotNil(t, a)
	assert.Equal(t, cfg, a.GetConfig())
	assert.NotNil(t, a.GetLogger())
	assert.False(t, a.IsServerCreated())
}

func TestInitMailer(t *testing.T) {
	t.Run("console without SMTP", func(t *testing.T) {
		a := NewApp(createTestConfig(), WithLogger(logger.NewTestLogger(t)))
		require.NoError(t, a.InitMailer())
		assert.IsType(t, &mailer.ConsoleMailer{}, a.GetMailer())
	})

	t.Run("SMTP when configured", func(t *testing.T) {
		cfg := createTestConfig()
		cfg.SMTP = config.SMTPConfig{Host: "smtp.example.com", Port: 587, FromEmail: "noreply@oseiserwaa.com"}
		a := NewApp(cfg, WithLogger(logger.NewTestLogger(t)))
		require.NoError(t, a.InitMailer())
		assert.IsType(t, &mailer.SMTPMailer{}, a.GetMailer())
	})
}

func TestInitServices_SeedsRootUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mocks.NewMockUserRepository(ctrl)
	storage := mocks.NewMockStorage(ctrl)
	storage.EXPECT().Users().Return(users).AnyTimes()
	storage.EXPECT().Content().Return(mocks.NewMockContentRepository(ctrl)).AnyTimes()
	storage.EXPECT().Visitors().Return(mocks.NewMockVisitorRepository(ctrl)).AnyTimes()
	storage.EXPECT().Menu().Return(mocks.NewMockMenuItemRepository(ctrl)).AnyTimes()
	storage.EXPECT().Categories().Return(mocks.NewMockCategoryRepository(ctrl)).AnyTimes()
	storage.EXPECT().Reservations().Return(mocks.NewMockReservationRepository(ctrl)).AnyTimes()
	storage.EXPECT().Messages().Return(mocks.NewMockMessageRepository(ctrl)).AnyTimes()
	storage.EXPECT().Images().Return(mocks.NewMockImageRepository(ctrl)).AnyTimes()

	users.EXPECT().GetByEmail(gomock.Any(), "admin@oseiserwaa.com").
		Return(nil, &domain.ErrNotFound{Entity: "user", ID: "admin@oseiserwaa.com"})
	users.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u *domain.User) error {
		assert.Equal(t, "admin", u.Role)
		assert.NotEqual(t, "admin123", u.PasswordHash)
		u.ID = "root"
		return nil
	})

	a := NewApp(createTestConfig(), WithStorage(storage), WithLogger(logger.NewTestLogger(t)))
	require.NoError(t, a.InitStorage())
	require.NoError(t, a.InitServices())
	t.Cleanup(a.GetServices().Close)

	assert.Same(t, storage, a.GetStorage())
}

func TestApp_EndToEnd(t *testing.T) {
	a := newInitializedApp(t)
	srv := httptest.NewServer(a.Handler())
	defer srv.Close()

	resp, body := call(t, srv, http.MethodGet, "/api/health", "", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	resp, body = call(t, srv, http.MethodPost, "/api/login", "", map[string]string{
		"email": "admin@oseiserwaa.com", "password": "wrong",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body = call(t, srv, http.MethodPost, "/api/login", "", map[string]string{
		"email": "admin@oseiserwaa.com", "password": "admin123",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token := body["token"].(string)
	require.NotEmpty(t, token)

	resp, _ = call(t, srv, http.MethodPost, "/api/menu", "", map[string]interface{}{"name": "Waakye", "price": 9.5}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = call(t, srv, http.MethodPost, "/api/menu", "not-a-jwt", map[string]interface{}{"name": "Waakye", "price": 9.5}, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body = call(t, srv, http.MethodPost, "/api/menu", token, map[string]interface{}{"name": "Waakye", "price": 9.5, "category": "mains"}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["available"])

	resp, body = call(t, srv, http.MethodPost, "/api/reservations", "", map[string]interface{}{
		"name": "Ama", "email": "ama@example.com", "date": "2026-10-20", "time": "19:00", "guests": 2,
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["id"])

	resp, body = call(t, srv, http.MethodPost, "/api/visitors/track", "", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["count"])
	session := resp.Header.Get("X-Visitor-Session")
	require.NotEmpty(t, session)

	resp, body = call(t, srv, http.MethodPost, "/api/visitors/increment", "", nil, map[string]string{"X-Visitor-Session": session})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["count"])
	assert.Equal(t, false, body["counted"])

	resp, body = call(t, srv, http.MethodPost, "/api/content/hero_texts", token, map[string]interface{}{
		"home": map[string]string{"title": "Akwaaba", "subtitle": "Taste of Ghana", "tagline": "Since 2015"},
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Content updated", body["message"])

	resp, body = call(t, srv, http.MethodGet, "/api/content/hero_texts", "", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Akwaaba", body["home"].(map[string]interface{})["title"])

	resp, _ = call(t, srv, http.MethodGet, "/api/reservations/export", token, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "reservations_")
}

func TestGracefulShutdownMiddleware(t *testing.T) {
	a := NewApp(createTestConfig(), WithLogger(logger.NewTestLogger(t))).(*App)

	release := make(chan struct{})
	entered := make(chan struct{})
	handler := a.gracefulShutdownMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		w.WriteHeader(http.StatusOK)
	}))

	done := make(chan int)
	go func() {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/menu", nil))
		done <- w.Code
	}()

	<-entered
	assert.Equal(t, int64(1), a.GetActiveRequestCount())

	require.NoError(t, a.Shutdown(context.Background()))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/menu", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	close(release)
	assert.Equal(t, http.StatusOK, <-done)
	assert.Equal(t, int64(0), a.GetActiveRequestCount())
}

func TestStartAndShutdown(t *testing.T) {
	a := newInitializedApp(t)
	a.SetShutdownTimeout(5 * time.Second)

	errCh := make(chan error, 1)
	go func() { errCh <- a.Start() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.True(t, a.WaitForServerStart(ctx))

	require.NoError(t, a.Shutdown(ctx))
	assert.NoError(t, <-errCh)
	assert.Error(t, a.GetShutdownContext().Err())
}
