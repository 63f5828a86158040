package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"contrib.go.opencensus.io/integrations/ocsql"
	"github.com/gorilla/mux"

	"github.com/oseiserwaa/kitchen/config"
	"github.com/oseiserwaa/kitchen/internal/domain"
	httpHandler "github.com/oseiserwaa/kitchen/internal/http"
	"github.com/oseiserwaa/kitchen/internal/http/middleware"
	"github.com/oseiserwaa/kitchen/pkg/logger"
	"github.com/oseiserwaa/kitchen/pkg/mailer"
	"github.com/oseiserwaa/kitchen/pkg/ratelimiter"
	"github.com/oseiserwaa/kitchen/pkg/tracing"
)

// AppInterface defines the interface for the App
type AppInterface interface {
	Initialize() error
	Start() error
	Shutdown(ctx context.Context) error

	GetConfig() *config.Config
	GetLogger() logger.Logger
	GetRouter() *mux.Router
	GetStorage() domain.Storage
	GetMailer() mailer.Mailer
	GetServices() *Services

	IsServerCreated() bool
	WaitForServerStart(ctx context.Context) bool

	InitTracing() error
	InitStorage() error
	InitMailer() error
	InitServices() error
	InitHandlers() error

	SetShutdownTimeout(timeout time.Duration)
	GetActiveRequestCount() int64
	GetShutdownContext() context.Context
}

// App owns the storage, the service graph and the HTTP server
type App struct {
	config   *config.Config
	logger   logger.Logger
	storage  domain.Storage
	db       *sql.DB
	mailer   mailer.Mailer
	services *Services

	router *mux.Router
	server *http.Server

	serverMu      sync.RWMutex
	serverStarted chan struct{}

	shutdownCtx     context.Context
	shutdownCancel  context.CancelFunc
	shutdownTimeout time.Duration
	activeRequests  int64
	requestWg       sync.WaitGroup
}

type AppOption func(*App)

// WithStorage skips InitStorage and uses s instead
func WithStorage(s domain.Storage) AppOption {
	return func(a *App) {
		a.storage = s
	}
}

// WithMockMailer configures the app to use a mock mailer
func WithMockMailer(m mailer.Mailer) AppOption {
	return func(a *App) {
		a.mailer = m
	}
}

func WithLogger(logger logger.Logger) AppOption {
	return func(a *App) {
		a.logger = logger
	}
}

func NewApp(cfg *config.Config, opts ...AppOption) AppInterface {
	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())

	app := &App{
		config:          cfg,
		logger:          logger.NewLoggerWithLevel(cfg.LogLevel),
		router:          mux.NewRouter(),
		serverStarted:   make(chan struct{}),
		shutdownCtx:     shutdownCtx,
		shutdownCancel:  shutdownCancel,
		shutdownTimeout: 30 * time.Second,
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

func (a *App) InitTracing() error {
	if err := tracing.InitTracing(&a.config.Tracing, a.logger); err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	return nil
}

// InitStorage opens the configured backend unless one was injected
func (a *App) InitStorage() error {
	if a.storage != nil {
		return nil
	}

	storage, db, err := OpenStorage(a.config, a.logger)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	a.storage = storage
	a.db = db
	return nil
}

// InitMailer picks SMTP when a relay is configured and the console mailer
// otherwise
func (a *App) InitMailer() error {
	if a.mailer != nil {
		return nil
	}

	if a.config.SMTP.Enabled() {
		a.mailer = mailer.NewSMTPMailer(&mailer.Config{
			SMTPHost:     a.config.SMTP.Host,
			SMTPPort:     a.config.SMTP.Port,
			SMTPUsername: a.config.SMTP.Username,
			SMTPPassword: a.config.SMTP.Password,
			FromEmail:    a.config.SMTP.FromEmail,
			FromName:     a.config.SMTP.FromName,
		})
		a.logger.WithField("smtp_host", a.config.SMTP.Host).Info("Using SMTP mailer")
		return nil
	}

	a.mailer = mailer.NewConsoleMailer()
	a.logger.Info("SMTP not configured, notifications are printed to the console")
	return nil
}

// InitServices builds the service graph and seeds the root admin account
func (a *App) InitServices() error {
	services, err := NewServices(a.config, a.storage, a.mailer, a.logger)
	if err != nil {
		return err
	}
	a.services = services

	if a.config.Security.DevSecret {
		a.logger.Warn("JWT_SECRET is not set, using the development secret")
	}

	if a.config.Root.Password == "" {
		a.logger.Warn("ROOT_PASSWORD is not set, skipping root admin seeding")
		return nil
	}
	user, created, err := services.Users.EnsureRootUser(context.Background(), a.config.Root.Email, a.config.Root.Password, a.config.Root.Name)
	if err != nil {
		return fmt.Errorf("failed to ensure root user: %w", err)
	}
	if created {
		a.logger.WithField("user_id", user.ID).Info(fmt.Sprintf("Root admin created: %s", user.Email))
	}
	return nil
}

func (a *App) InitHandlers() error {
	s := a.services
	proxies, err := middleware.NewProxyTrust(a.config.Server.TrustedProxies)
	if err != nil {
		return fmt.Errorf("failed to parse TRUSTED_PROXIES: %w", err)
	}
	guards := httpHandler.Guards{
		Auth:  middleware.RequireAuth(s.Auth),
		Form:  middleware.RateLimit(s.Limiter, ratelimiter.NamespaceForm, proxies),
		Visit: middleware.RateLimit(s.Limiter, ratelimiter.NamespaceVisit, proxies),
	}

	a.router = httpHandler.NewRouter(guards,
		httpHandler.NewAuthHandler(s.Auth, a.logger),
		httpHandler.NewMenuHandler(s.Menu, a.logger),
		httpHandler.NewCategoryHandler(s.Categories, a.logger),
		httpHandler.NewExportHandler(s.Exports, a.logger),
		httpHandler.NewReservationHandler(s.Reservations, a.logger),
		httpHandler.NewMessageHandler(s.Messages, a.logger),
		httpHandler.NewUserHandler(s.Users, a.logger),
		httpHandler.NewContentHandler(s.Content, a.logger),
		httpHandler.NewImageHandler(s.Images, s.Images.MaxBytes(), a.logger),
		httpHandler.NewVisitorHandler(s.Visitors, a.logger),
		httpHandler.NewHealthHandler(a.healthCheck, a.logger),
	)

	if a.config.Tracing.Enabled {
		a.router.Use(middleware.TracingMiddleware)
		a.logger.Info("OpenCensus tracing middleware enabled")
	}
	return nil
}

func (a *App) healthCheck(ctx context.Context) error {
	if a.db == nil {
		return nil
	}
	return a.db.PingContext(ctx)
}

// Handler is the router behind the shutdown tracker and CORS
func (a *App) Handler() http.Handler {
	return middleware.CORSMiddleware(a.gracefulShutdownMiddleware(a.router))
}

func (a *App) Start() error {
	addr := fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port)
	a.logger.WithField("address", addr).Info(fmt.Sprintf("Server starting on %s", addr))

	a.serverMu.Lock()
	if a.serverStarted != nil {
		select {
		case <-a.serverStarted:
		default:
			close(a.serverStarted)
		}
	}
	a.serverStarted = make(chan struct{})
	a.server = &http.Server{
		Addr:              addr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	server := a.server
	serverStarted := a.serverStarted
	a.serverMu.Unlock()

	close(serverStarted)

	var err error
	if a.config.Server.SSL.Enabled {
		a.logger.WithField("cert_file", a.config.Server.SSL.CertFile).Info("SSL enabled")
		err = server.ListenAndServeTLS(a.config.Server.SSL.CertFile, a.config.Server.SSL.KeyFile)
	} else {
		err = server.ListenAndServe()
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops accepting requests, drains in-flight ones and releases
// storage. New requests get a 503 as soon as shutdown starts.
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Starting graceful shutdown...")
	a.shutdownCancel()

	a.serverMu.RLock()
	server := a.server
	a.serverMu.RUnlock()

	if server == nil {
		return a.cleanupResources()
	}

	a.logger.WithField("active_requests", a.getActiveRequestCount()).Info("Active requests at shutdown start")

	timeout := a.shutdownTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	shutdownErr := server.Shutdown(shutdownCtx)

	drained := make(chan struct{})
	go func() {
		a.requestWg.Wait()
		close(drained)
	}()
	select {
	case <-drained:
	case <-shutdownCtx.Done():
		a.logger.WithField("active_requests", a.getActiveRequestCount()).Warn("Shutdown timeout reached, forcing shutdown")
		if shutdownErr == nil {
			shutdownErr = fmt.Errorf("shutdown timeout exceeded")
		}
	}

	if err := a.cleanupResources(); err != nil && shutdownErr == nil {
		shutdownErr = err
	}

	if shutdownErr != nil {
		a.logger.WithField("error", shutdownErr.Error()).Error("Graceful shutdown completed with errors")
	} else {
		a.logger.Info("Graceful shutdown completed successfully")
	}
	return shutdownErr
}

func (a *App) cleanupResources() error {
	if a.services != nil {
		a.services.Close()
	}

	if a.storage == nil {
		return nil
	}
	if a.db != nil && a.config.Tracing.Enabled {
		if err := ocsql.RecordStats(a.db, 5*time.Second); err != nil {
			a.logger.WithField("error", err.Error()).Error("Failed to record final database stats")
		}
	}
	a.logger.Info("Closing storage")
	if err := a.storage.Close(); err != nil {
		a.logger.WithField("error", err.Error()).Error("Error closing storage")
		return err
	}
	return nil
}

func (a *App) IsServerCreated() bool {
	a.serverMu.RLock()
	defer a.serverMu.RUnlock()
	return a.server != nil
}

// WaitForServerStart reports whether the server was created before ctx ended
func (a *App) WaitForServerStart(ctx context.Context) bool {
	a.serverMu.RLock()
	started := a.serverStarted
	a.serverMu.RUnlock()

	select {
	case <-started:
		return a.IsServerCreated()
	case <-ctx.Done():
		return false
	}
}

func (a *App) Initialize() error {
	a.logger.WithField("version", a.config.Version).Info("Starting kitchen API")

	steps := []func() error{
		a.InitTracing,
		a.InitStorage,
		a.InitMailer,
		a.InitServices,
		a.InitHandlers,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}

	a.logger.Info("Application successfully initialized")
	return nil
}

func (a *App) GetConfig() *config.Config           { return a.config }
func (a *App) GetLogger() logger.Logger            { return a.logger }
func (a *App) GetRouter() *mux.Router              { return a.router }
func (a *App) GetStorage() domain.Storage          { return a.storage }
func (a *App) GetMailer() mailer.Mailer            { return a.mailer }
func (a *App) GetServices() *Services              { return a.services }
func (a *App) GetShutdownContext() context.Context { return a.shutdownCtx }

func (a *App) SetShutdownTimeout(timeout time.Duration) {
	a.shutdownTimeout = timeout
}

func (a *App) GetActiveRequestCount() int64 {
	return a.getActiveRequestCount()
}

func (a *App) getActiveRequestCount() int64 {
	return atomic.LoadInt64(&a.activeRequests)
}

func (a *App) isShuttingDown() bool {
	select {
	case <-a.shutdownCtx.Done():
		return true
	default:
		return false
	}
}

// gracefulShutdownMiddleware counts in-flight requests so Shutdown can wait
// for them
func (a *App) gracefulShutdownMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.isShuttingDown() {
			httpHandler.WriteJSONError(w, "Server is shutting down", http.StatusServiceUnavailable)
			return
		}

		atomic.AddInt64(&a.activeRequests, 1)
		a.requestWg.Add(1)
		defer func() {
			atomic.AddInt64(&a.activeRequests, -1)
			a.requestWg.Done()
		}()

		next.ServeHTTP(w, r)
	})
}

var _ AppInterface = (*App)(nil)
