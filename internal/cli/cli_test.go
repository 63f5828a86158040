package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oseiserwaa/kitchen/config"
	"github.com/oseiserwaa/kitchen/internal/app"
	"github.com/oseiserwaa/kitchen/internal/domain"
	"github.com/oseiserwaa/kitchen/pkg/logger"
)

const chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// sharedStorage outlives each command so state carries across invocations
type sharedStorage struct {
	domain.Storage
}

func (sharedStorage) Close() error { return nil }

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Storage:     config.StorageConfig{Driver: config.DriverSQLite, SQLitePath: ":memory:"},
		Security:    config.SecurityConfig{JWTSecret: "cli-test-secret", TokenTTL: time.Hour},
		Images:      config.ImageConfig{MaxBytes: 1 << 20, Store: config.ImageStoreInline},
		Visitors:    config.VisitorConfig{SessionTTL: time.Minute, Window: 50, Days: 30},
		LogLevel:    "error",
	}
}

type harness struct {
	t       *testing.T
	storage domain.Storage
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	storage, _, err := app.OpenStorage(testConfig(), logger.NewTestLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close() })
	return &harness{t: t, storage: storage}
}

func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	cmd := NewRootCommand(Options{
		LoadConfig: func() (*config.Config, error) { return testConfig(), nil },
		OpenStorage: func(*config.Config, logger.Logger) (domain.Storage, error) {
			return sharedStorage{h.storage}, nil
		},
		Logger: logger.NewTestLogger(h.t),
	})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--env-file", ""}, args...))
	err := cmd.Execute()
	return out.String(), err
}

// services builds a second service graph over the same storage for setup
func (h *harness) services() *app.Services {
	h.t.Helper()
	s, err := app.NewServices(testConfig(), h.storage, nil, logger.NewTestLogger(h.t))
	require.NoError(h.t, err)
	h.t.Cleanup(s.Close)
	return s
}

func TestDefaultSeedParses(t *testing.T) {
	seed := DefaultSeed()

	ids := make([]string, 0, len(seed.Categories))
	for _, c := range seed.Categories {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"starters", "mains", "sides", "drinks"}, ids)
	assert.NotEmpty(t, seed.Menu)

	for _, key := range []domain.ContentKey{
		domain.KeyHome, domain.KeyAbout, domain.KeyContactPage, domain.KeyFooter,
		domain.KeyGallery, domain.KeyHeroImages, domain.KeyHeroTexts,
	} {
		assert.Contains(t, seed.Content, string(key))
	}
}

func TestParseSeed_Invalid(t *testing.T) {
	_, err := ParseSeed([]byte("categories: [unclosed"))
	assert.Error(t, err)
}

func TestSeedCommand_Idempotent(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("seed")
	require.NoError(t, err)
	assert.Contains(t, out, "+ content home_content")
	assert.Contains(t, out, "+ 4 categories created (0 existed)")
	assert.Contains(t, out, "menu items created")

	s := h.services()
	ctx := context.Background()
	menu, err := s.Menu.List(ctx)
	require.NoError(t, err)
	assert.Len(t, menu, len(DefaultSeed().Menu))

	home, err := s.Content.GetHome(ctx)
	require.NoError(t, err)
	require.NotNil(t, home)
	assert.Equal(t, "Osei Serwaa Kitchen", home.Hero.Title)
	assert.Len(t, home.Features, 3)

	out, err = h.run("seed")
	require.NoError(t, err)
	assert.Contains(t, out, "= content home_content already set")
	assert.Contains(t, out, "+ 0 categories created (4 existed)")
	assert.Contains(t, out, "= menu already has items, skipped")

	menu, err = s.Menu.List(ctx)
	require.NoError(t, err)
	assert.Len(t, menu, len(DefaultSeed().Menu))
}

func TestSeedCommand_KeepsEditedContent(t *testing.T) {
	h := newHarness(t)
	s := h.services()
	ctx := context.Background()

	require.NoError(t, s.Content.Set(ctx, domain.KeyFooter, []byte(`{"copyrightText":"edited"}`)))

	_, err := h.run("seed")
	require.NoError(t, err)

	footer, err := s.Content.GetFooter(ctx)
	require.NoError(t, err)
	assert.Equal(t, "edited", footer.CopyrightText)
}

func TestSeedCommand_FromFile(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
categories:
  - name: Grill Specials
    display_order: 5
menu:
  - name: Suya
    price: 9.5
    category: grill-specials
    available: false
content:
  hero_texts:
    menu:
      title: Tonight
`), 0o644))

	_, err := h.run("seed", "--file", path)
	require.NoError(t, err)

	s := h.services()
	ctx := context.Background()

	categories, err := s.Categories.List(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "grill-specials", categories[0].ID)

	menu, err := s.Menu.List(ctx)
	require.NoError(t, err)
	require.Len(t, menu, 1)
	assert.Equal(t, 9.5, menu[0].Price)
	assert.False(t, menu[0].Available)

	texts, err := s.Content.GetHeroTexts(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Tonight", (*texts)["menu"].Title)
}

func TestAdminCreate(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("admin", "create", "--email", "Chef@Example.com", "--password", "secret1", "--name", "Chef")
	require.NoError(t, err)
	assert.Contains(t, out, "Created Chef <chef@example.com> (admin)")

	_, err = h.run("admin", "create", "--email", "chef@example.com", "--password", "secret1", "--name", "Chef")
	var exists *domain.ErrUserAlreadyExists
	assert.ErrorAs(t, err, &exists)

	out, err = h.run("admin", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "1 users")
	assert.Contains(t, out, "chef@example.com")

	// the new account can log in
	resp, err := h.services().Auth.Login(context.Background(), domain.LoginRequest{Email: "chef@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestAdminCreate_RequiresFlags(t *testing.T) {
	h := newHarness(t)
	_, err := h.run("admin", "create", "--email", "chef@example.com")
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	h := newHarness(t)
	dir := t.TempDir()

	out, err := h.run("export", "reservations", "--out", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No reservations to export")

	_, err = h.services().Reservations.Create(context.Background(), &domain.CreateReservationRequest{
		Name: "Ama", Email: "ama@example.com", Date: "2026-10-20", Time: "19:00", Guests: 2,
	})
	require.NoError(t, err)

	out, err = h.run("export", "reservations", "--out", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 1 rows to")

	files, err := filepath.Glob(filepath.Join(dir, "reservations_*.csv"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	lines := strings.Split(string(data), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "ID,Name,Email"))
	assert.Contains(t, lines[1], "ama@example.com")
}

func TestExport_RejectsUnknownTarget(t *testing.T) {
	h := newHarness(t)
	_, err := h.run("export", "invoices")
	assert.Error(t, err)
}

func TestVisitorsStatsAndReset(t *testing.T) {
	h := newHarness(t)
	res, err := h.services().Visitors.Track(context.Background(), chromeUA, "")
	require.NoError(t, err)
	require.True(t, res.Counted)

	out, err := h.run("visitors", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Total visitors: 1")
	assert.Contains(t, out, "Chrome")

	_, err = h.run("visitors", "reset")
	assert.Error(t, err)

	out, err = h.run("visitors", "reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Visitor count reset")

	out, err = h.run("visitors", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Total visitors: 0")
}
