package bulk

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
	_ "modernc.org/sqlite"

	"github.com/cinecraze/catman/internal/autoembed"
	"github.com/cinecraze/catman/internal/catalog"
	"github.com/cinecraze/catman/internal/store"
)

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	kv, err := store.NewKV(db)
	require.NoError(t, err)
	return store.Open(kv, discardLogger())
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGenerateServers(t *testing.T) {
	st := setupTestStore(t)
	st.SaveServerConfigs([]catalog.ServerConfig{
		{Name: "VidSrc", BaseURL: "https://vidsrc.to/embed/{title}", Enabled: true},
		{Name: "EmbedSU", BaseURL: "https://embed.su/embed/{title}", Enabled: true},
	})

	withServers := catalog.NewItem("Heat", catalog.TypeMovie)
	withServers.AddServer(catalog.Server{Name: "Manual", URL: "https://example.com/heat"})
	st.AddContent(withServers)

	bare := catalog.NewItem("Alien", catalog.TypeMovie)
	st.AddContent(bare)

	untitled := catalog.NewItem("", catalog.TypeMovie)
	st.AddContent(untitled)

	r := NewRunner(st, discardLogger(), WithWorkers(2))
	report, err := r.GenerateServers(context.Background(), autoembed.NewGenerator(discardLogger()))
	require.NoError(t, err)

	assert.Equal(t, 1, report.Generated)
	assert.Equal(t, 2, report.Skipped)

	for _, it := range st.AllContent() {
		switch it.Title {
		case "Alien":
			require.Len(t, it.Servers, 2)
			assert.Equal(t, "VidSrc", it.Servers[0].Name)
			assert.Equal(t, "https://vidsrc.to/embed/Alien", it.Servers[0].URL)
		case "Heat":
			require.Len(t, it.Servers, 1)
			assert.Equal(t, "Manual", it.Servers[0].Name)
		case "":
			assert.Empty(t, it.Servers)
		}
	}
}

func TestGenerateServersSkipsRepeatedIdentity(t *testing.T) {
	st := setupTestStore(t)
	st.SaveServerConfigs([]catalog.ServerConfig{
		{Name: "VidSrc", BaseURL: "https://vidsrc.to/embed/{title}", Enabled: true},
	})

	// Same identity stored twice; only one generation should happen.
	st.AddContent(catalog.NewItem("Dune", catalog.TypeMovie))
	st.AddContent(catalog.NewItem("Dune", catalog.TypeMovie))

	r := NewRunner(st, discardLogger())
	report, err := r.GenerateServers(context.Background(), autoembed.NewGenerator(discardLogger()))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Generated)
	assert.Equal(t, 1, report.Skipped)
}

func TestGenerateServersCancelled(t *testing.T) {
	st := setupTestStore(t)
	st.AddContent(catalog.NewItem("Alien", catalog.TypeMovie))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRunner(st, discardLogger())
	report, _ := r.GenerateServers(ctx, autoembed.NewGenerator(discardLogger()))
	assert.Zero(t, report.Generated)
}

func TestProbeAll(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
	}))
	defer good.Close()
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer bad.Close()

	st := setupTestStore(t)
	st.SaveServerConfigs([]catalog.ServerConfig{
		{Name: "Good", BaseURL: good.URL + "/embed/{title}", Enabled: true},
		{Name: "Bad", BaseURL: bad.URL + "/embed/{title}", Enabled: true},
		{Name: "Off", BaseURL: good.URL + "/embed/{title}", Enabled: false},
	})

	prober := autoembed.NewProber(discardLogger(),
		autoembed.WithProbeRateLimit(rate.NewLimiter(rate.Inf, 1)))

	r := NewRunner(st, discardLogger())
	report, err := r.ProbeAll(context.Background(), prober)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Online)
	assert.Equal(t, 1, report.Offline)

	for _, cfg := range st.ServerConfigs() {
		switch cfg.Name {
		case "Good":
			assert.True(t, cfg.IsOnline)
			assert.NotZero(t, cfg.LastChecked)
		case "Bad":
			assert.False(t, cfg.IsOnline)
			assert.NotZero(t, cfg.LastChecked)
		case "Off":
			assert.Zero(t, cfg.LastChecked)
		}
	}
}
