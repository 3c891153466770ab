package autoembed

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/cinecraze/catman/internal/catalog"
)

const (
	// probeTestTitle is the well-known title every provider is probed
	// with.
	probeTestTitle = "The Matrix"

	defaultProbeTTL     = 5 * time.Minute
	defaultProbeRetries = 3
)

// negativeMarkers flag an HTML body as an error page even when the HTTP
// status was successful.
var negativeMarkers = []string{
	"404",
	"not found",
	"error",
	"page not found",
	"server error",
}

type probeResult struct {
	online  bool
	checked time.Time
}

// Prober is a heuristic availability check for embed providers. A result
// is cached per provider name for a short TTL; the cache is safe for
// concurrent use, so bulk status sweeps can fan out. False positives and
// negatives are acceptable, the verdict only colors a status indicator.
type Prober struct {
	log       *slog.Logger
	generator *Generator
	client    *http.Client
	limiter   *rate.Limiter
	ttl       time.Duration

	cache sync.Map // provider name -> probeResult
}

// ProberOption configures a Prober.
type ProberOption func(*Prober)

// WithProbeClient sets a custom HTTP client (for testing).
func WithProbeClient(hc *http.Client) ProberOption {
	return func(p *Prober) {
		p.client = hc
	}
}

// WithProbeTTL sets how long a verdict is cached.
func WithProbeTTL(ttl time.Duration) ProberOption {
	return func(p *Prober) {
		p.ttl = ttl
	}
}

// WithProbeRateLimit spaces outgoing probe requests.
func WithProbeRateLimit(l *rate.Limiter) ProberOption {
	return func(p *Prober) {
		p.limiter = l
	}
}

func NewProber(logger *slog.Logger, opts ...ProberOption) *Prober {
	p := &Prober{
		log:       logger.With("component", "autoembed"),
		generator: NewGenerator(logger),
		client: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: 10 * time.Second}).DialContext,
			},
		},
		limiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 1),
		ttl:     defaultProbeTTL,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Check reports whether the provider looks reachable, trying up to three
// times with increasing backoff. Verdicts are served from cache within
// the TTL. A cancelled context returns false immediately.
func (p *Prober) Check(ctx context.Context, cfg catalog.ServerConfig) bool {
	return p.CheckRetries(ctx, cfg, defaultProbeRetries)
}

// CheckRetries is Check with an explicit attempt budget.
func (p *Prober) CheckRetries(ctx context.Context, cfg catalog.ServerConfig, maxRetries int) bool {
	if cached, ok := p.cache.Load(cfg.Name); ok {
		res := cached.(probeResult)
		if time.Since(res.checked) < p.ttl {
			p.log.Debug("probe verdict from cache", "provider", cfg.Name, "online", res.online)
			return res.online
		}
	}

	testURL := p.generator.providerURL(cfg, url.PathEscape(probeTestTitle))
	if testURL == "" {
		p.log.Warn("cannot synthesize probe url", "provider", cfg.Name)
		return false
	}

	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err := p.limiter.Wait(ctx); err != nil {
			return false
		}
		online, err := p.fetch(ctx, testURL)
		if err == nil && online {
			p.log.Debug("provider online", "provider", cfg.Name, "attempt", attempt)
			p.cache.Store(cfg.Name, probeResult{online: true, checked: time.Now()})
			return true
		}
		if err != nil {
			p.log.Debug("probe attempt failed", "provider", cfg.Name, "attempt", attempt, "error", err)
		}
		if attempt < maxRetries {
			// Progressive delay between attempts: 1s, 2s, 3s.
			select {
			case <-time.After(time.Duration(attempt) * time.Second):
			case <-ctx.Done():
				return false
			}
		}
	}

	p.log.Warn("provider failed all probe attempts", "provider", cfg.Name, "attempts", maxRetries)
	p.cache.Store(cfg.Name, probeResult{online: false, checked: time.Now()})
	return false
}

// fetch performs one probe request and applies the body-marker heuristic.
func (p *Prober) fetch(ctx context.Context, testURL string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, testURL, nil)
	if err != nil {
		return false, err
	}
	// Browser-like headers; several providers reject bare clients.
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")

	resp, err := p.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, nil
	}
	if !strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		// Non-HTML success is taken at face value.
		return true, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return false, err
	}
	lower := strings.ToLower(string(body))
	for _, marker := range negativeMarkers {
		if strings.Contains(lower, marker) {
			return false, nil
		}
	}
	// Player and embed markers are a positive signal, but their absence
	// alone does not fail the probe.
	return true, nil
}
