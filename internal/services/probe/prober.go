package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/jodylarsen/CareConnect/internal/cache"
	"github.com/jodylarsen/CareConnect/internal/services/llm"
)

const (
	connectionMessage = "Hello, are you working?"
	defaultToolCity   = "New York"
)

// StatusStore persists the last probe report. *cache.RedisCache satisfies it.
type StatusStore interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
}

// ConnectionResult is the outcome of a single connectivity check.
type ConnectionResult struct {
	Connected bool      `json:"connected"`
	Backend   string    `json:"backend"`
	Response  string    `json:"response,omitempty"`
	Error     string    `json:"error,omitempty"`
	ErrorKind string    `json:"errorKind,omitempty"`
	LatencyMs int64     `json:"latencyMs"`
	CheckedAt time.Time `json:"checkedAt"`
}

// ToolResult reports whether the upstream agent's tool call is healthy.
type ToolResult struct {
	City      string    `json:"city"`
	Healthy   bool      `json:"healthy"`
	ToolError bool      `json:"toolError"`
	Function  string    `json:"functionName,omitempty"`
	Details   string    `json:"details,omitempty"`
	Response  string    `json:"response,omitempty"`
	Error     string    `json:"error,omitempty"`
	CheckedAt time.Time `json:"checkedAt"`
}

// Report is what the background loop records on every tick.
type Report struct {
	Connection ConnectionResult `json:"connection"`
	Tools      ToolResult       `json:"tools"`
}

type Prober struct {
	client llm.InferenceClient
	store  StatusStore

	mu   sync.RWMutex
	last *Report

	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

// NewProber creates a prober. Either argument may be nil.
func NewProber(client llm.InferenceClient, store StatusStore) *Prober {
	return &Prober{
		client: client,
		store:  store,
		done:   make(chan struct{}),
	}
}

func (p *Prober) backend() string {
	if p.client == nil {
		return "none"
	}
	return p.client.Name()
}

// TestConnection sends a trivial message and reports whether content came back.
func (p *Prober) TestConnection(ctx context.Context) ConnectionResult {
	start := time.Now()
	content, err := llm.Ask(ctx, p.client, llm.ChatRequest{
		Messages: []llm.Message{{Role: llm.RoleUser, Content: connectionMessage}},
	})

	result := ConnectionResult{
		Backend:   p.backend(),
		LatencyMs: time.Since(start).Milliseconds(),
		CheckedAt: time.Now().UTC(),
	}
	if err != nil {
		result.Error = err.Error()
		result.ErrorKind = llm.ErrorKind(err)
		return result
	}
	result.Connected = content != ""
	result.Response = content
	return result
}

// CheckTools asks a question the upstream agent answers through a tool call
// and reports whether that call broke.
func (p *Prober) CheckTools(ctx context.Context, city string) ToolResult {
	if city == "" {
		city = defaultToolCity
	}
	content, err := llm.Ask(ctx, p.client, llm.ChatRequest{
		Messages: []llm.Message{{Role: llm.RoleUser, Content: fmt.Sprintf("What's the weather like in %s?", city)}},
	})

	result := ToolResult{City: city, CheckedAt: time.Now().UTC()}
	var toolErr *llm.UpstreamToolError
	switch {
	case errors.As(err, &toolErr):
		result.ToolError = true
		result.Function = toolErr.Marker
		result.Details = toolErr.Message
	case err != nil:
		result.Error = err.Error()
	default:
		result.Healthy = true
		result.Response = content
	}
	return result
}

// RunOnce runs both checks concurrently and records the report.
func (p *Prober) RunOnce(ctx context.Context) Report {
	var report Report
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		report.Connection = p.TestConnection(gctx)
		return nil
	})
	g.Go(func() error {
		report.Tools = p.CheckTools(gctx, defaultToolCity)
		return nil
	})
	_ = g.Wait()

	p.mu.Lock()
	p.last = &report
	p.mu.Unlock()

	if p.store != nil {
		if err := p.store.Set(ctx, cache.ProbeStatusKey, report, cache.GetTTL(cache.ProbeStatusKey)); err != nil {
			log.Warn().Err(err).Msg("Failed to store probe report")
		}
	}

	log.Info().
		Str("backend", report.Connection.Backend).
		Bool("connected", report.Connection.Connected).
		Bool("tool_error", report.Tools.ToolError).
		Int64("latency_ms", report.Connection.LatencyMs).
		Msg("Inference probe completed")
	return report
}

// Last returns the most recent report, reading through to the store when this
// process has not probed yet.
func (p *Prober) Last(ctx context.Context) (*Report, bool) {
	p.mu.RLock()
	last := p.last
	p.mu.RUnlock()
	if last != nil {
		r := *last
		return &r, true
	}

	if p.store == nil {
		return nil, false
	}
	data, err := p.store.Get(ctx, cache.ProbeStatusKey)
	if err != nil {
		return nil, false
	}
	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, false
	}
	return &report, true
}

// Start begins probing on interval. A non-positive interval disables it.
func (p *Prober) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		log.Info().Msg("Inference prober disabled")
		return
	}
	p.ticker = time.NewTicker(interval)

	go func() {
		for {
			select {
			case <-p.ticker.C:
				p.RunOnce(ctx)
			case <-p.done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	log.Info().Dur("interval", interval).Msg("Inference prober started")
}

// Stop stops the background loop. Safe to call more than once.
func (p *Prober) Stop() {
	p.once.Do(func() {
		if p.ticker != nil {
			p.ticker.Stop()
		}
		close(p.done)
		log.Info().Msg("Inference prober stopped")
	})
}
