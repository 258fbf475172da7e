package domain

import (
	"context"
	"sync"
	"time"
)

// Span times one stage of a backtest, e.g. "fetch sentiment" or "align"
type Span struct {
	Name      string `json:"name"`
	ElapsedMs *int64 `json:"elapsedMs"`
	startTs   time.Time
}

func (s *Span) End() {
	if s.ElapsedMs == nil {
		t := time.Since(s.startTs).Milliseconds()
		s.ElapsedMs = &t
	}
}

// Profile collects stage timings for one request. spans may be opened
// from concurrent fetches
type Profile struct {
	mu      sync.Mutex
	Spans   []*Span `json:"spans"`
	TotalMs *int64  `json:"totalMs"`
	startTs time.Time
}

func NewProfile() *Profile {
	return &Profile{
		Spans:   []*Span{},
		startTs: time.Now(),
	}
}

func (p *Profile) StartSpan(name string) (*Span, func()) {
	s := &Span{
		Name:    name,
		startTs: time.Now(),
	}
	p.mu.Lock()
	p.Spans = append(p.Spans, s)
	p.mu.Unlock()
	return s, s.End
}

func (p *Profile) End() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.TotalMs == nil {
		t := time.Since(p.startTs).Milliseconds()
		p.TotalMs = &t
	}
}

// Snapshot copies the finished spans so callers can log them without
// holding the lock
func (p *Profile) Snapshot() []Span {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Span, 0, len(p.Spans))
	for _, s := range p.Spans {
		out = append(out, *s)
	}
	return out
}

type profileKey struct{}

func ContextWithProfile(ctx context.Context, p *Profile) context.Context {
	return context.WithValue(ctx, profileKey{}, p)
}

// ProfileFromContext never returns nil; a detached profile is handed out
// when none was attached
func ProfileFromContext(ctx context.Context) *Profile {
	if p, ok := ctx.Value(profileKey{}).(*Profile); ok && p != nil {
		return p
	}
	return NewProfile()
}
