// Package draft implements per-session debounced autosave for invoices being
// edited. Each editing session owns one Session; rapid edits coalesce into a
// single write once the quiet period elapses. Sessions have an explicit
// lifecycle (Flush, Stop) so nothing keeps saving after the editor goes away.
package draft

import (
	"context"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/smallbiznis/invoicely/internal/invoice/domain"
)

// Saver persists one invoice snapshot.
type Saver interface {
	Save(ctx context.Context, inv domain.Invoice) error
}

// SaverFunc adapts a function to the Saver interface.
type SaverFunc func(ctx context.Context, inv domain.Invoice) error

func (f SaverFunc) Save(ctx context.Context, inv domain.Invoice) error { return f(ctx, inv) }

// Config controls debounce timing.
type Config struct {
	QuietPeriod time.Duration
	SaveTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		QuietPeriod: 800 * time.Millisecond,
		SaveTimeout: 10 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.QuietPeriod <= 0 {
		c.QuietPeriod = defaults.QuietPeriod
	}
	if c.SaveTimeout <= 0 {
		c.SaveTimeout = defaults.SaveTimeout
	}
	return c
}

// Session debounces saves for one editing session. Safe for concurrent use.
type Session struct {
	id    string
	saver Saver
	log   *zap.Logger
	cfg   Config

	mu      sync.Mutex
	timer   *time.Timer
	pending *domain.Invoice
	stopped bool
	saving  sync.WaitGroup
}

func NewSession(saver Saver, log *zap.Logger, cfg Config) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	id := ulid.Make().String()
	return &Session{
		id:    id,
		saver: saver,
		log:   log.Named("draft").With(zap.String("session_id", id)),
		cfg:   cfg.withDefaults(),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Trigger records the latest snapshot and (re)starts the quiet-period timer.
// Only the newest snapshot is ever written; earlier triggers within the quiet
// period are coalesced.
func (s *Session) Trigger(inv domain.Invoice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	snapshot := inv
	s.pending = &snapshot
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.cfg.QuietPeriod, s.fire)
}

func (s *Session) fire() {
	s.mu.Lock()
	inv := s.pending
	s.pending = nil
	if s.stopped {
		inv = nil
	}
	if inv != nil {
		s.saving.Add(1)
	}
	s.mu.Unlock()
	if inv == nil {
		return
	}
	s.save(*inv)
}

// Flush cancels any running timer and writes the pending snapshot, if one
// exists, before returning.
func (s *Session) Flush(ctx context.Context) error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	inv := s.pending
	s.pending = nil
	s.mu.Unlock()
	if inv == nil {
		return nil
	}
	if err := s.saver.Save(ctx, *inv); err != nil {
		s.restorePending(inv)
		return err
	}
	return nil
}

// Stop ends the session. The pending snapshot, if any, is discarded and any
// in-flight save is waited out. The session accepts no further triggers.
func (s *Session) Stop() {
	s.mu.Lock()
	s.stopped = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.pending = nil
	s.mu.Unlock()
	s.saving.Wait()
}

func (s *Session) save(inv domain.Invoice) {
	defer s.saving.Done()
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.SaveTimeout)
	defer cancel()
	if err := s.saver.Save(ctx, inv); err != nil {
		s.log.Warn("autosave failed; snapshot kept for retry",
			zap.Int64("invoice_id", int64(inv.ID)),
			zap.Error(err),
		)
		s.restorePending(&inv)
		return
	}
	s.log.Debug("autosaved", zap.Int64("invoice_id", int64(inv.ID)))
}

// restorePending puts a failed snapshot back unless a newer one arrived or
// the session stopped meanwhile.
func (s *Session) restorePending(inv *domain.Invoice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped || s.pending != nil {
		return
	}
	s.pending = inv
}
