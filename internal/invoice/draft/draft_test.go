package draft

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallbiznis/invoicely/internal/invoice/domain"
)

type recordingSaver struct {
	mu    sync.Mutex
	saved []domain.Invoice
	fail  error
}

func (r *recordingSaver) Save(_ context.Context, inv domain.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}
	r.saved = append(r.saved, inv)
	return nil
}

func (r *recordingSaver) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.saved)
}

func (r *recordingSaver) last() domain.Invoice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saved[len(r.saved)-1]
}

func invoiceWithNumber(number string) domain.Invoice {
	return domain.Invoice{InvoiceNumber: number}
}

func TestSessionCoalescesRapidTriggers(t *testing.T) {
	saver := &recordingSaver{}
	s := NewSession(saver, nil, Config{QuietPeriod: 30 * time.Millisecond})
	defer s.Stop()

	for i := 0; i < 5; i++ {
		s.Trigger(invoiceWithNumber("INV-1"))
		time.Sleep(5 * time.Millisecond)
	}
	s.Trigger(invoiceWithNumber("INV-final"))

	require.Eventually(t, func() bool { return saver.count() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "INV-final", saver.last().InvoiceNumber)

	// quiet period passed with nothing new, no extra writes
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 1, saver.count())
}

func TestSessionFlushWritesImmediately(t *testing.T) {
	saver := &recordingSaver{}
	s := NewSession(saver, nil, Config{QuietPeriod: time.Hour})
	defer s.Stop()

	s.Trigger(invoiceWithNumber("INV-2"))
	require.NoError(t, s.Flush(context.Background()))
	assert.Equal(t, 1, saver.count())
	assert.Equal(t, "INV-2", saver.last().InvoiceNumber)

	// nothing pending, flush is a no-op
	require.NoError(t, s.Flush(context.Background()))
	assert.Equal(t, 1, saver.count())
}

func TestSessionFlushKeepsSnapshotOnError(t *testing.T) {
	saver := &recordingSaver{fail: errors.New("db down")}
	s := NewSession(saver, nil, Config{QuietPeriod: time.Hour})
	defer s.Stop()

	s.Trigger(invoiceWithNumber("INV-3"))
	require.Error(t, s.Flush(context.Background()))

	saver.mu.Lock()
	saver.fail = nil
	saver.mu.Unlock()

	require.NoError(t, s.Flush(context.Background()))
	assert.Equal(t, 1, saver.count())
	assert.Equal(t, "INV-3", saver.last().InvoiceNumber)
}

func TestSessionStopDiscardsPending(t *testing.T) {
	saver := &recordingSaver{}
	s := NewSession(saver, nil, Config{QuietPeriod: 20 * time.Millisecond})

	s.Trigger(invoiceWithNumber("INV-4"))
	s.Stop()

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 0, saver.count())

	// triggers after Stop are ignored
	s.Trigger(invoiceWithNumber("INV-5"))
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 0, saver.count())
}

func TestSessionIDsAreUnique(t *testing.T) {
	a := NewSession(&recordingSaver{}, nil, Config{})
	b := NewSession(&recordingSaver{}, nil, Config{})
	defer a.Stop()
	defer b.Stop()

	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Len(t, a.ID(), 26)
}
