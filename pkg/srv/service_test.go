package srv

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recordingService struct {
	name     string
	startErr error
	mu       *sync.Mutex
	order    *[]string
}

func (s *recordingService) Start(ctx context.Context) error {
	return s.startErr
}

func (s *recordingService) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	*s.order = append(*s.order, s.name)
	return nil
}

func TestShutdownServices_ReverseOrder(t *testing.T) {
	var mu sync.Mutex
	var order []string
	services := []Service{
		&recordingService{name: "store", mu: &mu, order: &order},
		&recordingService{name: "server", mu: &mu, order: &order},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ShutdownServices(ctx, services)

	assert.Equal(t, []string{"server", "store"}, order)
}

func TestStartServices_FailureCancels(t *testing.T) {
	var mu sync.Mutex
	var order []string

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	StartServices(ctx, cancel, []Service{
		&recordingService{name: "broken", startErr: errors.New("bind: address in use"), mu: &mu, order: &order},
	})

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context was not cancelled after a failed start")
	}
}

func TestNewCleanup(t *testing.T) {
	called := false
	svc := NewCleanup(func() error {
		called = true
		return nil
	})

	assert.NoError(t, svc.Start(context.Background()))
	assert.False(t, called)
	assert.NoError(t, svc.Shutdown(context.Background()))
	assert.True(t, called)

	assert.NoError(t, NewCleanup(nil).Shutdown(context.Background()))
}
