package monitor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axellelanca/surl/internal/models"
)

type staticLinks []models.Link

func (s staticLinks) GetAllLinks() ([]models.Link, error) { return s, nil }

func TestCheckUrls_TracksStateChanges(t *testing.T) {
	var healthy atomic.Bool
	healthy.Store(true)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		if healthy.Load() {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	m := NewUrlMonitor(staticLinks{
		{ID: 1, ShortCode: "up", LongURL: srv.URL},
		{ID: 2, ShortCode: "bad", LongURL: "://broken"},
	}, time.Minute)

	m.CheckUrls(context.Background())

	accessible, known := m.state(1)
	require.True(t, known)
	assert.True(t, accessible)
	accessible, known = m.state(2)
	require.True(t, known)
	assert.False(t, accessible)

	healthy.Store(false)
	m.CheckUrls(context.Background())

	accessible, _ = m.state(1)
	assert.False(t, accessible)
}

func TestStart_StopsOnCancel(t *testing.T) {
	m := NewUrlMonitor(staticLinks{}, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		m.Start(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop")
	}
}
