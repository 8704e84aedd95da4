package monitor

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/axellelanca/surl/internal/models"
)

// LinkSource provides the links to watch. It is satisfied by repository.LinkRepository.
type LinkSource interface {
	GetAllLinks() ([]models.Link, error)
}

// UrlMonitor periodically checks that the long URLs kept in the local history are still reachable.
// It remembers the last state of each link and logs transitions.
type UrlMonitor struct {
	links       LinkSource
	interval    time.Duration
	knownStates map[uint]bool // link ID -> accessible
	mu          sync.Mutex
	httpClient  *http.Client
	log         *logrus.Entry
}

// NewUrlMonitor creates a monitor checking every interval.
func NewUrlMonitor(links LinkSource, interval time.Duration) *UrlMonitor {
	return &UrlMonitor{
		links:       links,
		interval:    interval,
		knownStates: make(map[uint]bool),
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		log:         logrus.WithField("component", "monitor"),
	}
}

// Start runs the monitoring loop until ctx is cancelled. A first check runs immediately.
func (m *UrlMonitor) Start(ctx context.Context) {
	m.log.Infof("Starting URL monitor with interval of %v", m.interval)
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.CheckUrls(ctx)

	for {
		select {
		case <-ctx.Done():
			m.log.Info("URL monitor stopped")
			return
		case <-ticker.C:
			m.CheckUrls(ctx)
		}
	}
}

// CheckUrls checks every link once and logs the ones whose state changed.
func (m *UrlMonitor) CheckUrls(ctx context.Context) {
	links, err := m.links.GetAllLinks()
	if err != nil {
		m.log.WithError(err).Error("Failed to retrieve links for monitoring")
		return
	}

	for _, link := range links {
		if ctx.Err() != nil {
			return
		}

		current := m.isUrlAccessible(ctx, link.LongURL)

		m.mu.Lock()
		previous, exists := m.knownStates[link.ID]
		m.knownStates[link.ID] = current
		m.mu.Unlock()

		entry := m.log.WithFields(logrus.Fields{"short_code": link.ShortCode, "long_url": link.LongURL})
		if !exists {
			entry.Infof("Initial state: %s", formatState(current))
			continue
		}
		if current != previous {
			entry.Warnf("Link changed from %s to %s", formatState(previous), formatState(current))
		}
	}
}

// state returns the last known state of a link.
func (m *UrlMonitor) state(linkID uint) (accessible, known bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	accessible, known = m.knownStates[linkID]
	return accessible, known
}

// isUrlAccessible sends a HEAD request; 2xx and 3xx count as accessible.
func (m *UrlMonitor) isUrlAccessible(ctx context.Context, url string) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		m.log.WithError(err).Debugf("Invalid URL %q", url)
		return false
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		m.log.WithError(err).Debugf("Error accessing %q", url)
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 400
}

func formatState(accessible bool) string {
	if accessible {
		return "ACCESSIBLE"
	}
	return "INACCESSIBLE"
}
