package workers

import (
	"sync"

	"github.com/sirupsen/logrus"

	customerrors "github.com/axellelanca/surl/internal/errors"
	"github.com/axellelanca/surl/internal/metrics"
	"github.com/axellelanca/surl/internal/models"
	"github.com/axellelanca/surl/internal/repository"
)

// StartHistoryWorkers launches a pool of worker goroutines that persist shorten events
// into the local history. Workers exit once events is closed; the returned WaitGroup
// lets the caller wait for the queue to drain.
func StartHistoryWorkers(workerCount int, events <-chan models.ShortenEvent, linkRepo repository.LinkRepository) *sync.WaitGroup {
	logrus.Infof("Starting %d history worker(s)...", workerCount)

	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			historyWorker(events, linkRepo)
		}()
	}
	return &wg
}

// historyWorker turns each ShortenEvent into a Link row. A failed insert is logged and
// the worker moves on to the next event.
func historyWorker(events <-chan models.ShortenEvent, linkRepo repository.LinkRepository) {
	for event := range events {
		link := &models.Link{
			ShortCode: event.ShortCode,
			ShortURL:  event.ShortURL,
			LongURL:   event.LongURL,
			CreatedAt: event.Timestamp,
		}

		if err := linkRepo.CreateLink(link); err != nil {
			metrics.HistoryEvents.WithLabelValues("failed").Inc()
			logrus.WithError(customerrors.ErrHistoryRecordingFailed{
				ShortCode: event.ShortCode,
				Reason:    err.Error(),
			}).Error("History recording failed")
			continue
		}

		metrics.HistoryEvents.WithLabelValues("recorded").Inc()
		logrus.WithField("short_code", event.ShortCode).Debug("Link recorded in history")
	}
}
