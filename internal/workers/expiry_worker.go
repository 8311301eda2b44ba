package workers

import (
	"context"
	"errors"
	"time"

	pgrepo "github.com/roomsathi/roomsathi/internal/repositories/postgres"
	"github.com/sirupsen/logrus"
)

// ExpiryWorker periodically flips overdue open listings and requests to
// expired so stale posts drop out of browse and match results.
type ExpiryWorker struct {
	Listings pgrepo.ListingRepository
	Requests pgrepo.RequestRepository

	Logger   *logrus.Logger
	Interval time.Duration
}

func (w *ExpiryWorker) Start(ctx context.Context) error {
	if w.Listings == nil || w.Requests == nil {
		return errors.New("ExpiryWorker missing dependency: Listings/Requests must be set")
	}
	if w.Interval <= 0 {
		w.Interval = 10 * time.Minute
	}
	if w.Logger == nil {
		w.Logger = logrus.New()
	}

	go w.run(ctx)
	return nil
}

func (w *ExpiryWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	w.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *ExpiryWorker) sweep(ctx context.Context) {
	now := time.Now().UTC()

	listings, err := w.Listings.ExpireOverdue(ctx, now)
	if err != nil {
		w.Logger.WithError(err).Error("listing expiry sweep failed")
	}

	requests, err := w.Requests.ExpireOverdue(ctx, now)
	if err != nil {
		w.Logger.WithError(err).Error("request expiry sweep failed")
	}

	if listings > 0 || requests > 0 {
		w.Logger.WithFields(logrus.Fields{
			"listings": listings,
			"requests": requests,
		}).Info("expired overdue posts")
	}
}
