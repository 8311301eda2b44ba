package workers

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/roomsathi/roomsathi/internal/geo"
	pgrepo "github.com/roomsathi/roomsathi/internal/repositories/postgres"
	"github.com/roomsathi/roomsathi/internal/services"
	"github.com/sirupsen/logrus"
)

// GeocodeWorkerPool drains the geocode stream and backfills listing
// coordinates. The provider allows roughly one request per second, so keep
// NumWorkers at 1 unless you bring your own quota.
type GeocodeWorkerPool struct {
	Redis    *redis.Client
	Listings pgrepo.ListingRepository
	Geocoder geo.Geocoder

	Logger *logrus.Logger

	Stream         string
	Group          string
	ConsumerPrefix string
	NumWorkers     int
	Delay          time.Duration
}

func (p *GeocodeWorkerPool) Start(ctx context.Context) error {
	if p.Redis == nil || p.Listings == nil || p.Geocoder == nil {
		return errors.New("GeocodeWorkerPool missing dependency: Redis/Listings/Geocoder must be set")
	}
	if p.Stream == "" {
		p.Stream = services.GeocodeStream
	}
	if p.Group == "" {
		p.Group = "geocode-workers"
	}
	if p.ConsumerPrefix == "" {
		p.ConsumerPrefix = "g"
	}
	if p.NumWorkers <= 0 {
		p.NumWorkers = 1
	}
	if p.Delay <= 0 {
		p.Delay = time.Second
	}
	if p.Logger == nil {
		p.Logger = logrus.New()
	}

	_ = p.Redis.XGroupCreateMkStream(ctx, p.Stream, p.Group, "0").Err() // ignore BUSYGROUP

	for i := 0; i < p.NumWorkers; i++ {
		consumer := p.ConsumerPrefix + "-" + strconv.Itoa(i+1)
		go p.runConsumer(ctx, consumer)
	}
	return nil
}

func (p *GeocodeWorkerPool) runConsumer(ctx context.Context, consumer string) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res, err := p.Redis.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    p.Group,
			Consumer: consumer,
			Streams:  []string{p.Stream, ">"},
			Count:    10,
			Block:    5 * time.Second,
		}).Result()

		if err != nil {
			if err == redis.Nil {
				continue
			}
			time.Sleep(500 * time.Millisecond)
			continue
		}

		for _, stream := range res {
			for _, msg := range stream.Messages {
				p.handleMsg(ctx, msg)
				_ = p.Redis.XAck(ctx, p.Stream, p.Group, msg.ID).Err()

				// provider rate limit
				select {
				case <-ctx.Done():
					return
				case <-time.After(p.Delay):
				}
			}
		}
	}
}

func (p *GeocodeWorkerPool) handleMsg(ctx context.Context, msg redis.XMessage) {
	getStr := func(k string) string {
		v, ok := msg.Values[k]
		if !ok || v == nil {
			return ""
		}
		s, _ := v.(string)
		return s
	}

	listingID := getStr("listing_id")
	address := getStr("address")
	if listingID == "" || address == "" {
		return
	}

	log := p.Logger.WithFields(logrus.Fields{
		"redis_id":   msg.ID,
		"listing_id": listingID,
	})

	coords, err := p.Geocoder.Resolve(ctx, address)
	if err != nil {
		log.WithError(err).Warn("geocode failed")
		return
	}
	if coords == nil {
		log.Info("address not found by geocoder")
		return
	}

	if err := p.Listings.SetCoordinates(ctx, listingID, coords.Latitude, coords.Longitude); err != nil {
		log.WithError(err).Error("failed to store coordinates")
		return
	}
	log.WithFields(logrus.Fields{"lat": coords.Latitude, "lon": coords.Longitude}).Info("listing geocoded")
}
