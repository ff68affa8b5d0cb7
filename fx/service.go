package fx

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/etnz/vitals"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	// FallbackRate is the TRY per USD rate used when no rate was ever obtained.
	FallbackRate = 34.00

	// DefaultTTL is how long a fetched rate is fresh.
	DefaultTTL = time.Hour
	// DefaultTimeout bounds a fetch.
	DefaultTimeout = 5 * time.Second

	// MinTTL and MaxTTL bound the configurable TTL.
	MinTTL = 15 * time.Minute
	MaxTTL = time.Hour
)

// Service resolves the current rate.
type Service struct {
	Source  Source
	Name    string // of the source, stored in the rates
	Cache   *Cache
	Store   Store // optional
	Timeout time.Duration
	log     zerolog.Logger
}

// NewService returns a service fetching from src, caching for ttl and persisting to store
// (nil for none).
func NewService(src Source, ttl time.Duration, store Store, log zerolog.Logger) *Service {
	name := "custom"
	if n, ok := src.(interface{ Name() string }); ok {
		name = n.Name()
	}
	return &Service{
		Source:  src,
		Name:    name,
		Cache:   NewCache(ttl),
		Store:   store,
		Timeout: DefaultTimeout,
		log:     log.With().Str("component", "fx").Logger(),
	}
}

// Rate returns the current rate. It never fails:
//
//  1. a fresh cached rate is returned as is
//  2. otherwise the source is fetched, within Timeout
//  3. on failure the cached rate is returned, marked stale
//  4. then the rate persisted in Store, marked stale
//  5. then FallbackRate, marked stale
func (s *Service) Rate(ctx context.Context) vitals.ExchangeRate {
	cached, fresh, ok := s.Cache.Get()
	if ok && fresh {
		s.log.Debug().Stringer("rate", cached.Rate).Msg("cache hit")
		return cached
	}

	rate, err := s.fetch(ctx)
	if err == nil {
		s.log.Info().Stringer("rate", rate.Rate).Str("source", rate.Source).Msg("fetched rate")
		s.Cache.Put(rate)
		if s.Store != nil {
			if err := s.Store.Save(rate); err != nil {
				s.log.Warn().Err(err).Msg("cannot persist rate (ignored)")
			}
		}
		return rate
	}

	if ok {
		cached.Stale = true
		s.log.Warn().Err(err).Stringer("rate", cached.Rate).Time("at", cached.Timestamp).Msg("source failed, using stale cached rate")
		return cached
	}
	if s.Store != nil {
		stored, serr := s.Store.Load()
		switch {
		case serr == nil && stored.Rate.IsPositive():
			stored.Stale = true
			s.log.Warn().Err(err).Stringer("rate", stored.Rate).Time("at", stored.Timestamp).Msg("source failed, using stored rate")
			// the stored rate can be reused by the next calls of this process.
			s.Cache.Put(stored)
			return stored
		case serr != nil && !errors.Is(serr, fs.ErrNotExist):
			s.log.Warn().Err(serr).Msg("cannot read stored rate")
		}
	}
	s.log.Warn().Err(err).Float64("rate", FallbackRate).Msg("source failed, using fallback rate")
	return vitals.ExchangeRate{
		Rate:      decimal.NewFromFloat(FallbackRate),
		Timestamp: s.Cache.now(),
		Source:    "fallback",
		Stale:     true,
	}
}

func (s *Service) fetch(ctx context.Context) (vitals.ExchangeRate, error) {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		v   float64
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := s.Source.Fetch(ctx)
		done <- result{v, err}
	}()
	var r result
	select {
	case r = <-done:
	case <-ctx.Done():
		// a source ignoring ctx is left behind, it never blocks the caller.
		return vitals.ExchangeRate{}, fmt.Errorf("%w: %w", ErrUnavailable, ctx.Err())
	}
	v, err := r.v, r.err
	if err != nil {
		return vitals.ExchangeRate{}, err
	}
	if !usable(v) {
		return vitals.ExchangeRate{}, fmt.Errorf("%w: rate %v is not a positive finite number", ErrUnavailable, v)
	}
	return vitals.ExchangeRate{
		Rate:      decimal.NewFromFloat(v),
		Timestamp: s.Cache.now(),
		Source:    s.Name,
	}, nil
}
