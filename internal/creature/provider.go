package creature

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Provider resolves creature records through the cache, collapsing
// concurrent requests for the same id into one upstream fetch. It never
// fails for a valid id: upstream errors yield the fallback record, which is
// not cached so a later request can still reach the upstream.
type Provider struct {
	src   Source
	cache *Cache
	group singleflight.Group
	log   *zap.Logger
}

func NewProvider(src Source, ttl time.Duration, log *zap.Logger) *Provider {
	return &Provider{src: src, cache: NewCache(ttl), log: log}
}

// Cache exposes the provider's cache for inspection.
func (p *Provider) Cache() *Cache { return p.cache }

// Resolve returns the record for id. Only ErrUnknownCreature and context
// cancellation are reported as errors.
func (p *Provider) Resolve(ctx context.Context, id int) (Record, error) {
	if err := Validate(id); err != nil {
		return Record{}, err
	}
	if rec, ok := p.cache.Get(id); ok {
		return rec, nil
	}

	ch := p.group.DoChan(strconv.Itoa(id), func() (any, error) {
		// detached from the first caller so its cancellation does not fail
		// the requests that joined it
		fetchCtx := context.WithoutCancel(ctx)
		rec, err := p.src.Fetch(fetchCtx, id)
		if err != nil {
			p.log.Debug("creature upstream unavailable, using fallback",
				zap.Int("id", id), zap.Error(err))
			return Fallback(id), nil
		}
		rec.ID = id
		p.cache.Put(rec)
		return rec, nil
	})

	select {
	case <-ctx.Done():
		return Record{}, ctx.Err()
	case res := <-ch:
		return res.Val.(Record), nil
	}
}

// Offline is a Source that always fails, forcing fallback records.
type Offline struct{}

func (Offline) Fetch(context.Context, int) (Record, error) {
	return Record{}, errOffline
}

var errOffline = errors.New("creature source offline")
