package feeds

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/theoremus-urban-solutions/transit-journeys/cache"
)

// Source is the per-identifier fetch hook a Poller drives. Implementations
// own the full probe/fetch/decode/commit sequence for one feed family.
type Source interface {
	FetchAndCache(ctx context.Context, id string) (int, error)
}

// Refresher implements Source for one feed family: it reads the prior
// metadata, probes for modification, fetches and decodes on change and
// commits the snapshot plus fresh metadata to the shared cache.
type Refresher struct {
	family Family
	client *Client
	store  cache.Store
	decode DecodeFunc
	now    func() time.Time
}

// NewRefresher wires a family-specific refresher. decode defaults to
// DecodeFeed when nil.
func NewRefresher(family Family, client *Client, store cache.Store, decode DecodeFunc) *Refresher {
	if decode == nil {
		decode = DecodeFeed
	}
	return &Refresher{
		family: family,
		client: client,
		store:  store,
		decode: decode,
		now:    time.Now,
	}
}

// FetchAndCache refreshes one feed identifier. When the probe reports the
// feed unmodified and prior metadata exists the cache is left untouched.
// Returns the number of items committed (0 for an unmodified feed).
func (r *Refresher) FetchAndCache(ctx context.Context, id string) (int, error) {
	family := string(r.family)
	meta, err := r.store.GetFeedMeta(ctx, family, id)
	if err != nil {
		// Treat an unreadable meta as a miss; a full fetch follows.
		log.Printf("refresher[%s] feed %s: meta read failed: %v", family, id, err)
		meta = nil
	}
	known := Validator{}
	if meta != nil {
		known = Validator{LastModified: meta.LastModified, ETag: meta.ETag}
	}
	probe, err := r.client.CheckModified(ctx, r.family, id, known)
	if err != nil {
		return 0, err
	}
	if !probe.Modified && meta != nil {
		return 0, nil
	}

	data, validator, format, err := r.client.Fetch(ctx, r.family, id)
	if err != nil {
		return 0, err
	}
	items, err := r.decode(data, format)
	if err != nil {
		return 0, err
	}
	if items == nil {
		items = []json.RawMessage{}
	}
	if err := r.store.SetSnapshot(ctx, family, id, items); err != nil {
		return 0, err
	}
	newMeta := cache.FeedMeta{
		Family:       family,
		FeedID:       id,
		LastModified: validator.LastModified,
		ETag:         validator.ETag,
		FetchedAt:    r.now(),
		Count:        len(items),
	}
	if err := r.store.SetFeedMeta(ctx, family, id, newMeta); err != nil {
		return 0, err
	}
	return len(items), nil
}
