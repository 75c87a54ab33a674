package cache

import (
	"context"
	"encoding/json"
	"time"
)

// FeedMeta records the outcome of the last successful fetch for one
// (family, feed identifier) pair. Count always equals the number of items
// committed to the snapshot in the same write.
type FeedMeta struct {
	Family       string    `json:"family"`
	FeedID       string    `json:"feed_id"`
	LastModified string    `json:"last_modified,omitempty"`
	ETag         string    `json:"etag,omitempty"`
	FetchedAt    time.Time `json:"fetched_at"`
	Count        int       `json:"count"`
}

// Store is the cache contract consumed by the feed pipeline and the API
// handlers. GetFeedMeta and GetSnapshot return nil without error on a miss.
type Store interface {
	GetFeedMeta(ctx context.Context, family, id string) (*FeedMeta, error)
	SetFeedMeta(ctx context.Context, family, id string, meta FeedMeta) error
	GetSnapshot(ctx context.Context, family, id string) ([]json.RawMessage, error)
	SetSnapshot(ctx context.Context, family, id string, items []json.RawMessage) error
}

func metaKey(family, id string) string {
	return "feedmeta:" + family + ":" + id
}

func snapshotKey(family, id string) string {
	return "snapshot:" + family + ":" + id
}
