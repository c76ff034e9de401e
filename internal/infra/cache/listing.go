package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"charterdesk/internal/domain/listing"
	"charterdesk/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	listingKeyPrefix = "listing:"
	listingIndexKey  = "listings:all"
)

// CachedListingReadStore fronts the catalog reads with redis. Cache
// problems degrade to the database, they never fail a request.
type CachedListingReadStore struct {
	inner queries.ListingReadStore
	redis *redis.Client
	ttl   time.Duration
}

func NewCachedListingReadStore(inner queries.ListingReadStore, rdb *redis.Client, ttl time.Duration) *CachedListingReadStore {
	return &CachedListingReadStore{inner: inner, redis: rdb, ttl: ttl}
}

// listingSnapshot is the cache wire form; the domain entity keeps its
// fields unexported.
type listingSnapshot struct {
	ID             uuid.UUID                            `json:"id"`
	Name           string                               `json:"name"`
	Currency       string                               `json:"currency"`
	OwnerName      string                               `json:"owner_name"`
	OwnerPhone     string                               `json:"owner_phone"`
	CommissionRate int                                  `json:"commission_rate"`
	Rates          map[listing.Mode]listing.RateEntry   `json:"rates"`
	CreatedAt      time.Time                            `json:"created_at"`
	UpdatedAt      time.Time                            `json:"updated_at"`
}

func snapshotOf(l *listing.Listing) listingSnapshot {
	return listingSnapshot{
		ID:             l.ID(),
		Name:           l.Name(),
		Currency:       l.Currency(),
		OwnerName:      l.OwnerName(),
		OwnerPhone:     l.OwnerPhone(),
		CommissionRate: l.CommissionRate(),
		Rates:          l.Rates(),
		CreatedAt:      l.CreatedAt(),
		UpdatedAt:      l.UpdatedAt(),
	}
}

func (s listingSnapshot) toDomain() *listing.Listing {
	return listing.ReconstructListing(
		s.ID, s.Name, s.Currency, s.OwnerName, s.OwnerPhone,
		s.CommissionRate, listing.RateCatalog(s.Rates),
		s.CreatedAt, s.UpdatedAt,
	)
}

func (s *CachedListingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*listing.Listing, error) {
	key := listingKeyPrefix + id.String()

	if raw, err := s.redis.Get(ctx, key).Bytes(); err == nil {
		var snap listingSnapshot
		if unmarshalErr := json.Unmarshal(raw, &snap); unmarshalErr == nil {
			return snap.toDomain(), nil
		}
	} else if !errors.Is(err, redis.Nil) {
		slog.Warn("listing cache read failed", "key", key, "error", err)
	}

	l, err := s.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, snapshotOf(l))
	return l, nil
}

func (s *CachedListingReadStore) FindAll(ctx context.Context) ([]*listing.Listing, error) {
	if raw, err := s.redis.Get(ctx, listingIndexKey).Bytes(); err == nil {
		var snaps []listingSnapshot
		if unmarshalErr := json.Unmarshal(raw, &snaps); unmarshalErr == nil {
			ls := make([]*listing.Listing, len(snaps))
			for i, snap := range snaps {
				ls[i] = snap.toDomain()
			}
			return ls, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		slog.Warn("listing cache read failed", "key", listingIndexKey, "error", err)
	}

	ls, err := s.inner.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	snaps := make([]listingSnapshot, len(ls))
	for i, l := range ls {
		snaps[i] = snapshotOf(l)
	}
	s.store(ctx, listingIndexKey, snaps)
	return ls, nil
}

// Invalidate drops the given listings and the index. Called after
// every catalog write.
func (s *CachedListingReadStore) Invalidate(ctx context.Context, ids ...uuid.UUID) error {
	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, listingKeyPrefix+id.String())
	}
	keys = append(keys, listingIndexKey)
	return s.redis.Del(ctx, keys...).Err()
}

func (s *CachedListingReadStore) store(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		slog.Warn("listing cache write failed", "key", key, "error", err)
	}
}
