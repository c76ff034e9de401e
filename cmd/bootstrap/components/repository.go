package components

import (
	"charterdesk/internal/infra/cache"
	"charterdesk/internal/infra/repository"
	"charterdesk/internal/pkg/config"
	"charterdesk/internal/usecase/commands"
	"charterdesk/internal/usecase/queries"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		repository.NewListingRepository,
		repository.NewLeadRepository,
		repository.NewLeadReadStore,
		repository.NewNotificationRepository,
		NewListingCache,

		// Interface bindings
		func(r *repository.ListingRepository) commands.ListingRepository { return r },
		func(r *repository.LeadRepository) commands.LeadRepository { return r },
		func(r *repository.NotificationRepository) commands.NotificationRepository { return r },
		func(s *repository.LeadReadStore) queries.LeadReadStore { return s },
		// Catalog reads go through redis; writes invalidate it.
		func(c *cache.CachedListingReadStore) queries.ListingReadStore { return c },
		func(c *cache.CachedListingReadStore) commands.ListingCache { return c },
	),
)

func NewListingCache(repo *repository.ListingRepository, rdb *redis.Client, cfg config.Config) *cache.CachedListingReadStore {
	return cache.NewCachedListingReadStore(repo, rdb, cfg.Redis.CacheTTL)
}
