package service

import (
	"context"

	"bfv-tracker/internal/api"
	"bfv-tracker/internal/cache"
	"bfv-tracker/internal/constants"
)

// Provider is the set of upstream lookups the service needs. Each method
// returns nil when the upstream could not deliver.
type Provider interface {
	CheckPlayer(ctx context.Context, name string) *api.CheckPlayerResponse
	GetAllStats(ctx context.Context, personaID string) *api.AllStatsResponse
	GetBanRecord(ctx context.Context, personaID string) *api.BanRecordResponse
	GetBannedLogs(ctx context.Context, personaID string) *api.BanLogResponse
	GetCommunityStatus(ctx context.Context, personaID string) *api.CommunityStatusResponse
	SearchServers(ctx context.Context, name string) *api.ServerSearchResponse
}

// Caches holds one cache per cached upstream source. Identity is keyed by
// the queried name, the others by persona id.
type Caches struct {
	Identity *cache.Cache[string, *api.CheckPlayerResponse]
	Stats    *cache.Cache[string, *api.AllStatsResponse]
	Ban      *cache.Cache[string, *api.BanRecordResponse]
	BanLog   *cache.Cache[string, *api.BanLogResponse]
}

func NewCaches() *Caches {
	return newCaches()
}

func newCaches(opts ...cache.Option) *Caches {
	return &Caches{
		Identity: cache.New[string, *api.CheckPlayerResponse]("identity", constants.IdentityCacheTTL, opts...),
		Stats:    cache.New[string, *api.AllStatsResponse]("stats", constants.StatsCacheTTL, opts...),
		Ban:      cache.New[string, *api.BanRecordResponse]("ban", constants.BanCacheTTL, opts...),
		BanLog:   cache.New[string, *api.BanLogResponse]("banlog", constants.BanLogCacheTTL, opts...),
	}
}

// Snapshot returns the counters of every cache.
func (c *Caches) Snapshot() []cache.Stats {
	return []cache.Stats{
		c.Identity.Stats(),
		c.Stats.Stats(),
		c.Ban.Stats(),
		c.BanLog.Stats(),
	}
}
