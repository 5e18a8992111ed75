package service

import (
	"context"
	"time"

	"bfv-tracker/internal/api"
	"bfv-tracker/internal/domain"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// AggregateResult joins the three per-player sources. Ban and Community are
// nil when their lookup failed.
type AggregateResult struct {
	Stats     *domain.RawStats
	Ban       *domain.BanRecord
	Community *domain.CommunityStatus
}

type Aggregator struct {
	provider Provider
	caches   *Caches
	logger   zerolog.Logger
}

func NewAggregator(provider Provider, caches *Caches, logger zerolog.Logger) *Aggregator {
	return &Aggregator{provider: provider, caches: caches, logger: logger}
}

// Aggregate fetches stats, ban record and community status concurrently and
// waits for all three. Only the stats source can fail the aggregation.
func (a *Aggregator) Aggregate(ctx context.Context, identity *domain.PlayerIdentity) (*AggregateResult, error) {
	start := time.Now()
	pid := identity.PersonaID
	detached := context.WithoutCancel(ctx)

	var (
		statsResp     *api.AllStatsResponse
		banResp       *api.BanRecordResponse
		communityResp *api.CommunityStatusResponse
	)

	// no derived context: a failed branch must not cancel its siblings
	var g errgroup.Group

	g.Go(func() error {
		statsResp = a.caches.Stats.GetOrCompute(pid, func() *api.AllStatsResponse {
			return a.provider.GetAllStats(detached, pid)
		})
		return nil
	})

	g.Go(func() error {
		banResp = a.caches.Ban.GetOrCompute(pid, func() *api.BanRecordResponse {
			return a.provider.GetBanRecord(detached, pid)
		})
		return nil
	})

	g.Go(func() error {
		communityResp = a.provider.GetCommunityStatus(ctx, pid)
		return nil
	})

	// branches report failure as nil data, never as an error
	_ = g.Wait()

	a.logger.Debug().
		Str("persona_id", pid).
		Bool("stats", statsResp != nil).
		Bool("ban", banResp != nil).
		Bool("community", communityResp != nil).
		Dur("elapsed", time.Since(start)).
		Msg("aggregation joined")

	if statsResp == nil || !statsResp.Success.Valid || statsResp.Success.Value != 1 {
		a.logger.Warn().Str("persona_id", pid).Msg("stats unavailable")
		return nil, ErrStatsUnavailable
	}
	if rank := statsResp.Data.Rank; !rank.Valid || rank.Value == 0 {
		a.logger.Info().Str("persona_id", pid).Msg("player has no completed match")
		return nil, ErrNoCompletedMatch
	}

	return &AggregateResult{
		Stats:     toRawStats(&statsResp.Data),
		Ban:       toBanRecord(banResp),
		Community: toCommunityStatus(communityResp),
	}, nil
}
