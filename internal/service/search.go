package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bfv-tracker/internal/api"
	"bfv-tracker/internal/cache"
	"bfv-tracker/internal/config"
	"bfv-tracker/internal/constants"
	"bfv-tracker/internal/report"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

const reportIDLength = 12

func newReportID() (string, error) {
	return gonanoid.New(reportIDLength)
}

// SearchService exposes the three queries a chat command can trigger.
type SearchService struct {
	resolver   *Resolver
	aggregator *Aggregator
	provider   Provider
	caches     *Caches
	location   *time.Location
	newID      func() (string, error)
	logger     zerolog.Logger
}

func NewSearchService(resolver *Resolver, aggregator *Aggregator, provider Provider, caches *Caches, cfg *config.Config, logger zerolog.Logger) *SearchService {
	loc := cfg.DisplayLocation
	if loc == nil {
		loc = time.FixedZone("UTC+8", constants.DefaultDisplayOffset)
	}
	return &SearchService{
		resolver:   resolver,
		aggregator: aggregator,
		provider:   provider,
		caches:     caches,
		location:   loc,
		newID:      newReportID,
		logger:     logger,
	}
}

func (s *SearchService) PlayerReport(ctx context.Context, name string) (*report.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyQuery
	}

	s.logger.Info().Str("name", name).Msg("building player report")

	identity, err := s.resolver.Resolve(ctx, name)
	if err != nil {
		return nil, err
	}

	result, err := s.aggregator.Aggregate(ctx, identity)
	if err != nil {
		return nil, err
	}

	r := report.BuildPlayer(identity, result.Stats, result.Ban, result.Community)
	s.assignID(r)
	s.logger.Info().
		Str("persona_id", identity.PersonaID).
		Str("report_id", r.ID).
		Bool("ban_found", result.Ban != nil).
		Bool("community_found", result.Community != nil).
		Msg("player report built")
	return r, nil
}

func (s *SearchService) BanHistory(ctx context.Context, name string) (*report.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyQuery
	}

	s.logger.Info().Str("name", name).Msg("building ban history")

	identity, err := s.resolver.Resolve(ctx, name)
	if err != nil {
		return nil, err
	}

	pid := identity.PersonaID
	resp := s.caches.BanLog.GetOrCompute(pid, func() *api.BanLogResponse {
		return s.provider.GetBannedLogs(context.WithoutCancel(ctx), pid)
	})
	if resp == nil || (resp.Success.Valid && resp.Success.Value != 1) {
		s.logger.Warn().Str("persona_id", pid).Msg("ban log unavailable")
		return nil, ErrBanLogUnavailable
	}

	entries := toBanLogEntries(resp)
	r := report.BuildBanLog(identity, entries, s.location)
	s.assignID(r)
	s.logger.Info().Str("persona_id", pid).Int("entries", len(entries)).Str("report_id", r.ID).Msg("ban history built")
	return r, nil
}

func (s *SearchService) ServerSearch(ctx context.Context, name string) (*report.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyQuery
	}

	s.logger.Info().Str("query", name).Msg("searching servers")

	resp := s.provider.SearchServers(ctx, name)
	if resp == nil || (resp.Success.Valid && resp.Success.Value != 1) {
		s.logger.Warn().Str("query", name).Msg("server search unavailable")
		return nil, ErrServerSearchUnavailable
	}

	servers := toServerSummaries(resp)
	r := report.BuildServerSearch(name, servers)
	s.assignID(r)
	s.logger.Info().Str("query", name).Int("count", len(servers)).Str("report_id", r.ID).Msg("server search completed")
	return r, nil
}

// assignID names the report. Delivery uses the id as the attachment file
// name, so a failing generator falls back to a timestamp.
func (s *SearchService) assignID(r *report.Report) {
	id, err := s.newID()
	if err != nil {
		s.logger.Warn().Err(err).Msg("report id generation failed")
		id = fmt.Sprintf("report-%d", time.Now().UnixNano())
	}
	r.ID = id
}

func (s *SearchService) CacheStats() []cache.Stats {
	return s.caches.Snapshot()
}
