package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"bfv-tracker/internal/cache"
	"bfv-tracker/internal/report"
	"bfv-tracker/internal/service"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"
)

const (
	ServiceName = "bfv.v1.SearchService"
	ServicePath = "/" + ServiceName + "/"

	PlayerReportProcedure = ServicePath + "PlayerReport"
	BanHistoryProcedure   = ServicePath + "BanHistory"
	ServerSearchProcedure = ServicePath + "ServerSearch"

	HealthPath = "/healthz"
)

// Searcher is the query side the RPC surface exposes.
type Searcher interface {
	PlayerReport(ctx context.Context, name string) (*report.Report, error)
	BanHistory(ctx context.Context, name string) (*report.Report, error)
	ServerSearch(ctx context.Context, name string) (*report.Report, error)
	CacheStats() []cache.Stats
}

type QueryRequest struct {
	Name string `json:"name"`
}

type ReportResponse struct {
	Report   *report.Report `json:"report"`
	Markdown string         `json:"markdown"`
}

type HealthResponse struct {
	Status string        `json:"status"`
	Caches []cache.Stats `json:"caches"`
}

type SearchServer struct {
	searcher Searcher
}

func NewSearchServer(searcher *service.SearchService) *SearchServer {
	return newSearchServer(searcher)
}

func newSearchServer(searcher Searcher) *SearchServer {
	return &SearchServer{searcher: searcher}
}

// Handler mounts the three procedures under ServicePath.
func (s *SearchServer) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(PlayerReportProcedure, connect.NewUnaryHandler(PlayerReportProcedure, s.PlayerReport, opts...))
	mux.Handle(BanHistoryProcedure, connect.NewUnaryHandler(BanHistoryProcedure, s.BanHistory, opts...))
	mux.Handle(ServerSearchProcedure, connect.NewUnaryHandler(ServerSearchProcedure, s.ServerSearch, opts...))
	return ServicePath, mux
}

func (s *SearchServer) PlayerReport(ctx context.Context, req *connect.Request[QueryRequest]) (*connect.Response[ReportResponse], error) {
	return s.run(ctx, "PlayerReport", req.Msg.Name, s.searcher.PlayerReport)
}

func (s *SearchServer) BanHistory(ctx context.Context, req *connect.Request[QueryRequest]) (*connect.Response[ReportResponse], error) {
	return s.run(ctx, "BanHistory", req.Msg.Name, s.searcher.BanHistory)
}

func (s *SearchServer) ServerSearch(ctx context.Context, req *connect.Request[QueryRequest]) (*connect.Response[ReportResponse], error) {
	return s.run(ctx, "ServerSearch", req.Msg.Name, s.searcher.ServerSearch)
}

func (s *SearchServer) run(
	ctx context.Context,
	method, name string,
	query func(context.Context, string) (*report.Report, error),
) (*connect.Response[ReportResponse], error) {
	logger := zerolog.Ctx(ctx)
	start := time.Now()

	r, err := query(ctx, name)
	if err != nil {
		logger.Warn().Err(err).Str("method", method).Str("name", name).Msg("query failed")
		return nil, connect.NewError(codeOf(err), errors.New(service.UserMessage(err)))
	}

	logger.Info().
		Str("method", method).
		Str("report_id", r.ID).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("query served")

	return connect.NewResponse(&ReportResponse{Report: r, Markdown: report.Markdown(r)}), nil
}

func codeOf(err error) connect.Code {
	switch {
	case errors.Is(err, service.ErrEmptyQuery):
		return connect.CodeInvalidArgument
	case errors.Is(err, service.ErrPlayerNotFound):
		return connect.CodeNotFound
	case errors.Is(err, service.ErrNoCompletedMatch):
		return connect.CodeFailedPrecondition
	case errors.Is(err, service.ErrStatsUnavailable),
		errors.Is(err, service.ErrBanLogUnavailable),
		errors.Is(err, service.ErrServerSearchUnavailable):
		return connect.CodeUnavailable
	default:
		return connect.CodeInternal
	}
}

// Health reports liveness together with the cache counters.
func (s *SearchServer) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(HealthResponse{Status: "ok", Caches: s.searcher.CacheStats()}); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to write health response")
	}
}
