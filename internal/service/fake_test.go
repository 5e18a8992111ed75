package service

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"bfv-tracker/internal/api"
	"bfv-tracker/internal/cache"
	"bfv-tracker/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func decode[T any](t *testing.T, body string) *T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(body), &v))
	return &v
}

// fakeProvider serves canned responses and counts calls per endpoint.
type fakeProvider struct {
	checkPlayer *api.CheckPlayerResponse
	stats       *api.AllStatsResponse
	ban         *api.BanRecordResponse
	banLog      *api.BanLogResponse
	community   *api.CommunityStatusResponse
	servers     *api.ServerSearchResponse

	checkCalls, statsCalls, banCalls, banLogCalls, communityCalls, serverCalls atomic.Int32

	// when set, every aggregation branch blocks until all three have started
	barrier *branchBarrier
}

type branchBarrier struct {
	wg         sync.WaitGroup
	all        chan struct{}
	once       sync.Once
	timedOut   atomic.Bool
	waitWindow time.Duration
}

func newBranchBarrier(n int) *branchBarrier {
	b := &branchBarrier{all: make(chan struct{}), waitWindow: 2 * time.Second}
	b.wg.Add(n)
	go func() {
		b.wg.Wait()
		b.once.Do(func() { close(b.all) })
	}()
	return b
}

func (b *branchBarrier) arrive() {
	if b == nil {
		return
	}
	b.wg.Done()
	select {
	case <-b.all:
	case <-time.After(b.waitWindow):
		b.timedOut.Store(true)
	}
}

func (p *fakeProvider) CheckPlayer(ctx context.Context, name string) *api.CheckPlayerResponse {
	p.checkCalls.Add(1)
	return p.checkPlayer
}

func (p *fakeProvider) GetAllStats(ctx context.Context, personaID string) *api.AllStatsResponse {
	p.statsCalls.Add(1)
	p.barrier.arrive()
	return p.stats
}

func (p *fakeProvider) GetBanRecord(ctx context.Context, personaID string) *api.BanRecordResponse {
	p.banCalls.Add(1)
	p.barrier.arrive()
	return p.ban
}

func (p *fakeProvider) GetBannedLogs(ctx context.Context, personaID string) *api.BanLogResponse {
	p.banLogCalls.Add(1)
	return p.banLog
}

func (p *fakeProvider) GetCommunityStatus(ctx context.Context, personaID string) *api.CommunityStatusResponse {
	p.communityCalls.Add(1)
	p.barrier.arrive()
	return p.community
}

func (p *fakeProvider) SearchServers(ctx context.Context, name string) *api.ServerSearchResponse {
	p.serverCalls.Add(1)
	return p.servers
}

const (
	foundPlayerJSON = `{"status":1,"message":"successful","data":{"personaId":1004198437219,"name":"Tester"}}`
	statsJSON       = `{"success":1,"data":{"rank":250,"kills":12000,"deaths":6000,"killDeath":2,
		"killsPerMinute":1.35,"scorePerMinute":812.5,"revives":340,"timePlayed":123456,
		"weapons":[{"name":"STG44","kills":900,"killsPerMinute":1.2,"headshots":"21%","accuracy":"18%","hitVKills":1.1},
			{"name":"Kar98k","kills":0}],
		"gadgets":[{"name":"Frag Grenade","kills":150}],
		"unpackWeapon":[{"name":"Sturmgewehr 1-5","kills":900}],
		"vehicles":[{"name":"Tiger I","kills":30,"killsPerMinute":0.8,"destroy":4}]}}`
	banJSON       = `{"data":{"status":1}}`
	communityJSON = `{"data":{"reasonStatus":"2"}}`
)

func happyProvider(t *testing.T) *fakeProvider {
	return &fakeProvider{
		checkPlayer: decode[api.CheckPlayerResponse](t, foundPlayerJSON),
		stats:       decode[api.AllStatsResponse](t, statsJSON),
		ban:         decode[api.BanRecordResponse](t, banJSON),
		community:   decode[api.CommunityStatusResponse](t, communityJSON),
	}
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func newTestService(p *fakeProvider, clock *testClock) *SearchService {
	caches := newCaches(cache.WithClock(clock.Now))
	logger := zerolog.Nop()
	cfg := &config.Config{DisplayLocation: time.FixedZone("UTC+8", 8*60*60)}
	return NewSearchService(
		NewResolver(p, caches, logger),
		NewAggregator(p, caches, logger),
		p,
		caches,
		cfg,
		logger,
	)
}
