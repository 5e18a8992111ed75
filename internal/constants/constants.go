package constants

import "time"

const (
	IdentityCacheTTL = 10 * time.Minute
	StatsCacheTTL    = 10 * time.Minute
	BanCacheTTL      = 10 * time.Minute
	BanLogCacheTTL   = 10 * time.Minute
)

const (
	ExternalAPITimeout = 10 * time.Second
	RequestTimeout     = 30 * time.Second
)

const (
	FetchMaxConnsPerHost     = 100
	FetchMaxIdleConnDuration = 1 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	ServerSearchLimit = 10

	// SelfMarker is the argument meaning "use the caller's display name".
	SelfMarker = "0"

	// UTC+8, the zone the ban log is read in.
	DefaultDisplayTimezone = "Asia/Shanghai"
	DefaultDisplayOffset   = 8 * 60 * 60
)
