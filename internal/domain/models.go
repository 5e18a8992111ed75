package domain

type PlayerIdentity struct {
	QueryName     string
	PersonaID     string
	CanonicalName string
}

type ItemOrigin string

const (
	OriginWeapon     ItemOrigin = "weapon"
	OriginGadget     ItemOrigin = "gadget"
	OriginUnlockable ItemOrigin = "unpackWeapon"
)

type ItemStat struct {
	Name           string
	Origin         ItemOrigin
	Kills          int
	KillsPerMinute string
	Headshots      string
	Accuracy       string
	KillEfficiency string
}

type VehicleStat struct {
	Name           string
	Kills          int
	KillsPerMinute string
	Destroyed      string
}

type RawStats struct {
	Rank              *int
	Kills             int
	Deaths            int
	KillDeath         float64
	KillsPerMinute    float64
	ScorePerMinute    float64
	Revives           int
	TimePlayedSeconds *float64 // nil when upstream omits it

	// weapons, gadgets, then unlockable weapons, in upstream order
	Items    []ItemStat
	Vehicles []VehicleStat
}

// HasCompletedMatch reports whether the player has any recorded play time.
func (s *RawStats) HasCompletedMatch() bool {
	return s != nil && s.TimePlayedSeconds != nil && *s.TimePlayedSeconds > 0
}

type BanRecord struct {
	StatusCode *int
}

type CommunityStatus struct {
	ReasonStatusCode int
}

type BanLogEntry struct {
	ServerName string
	Reason     string
	CreatedAt  string // ISO-8601 UTC as sent by upstream
}

type ServerSummary struct {
	Name            string
	ImageURL        string
	MapName         string
	MapMode         string
	CurrentSoldiers int
	MaxSoldiers     int
	QueueCount      int
}
