// Package report turns aggregated upstream records into an ordered list of
// sections. Builders are pure: equal inputs give equal reports, and the ID is
// left for the caller to assign. Rendering is left to callers too.
package report

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"
	"time"

	"bfv-tracker/internal/domain"
	"bfv-tracker/internal/status"
)

const (
	NoCompletedMatchMessage = "player has no completed match"
	LookupFailedMessage     = "lookup failed"
	NoBanRecordsMessage     = "no ban records"
	NoServersMessage        = "no servers found"
)

type Report struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

// Section holds either a table or a text block.
type Section struct {
	Title string     `json:"title,omitempty"`
	Table *Table     `json:"table,omitempty"`
	Text  *TextBlock `json:"text,omitempty"`
}

type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

type TextBlock struct {
	Lines []string `json:"lines"`

	// Status marks a one-line classification result painted with Severity.
	Status   bool            `json:"status,omitempty"`
	Severity status.Severity `json:"severity"`
}

var (
	summaryColumns = []string{"Rank", "Kills", "Deaths", "K/D", "KPM", "SPM", "Revives", "Hours Played"}
	itemColumns    = []string{"Weapon", "Kills", "KPM", "Headshots", "Accuracy", "Kill Efficiency"}
	vehicleColumns = []string{"Vehicle", "Kills", "KPM", "Destroyed"}
	banLogColumns  = []string{"Time", "Server", "Reason"}
	serverColumns  = []string{"Server", "Map", "Mode", "Players", "Queue", "Image"}
)

// BuildPlayer builds the consolidated player report. ban and community are
// optional; a nil ban renders as "no record", a nil community status as
// "lookup failed".
func BuildPlayer(identity *domain.PlayerIdentity, stats *domain.RawStats, ban *domain.BanRecord, community *domain.CommunityStatus) *Report {
	r := &Report{
		Title: fmt.Sprintf("Player %s", identity.CanonicalName),
	}

	if !stats.HasCompletedMatch() {
		r.Sections = []Section{{Text: &TextBlock{Lines: []string{NoCompletedMatchMessage}}}}
		return r
	}

	r.Sections = append(r.Sections,
		Section{Title: "Summary", Table: summaryTable(stats)},
		Section{Title: "Weapons", Table: itemTable(stats.Items)},
		Section{Title: "Vehicles", Table: vehicleTable(stats.Vehicles)},
		banSection(ban),
		communitySection(community),
	)
	return r
}

func summaryTable(s *domain.RawStats) *Table {
	rank := "-"
	if s.Rank != nil {
		rank = strconv.Itoa(*s.Rank)
	}
	return &Table{
		Columns: summaryColumns,
		Rows: [][]string{{
			rank,
			strconv.Itoa(s.Kills),
			strconv.Itoa(s.Deaths),
			formatFloat(s.KillDeath),
			formatFloat(s.KillsPerMinute),
			formatFloat(s.ScorePerMinute),
			strconv.Itoa(s.Revives),
			HoursPlayed(*s.TimePlayedSeconds) + "h",
		}},
	}
}

// HoursPlayed converts seconds to hours rounded to one decimal.
func HoursPlayed(seconds float64) string {
	return strconv.FormatFloat(math.Round(seconds/3600*10)/10, 'f', 1, 64)
}

func itemTable(items []domain.ItemStat) *Table {
	t := &Table{Columns: itemColumns, Rows: [][]string{}}
	for _, it := range RankItems(items) {
		t.Rows = append(t.Rows, []string{
			it.Name,
			strconv.Itoa(it.Kills),
			orZero(it.KillsPerMinute),
			orZero(it.Headshots),
			orZero(it.Accuracy),
			orZero(it.KillEfficiency),
		})
	}
	return t
}

func vehicleTable(vehicles []domain.VehicleStat) *Table {
	t := &Table{Columns: vehicleColumns, Rows: [][]string{}}
	for _, v := range RankVehicles(vehicles) {
		t.Rows = append(t.Rows, []string{
			v.Name,
			strconv.Itoa(v.Kills),
			orZero(v.KillsPerMinute),
			orZero(v.Destroyed),
		})
	}
	return t
}

// RankItems drops items without kills and orders the rest by kills,
// descending. Ties keep their upstream order.
func RankItems(items []domain.ItemStat) []domain.ItemStat {
	return rankByKills(items, func(it domain.ItemStat) int { return it.Kills })
}

// RankVehicles applies the RankItems rule to vehicles.
func RankVehicles(vehicles []domain.VehicleStat) []domain.VehicleStat {
	return rankByKills(vehicles, func(v domain.VehicleStat) int { return v.Kills })
}

func rankByKills[T any](in []T, kills func(T) int) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if kills(v) > 0 {
			out = append(out, v)
		}
	}
	slices.SortStableFunc(out, func(a, b T) int {
		return cmp.Compare(kills(b), kills(a))
	})
	return out
}

func banSection(ban *domain.BanRecord) Section {
	var code *int
	if ban != nil {
		code = ban.StatusCode
	}
	c := status.ClassifyBan(code)
	return Section{
		Title: "BFBAN",
		Text:  &TextBlock{Lines: []string{c.Label}, Status: true, Severity: c.Severity},
	}
}

func communitySection(community *domain.CommunityStatus) Section {
	if community == nil {
		return Section{
			Title: "Community",
			Text:  &TextBlock{Lines: []string{LookupFailedMessage}, Status: true, Severity: status.Info},
		}
	}
	code := community.ReasonStatusCode
	c := status.ClassifyCommunity(&code)
	return Section{
		Title: "Community",
		Text:  &TextBlock{Lines: []string{c.Label}, Status: true, Severity: c.Severity},
	}
}

// BuildBanLog lists ban log entries in the order upstream returned them, with
// timestamps shown in loc.
func BuildBanLog(identity *domain.PlayerIdentity, entries []domain.BanLogEntry, loc *time.Location) *Report {
	r := &Report{
		Title: fmt.Sprintf("Ban history of %s", identity.CanonicalName),
	}

	if len(entries) == 0 {
		r.Sections = []Section{{Text: &TextBlock{Lines: []string{NoBanRecordsMessage}}}}
		return r
	}

	t := &Table{Columns: banLogColumns}
	for _, e := range entries {
		t.Rows = append(t.Rows, []string{FormatBanTime(e.CreatedAt, loc), e.ServerName, e.Reason})
	}
	r.Sections = []Section{{Title: "Ban log", Table: t}}
	return r
}

// BuildServerSearch lists servers in the order upstream returned them.
func BuildServerSearch(query string, servers []domain.ServerSummary) *Report {
	r := &Report{
		Title: fmt.Sprintf("Servers matching %q", query),
	}

	if len(servers) == 0 {
		r.Sections = []Section{{Text: &TextBlock{Lines: []string{NoServersMessage}}}}
		return r
	}

	t := &Table{Columns: serverColumns}
	for _, s := range servers {
		t.Rows = append(t.Rows, []string{
			s.Name,
			s.MapName,
			s.MapMode,
			fmt.Sprintf("%d/%d", s.CurrentSoldiers, s.MaxSoldiers),
			strconv.Itoa(s.QueueCount),
			s.ImageURL,
		})
	}
	r.Sections = []Section{{Title: "Servers", Table: t}}
	return r
}

const banTimeLayout = "2006-01-02 15:04:05"

// FormatBanTime converts an ISO-8601 UTC timestamp to "YYYY-MM-DD HH:MM:SS"
// in loc. Unparsable input is returned unchanged.
func FormatBanTime(iso string, loc *time.Location) string {
	ts, err := time.Parse(time.RFC3339Nano, iso)
	if err != nil {
		return iso
	}
	if loc == nil {
		loc = time.UTC
	}
	return ts.In(loc).Format(banTimeLayout)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
