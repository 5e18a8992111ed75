// Package status turns the small integer codes reported by the ban site and
// by the community anti-cheat robot into labels with a severity.
//
// The two vocabularies overlap numerically but mean different things, so each
// has its own classifier.
package status

import "fmt"

type Severity int

const (
	Info Severity = iota
	Warning
	Critical
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	case Critical:
		return "critical"
	default:
		return "info"
	}
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(b []byte) error {
	switch string(b) {
	case "info":
		*s = Info
	case "warning":
		*s = Warning
	case "critical":
		*s = Critical
	default:
		return fmt.Errorf("status: unknown severity %q", b)
	}
	return nil
}

// Color is the colour the renderer paints the label in.
func (s Severity) Color() string {
	switch s {
	case Warning:
		return "Yellow"
	case Critical:
		return "Red"
	default:
		return "Green"
	}
}

type Classification struct {
	Label    string
	Severity Severity
}

var (
	NoRecord = Classification{Label: "no record", Severity: Info}
	Unknown  = Classification{Label: "unknown", Severity: Info}
)

var banSiteCodes = map[int]Classification{
	0: {"unprocessed", Warning},
	1: {"confirmed cheater", Critical},
	2: {"awaiting self-proof", Warning},
	3: {"cleared by MOSS self-proof", Info},
	4: {"invalid report", Info},
	5: {"under discussion", Info},
	6: {"awaiting confirmation", Info},
	7: {"empty", Info},
	8: {"weapon farming", Info},
	9: {"under appeal", Info},
}

var communityCodes = map[int]Classification{
	0:  {"data normal", Info},
	1:  {"insufficient evidence (invalid report)", Info},
	2:  {"abnormal weapon data", Critical},
	3:  {"global blacklist (player reports)", Critical},
	4:  {"global whitelist (weapon farming or other self-proof)", Info},
	5:  {"global whitelist (MOSS self-proof)", Info},
	6:  {"currently normal (past abnormal weapon data)", Warning},
	7:  {"global blacklist (added by server owner)", Critical},
	8:  {"permanent global blacklist (wall of shame)", Critical},
	9:  {"permanent global blacklist (illegal or political conduct)", Critical},
	10: {"global blacklist (added by review team)", Critical},
	11: {"global blacklist (unwelcome player)", Critical},
	12: {"global blacklist (automatic anti-cheat)", Critical},
}

// ClassifyBan classifies a ban-site status code. A nil code means the player
// has no record on the ban site.
func ClassifyBan(code *int) Classification {
	return classify(banSiteCodes, code)
}

// ClassifyCommunity classifies a community reason status code.
func ClassifyCommunity(code *int) Classification {
	return classify(communityCodes, code)
}

func classify(table map[int]Classification, code *int) Classification {
	if code == nil {
		return NoRecord
	}
	if c, ok := table[*code]; ok {
		return c
	}
	return Unknown
}
