package service

import (
	"errors"

	"bfv-tracker/internal/report"
)

var (
	ErrEmptyQuery              = errors.New("empty query")
	ErrPlayerNotFound          = errors.New("player not found")
	ErrStatsUnavailable        = errors.New("stats unavailable")
	ErrNoCompletedMatch        = errors.New("player has no completed match")
	ErrBanLogUnavailable       = errors.New("ban log unavailable")
	ErrServerSearchUnavailable = errors.New("server search unavailable")
)

// UserMessage maps a terminal error to the short fixed text shown to users.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrEmptyQuery):
		return "please provide a player or server name"
	case errors.Is(err, ErrPlayerNotFound):
		return "player not found"
	case errors.Is(err, ErrStatsUnavailable):
		return "information retrieval failed"
	case errors.Is(err, ErrNoCompletedMatch):
		return report.NoCompletedMatchMessage
	case errors.Is(err, ErrBanLogUnavailable):
		return "ban log lookup failed, please try again later"
	case errors.Is(err, ErrServerSearchUnavailable):
		return "server search failed"
	default:
		return "request failed"
	}
}
