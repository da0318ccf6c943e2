// internal/service/transport/score.go

package transport

import (
	"math"

	"chezvous/internal/domain/transport"
)

// ConnectivityScore rates public-transit accessibility on a 0-5 scale from
// three terms: nearby-station count (max 2), distinct-line diversity (max 2),
// and average landmark travel time (max 1). The thresholds are fixed business
// rules. The summed half-point score is rounded half away from zero
// (math.Round) and clamped to 5.
func ConnectivityScore(stations []transport.Station, estimates []transport.LandmarkEstimate) int {
	score := 0.0

	switch {
	case len(stations) >= 5:
		score += 2
	case len(stations) >= 3:
		score += 1.5
	case len(stations) >= 1:
		score += 1
	}

	allLines := make(map[string]bool)
	for _, station := range stations {
		for _, line := range station.Lines {
			allLines[line] = true
		}
	}

	switch {
	case len(allLines) >= 5:
		score += 2
	case len(allLines) >= 3:
		score += 1.5
	case len(allLines) >= 1:
		score += 1
	}

	// Guard the empty case even though the landmark set is never empty in
	// practice.
	if len(estimates) > 0 {
		total := 0
		for _, estimate := range estimates {
			total += estimate.EstimatedMinutes
		}
		avgMinutes := float64(total) / float64(len(estimates))

		switch {
		case avgMinutes <= 15:
			score += 1
		case avgMinutes <= 25:
			score += 0.5
		}
	}

	rounded := int(math.Round(score))
	if rounded > 5 {
		return 5
	}
	return rounded
}

// HasLateNightService reports whether any station serves a line from the
// late-night reference set.
func HasLateNightService(stations []transport.Station, lateNightLines []string) bool {
	late := make(map[string]bool, len(lateNightLines))
	for _, line := range lateNightLines {
		late[line] = true
	}

	for _, station := range stations {
		for _, line := range station.Lines {
			if late[line] {
				return true
			}
		}
	}

	return false
}
