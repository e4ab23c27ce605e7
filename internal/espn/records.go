package espn

import "strings"

// ParseWinLoss extracts a win/loss record from an ESPN stats array. The
// label vocabulary varies across sports and endpoints ("wins", "W", "w",
// "losses", ...), so matching is heuristic. Non-map entries and
// unparseable values degrade to zero; this never fails.
func ParseWinLoss(stats []interface{}) (wins, losses int) {
	for _, statInterface := range stats {
		stat, ok := statInterface.(map[string]interface{})
		if !ok {
			continue
		}

		name := strings.ToLower(fallbackString(
			extractString(stat, "name"),
			extractString(stat, "abbreviation"),
			extractString(stat, "type"),
		))
		value := coerceInt(stat["value"])

		switch {
		case isWinLabel(name):
			wins = value
		case isLossLabel(name):
			losses = value
		}
	}

	// Some payloads carry no recognizable labels at all. Recover
	// positionally: first entry is wins, second is losses.
	if wins == 0 && losses == 0 && len(stats) >= 2 {
		if first, ok := stats[0].(map[string]interface{}); ok {
			wins = coerceInt(first["value"])
		}
		if second, ok := stats[1].(map[string]interface{}); ok {
			losses = coerceInt(second["value"])
		}
	}

	return wins, losses
}

func isWinLabel(name string) bool {
	switch name {
	case "w", "win", "wins":
		return true
	}
	return name != "" && strings.Contains(name, "win") && !strings.Contains(name, "loss")
}

func isLossLabel(name string) bool {
	switch name {
	case "l", "loss", "losses":
		return true
	}
	return name != "" && strings.Contains(name, "loss")
}
