package commands

import (
	"osucard-backend/lib/scrapers/osu"
	"osucard-backend/lib/textutil"
	"strings"

	"github.com/antzucaro/matchr"
)

const suggestionThreshold = 0.75

// suggestPlaymode finds the playmode key closest to a mistyped one, both
// keys (mania) and server names (CatchTheBeat) are matched against.
func suggestPlaymode(input string) (osu.Playmode, bool) {
	normalized := textutil.NormalizeName(input)
	if normalized == "" {
		return "", false
	}

	var best osu.Playmode
	var bestSimilarity float64
	for _, mode := range osu.Playmodes() {
		candidates := []string{string(mode), strings.ToLower(mode.ServerName())}
		for _, candidate := range candidates {
			similarity := matchr.JaroWinkler(normalized, candidate, false)
			if similarity > bestSimilarity {
				bestSimilarity = similarity
				best = mode
			}
		}
	}

	if bestSimilarity < suggestionThreshold {
		return "", false
	}
	return best, true
}
