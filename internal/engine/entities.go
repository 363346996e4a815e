package engine

import "regexp"

var (
	mentionPattern = regexp.MustCompile(`@([a-zA-Z0-9_]+)`)
	hashtagPattern = regexp.MustCompile(`#([a-zA-Z0-9_]+)`)
)

// Entities holds the mention handles and hashtags scanned from tweet text.
// Each set preserves first-occurrence order and contains no duplicates.
type Entities struct {
	Mentions []string
	Hashtags []string
}

// ExtractEntities scans text for @mentions and #hashtags. The boundary layer
// uses this to derive the explicit sets passed to InsertTweet; whether a
// mention resolves to a registered user is decided there, not here.
func ExtractEntities(text string) Entities {
	return Entities{
		Mentions: scan(mentionPattern, text),
		Hashtags: scan(hashtagPattern, text),
	}
}

func scan(re *regexp.Regexp, text string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, match := range re.FindAllStringSubmatch(text, -1) {
		tag := match[1]
		if seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}
