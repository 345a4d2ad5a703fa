package audit

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/use-agent/sitelens/models"
)

// tokenRe matches word-like tokens of at least 2 characters. Han
// characters are included explicitly so CJK text tokenizes without
// relying on ASCII word boundaries.
var tokenRe = regexp.MustCompile(`[\p{Han}\w]{2,}`)

var spaceRe = regexp.MustCompile(`\s+`)

// keywordDensity tokenizes the page text, counts token frequencies and
// returns the topN tokens with their density as a 2-decimal percentage
// of all tokens. Ties are broken alphabetically for determinism.
func keywordDensity(text string, topN int) []models.KeywordDensity {
	tokens := tokenRe.FindAllString(spaceRe.ReplaceAllString(text, " "), -1)
	if len(tokens) == 0 {
		return []models.KeywordDensity{}
	}

	freq := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		freq[tok]++
	}

	words := make([]string, 0, len(freq))
	for w := range freq {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if freq[words[i]] != freq[words[j]] {
			return freq[words[i]] > freq[words[j]]
		}
		return words[i] < words[j]
	})

	if len(words) > topN {
		words = words[:topN]
	}

	total := len(tokens)
	out := make([]models.KeywordDensity, 0, len(words))
	for _, w := range words {
		out = append(out, models.KeywordDensity{
			Word:    w,
			Count:   freq[w],
			Density: fmt.Sprintf("%.2f%%", float64(freq[w])/float64(total)*100),
		})
	}
	return out
}
