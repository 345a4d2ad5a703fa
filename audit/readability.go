package audit

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/use-agent/sitelens/models"
)

var (
	paragraphRe = regexp.MustCompile(`\n+`)
	// Sentence-terminal punctuation, Latin and CJK.
	sentenceRe = regexp.MustCompile(`[。！？.!?]`)
)

// analyzeReadability scores the page's visible text with a fixed
// heuristic. Starting from 100, it subtracts 20 for each of: average
// sentence length over 40 characters, fewer than 3 paragraph-like
// blocks, and total text shorter than 200 characters. Below 60 is a
// warning, below 40 an error.
func analyzeReadability(text string) models.ReadabilityCheck {
	paragraphs := 0
	for _, block := range paragraphRe.Split(text, -1) {
		if strings.TrimSpace(block) != "" {
			paragraphs++
		}
	}

	flat := strings.TrimSpace(spaceRe.ReplaceAllString(text, " "))
	totalLen := utf8.RuneCountInString(flat)

	sentences := 0
	for _, s := range sentenceRe.Split(flat, -1) {
		if strings.TrimSpace(s) != "" {
			sentences++
		}
	}

	avgSentenceLen := 0.0
	if sentences > 0 {
		avgSentenceLen = float64(totalLen) / float64(sentences)
	}

	score := 100
	if avgSentenceLen > 40 {
		score -= 20
	}
	if paragraphs < 3 {
		score -= 20
	}
	if totalLen < 200 {
		score -= 20
	}

	switch {
	case score < 40:
		return models.ReadabilityCheck{
			Status:  models.StatusError,
			Score:   score,
			Message: "Page readability is poor; add richer content and more paragraphs.",
		}
	case score < 60:
		return models.ReadabilityCheck{
			Status:  models.StatusWarning,
			Score:   score,
			Message: "Page readability is fair; improve paragraph and sentence structure.",
		}
	default:
		return models.ReadabilityCheck{
			Status:  models.StatusPass,
			Score:   score,
			Message: "Page readability is good.",
		}
	}
}
