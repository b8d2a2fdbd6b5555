package analysis

import (
	"math"
	"regexp"
	"strings"
)

// TextStatistics summarizes the shape of the extracted text.
type TextStatistics struct {
	Characters          int     `json:"characters"`
	Words               int     `json:"words"`
	Lines               int     `json:"lines"`
	Sentences           int     `json:"sentences"`
	Paragraphs          int     `json:"paragraphs"`
	AvgWordsPerSentence float64 `json:"avg_words_per_sentence"`
}

var (
	sentenceEndRe  = regexp.MustCompile(`[.!?]+`)
	paragraphSepRe = regexp.MustCompile(`\n\s*\n`)
)

// ComputeStatistics counts characters, words, lines, sentences, and
// paragraphs. Sentence and paragraph counts are approximations.
func ComputeStatistics(text string) TextStatistics {
	stats := TextStatistics{
		Characters: len([]rune(text)),
		Words:      len(strings.Fields(text)),
		Lines:      len(strings.Split(text, "\n")),
	}

	for _, s := range sentenceEndRe.Split(text, -1) {
		if strings.TrimSpace(s) != "" {
			stats.Sentences++
		}
	}
	for _, p := range paragraphSepRe.Split(text, -1) {
		if strings.TrimSpace(p) != "" {
			stats.Paragraphs++
		}
	}
	if stats.Sentences > 0 {
		avg := float64(stats.Words) / float64(stats.Sentences)
		stats.AvgWordsPerSentence = math.Round(avg*10) / 10
	}
	return stats
}
