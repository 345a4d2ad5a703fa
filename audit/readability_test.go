package audit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/use-agent/sitelens/models"
)

// richText builds n paragraphs of short sentences, long enough to clear
// every deduction.
func richText(paragraphs int) string {
	sentence := "This is a short sentence about the page."
	para := strings.Repeat(sentence+" ", 3)
	blocks := make([]string, paragraphs)
	for i := range blocks {
		blocks[i] = para
	}
	return strings.Join(blocks, "\n\n")
}

func TestAnalyzeReadability_GoodContent(t *testing.T) {
	check := analyzeReadability(richText(4))

	assert.Equal(t, 100, check.Score)
	assert.Equal(t, models.StatusPass, check.Status)
	assert.Equal(t, "Page readability is good.", check.Message)
}

func TestAnalyzeReadability_ShortTextBoundary(t *testing.T) {
	// Three paragraphs of short sentences, sized to land exactly at and
	// just under the 200-character threshold after whitespace collapsing.
	base := "Aaaa bbbb cccc dddd. Eeee ffff gggg hhhh. Iiii jjjj kkkk llll."
	at200 := base + "\n" + base + "\n" + base + strings.Repeat("m", 200-3*len(base)-2)
	under200 := base + "\n" + base + "\n" + base + strings.Repeat("m", 200-3*len(base)-3)

	assert.Equal(t, 100, analyzeReadability(at200).Score)
	assert.Equal(t, 80, analyzeReadability(under200).Score)
	assert.Equal(t, models.StatusPass, analyzeReadability(under200).Status)
}

func TestAnalyzeReadability_LongSentences(t *testing.T) {
	// One run-on sentence per paragraph, each far over 40 characters.
	para := strings.Repeat("word ", 30) + "end."
	check := analyzeReadability(para + "\n" + para + "\n" + para)

	assert.Equal(t, 80, check.Score)
	assert.Equal(t, models.StatusPass, check.Status)
}

func TestAnalyzeReadability_WorstCase(t *testing.T) {
	// Short, single-block, run-on text trips all three deductions. The
	// floor is 40, which still classifies as a warning.
	check := analyzeReadability(strings.Repeat("a", 60))

	assert.Equal(t, 40, check.Score)
	assert.Equal(t, models.StatusWarning, check.Status)
}

func TestAnalyzeReadability_CJKSentences(t *testing.T) {
	para := "这是一个简短的句子。这是另一个句子。这是第三个句子。"
	check := analyzeReadability(para + "\n" + para + "\n" + para + "\n" + strings.Repeat(para, 5))

	assert.Equal(t, models.StatusPass, check.Status)
	assert.Equal(t, 100, check.Score)
}

func TestAnalyzeReadability_Empty(t *testing.T) {
	check := analyzeReadability("")

	// No paragraphs and no text cost 40 points.
	assert.Equal(t, 60, check.Score)
	assert.Equal(t, models.StatusPass, check.Status)
}
