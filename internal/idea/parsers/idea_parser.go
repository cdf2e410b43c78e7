package parsers

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/instant-idea-buddy/server/internal/idea/model"
	logx "github.com/instant-idea-buddy/server/pkg/logger"
)

// FallbackIdea is shown when the model output has no "Idea:" line.
const FallbackIdea = "No clear idea generated."

// maxContentLen bounds how much model output is scanned.
const maxContentLen = 64 * 1024

// Each pattern takes the first case-insensitive occurrence and captures the
// rest of that line. The two are matched independently of each other.
var (
	ideaPattern          = regexp.MustCompile(`(?i)Idea: ([^\r\n]*)`)
	encouragementPattern = regexp.MustCompile(`(?i)Encouragement: ([^\r\n]*)`)
)

// ParseIdea extracts the idea and encouragement from free model output.
// A missing idea becomes FallbackIdea; a missing encouragement stays empty.
func ParseIdea(content string) model.Idea {
	if len(content) > maxContentLen {
		logx.Warn().
			Str("component", "idea_parser").
			Int("max_len", maxContentLen).
			Int("orig_len", len(content)).
			Msg("content truncated due to size limit")
		content = truncate(content, maxContentLen)
	}

	out := model.Idea{Idea: FallbackIdea}
	if m := ideaPattern.FindStringSubmatch(content); m != nil {
		out.Idea = strings.TrimSpace(m[1])
	}
	if m := encouragementPattern.FindStringSubmatch(content); m != nil {
		out.Encouragement = strings.TrimSpace(m[1])
	}
	return out
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
