package parsers

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/instant-idea-buddy/server/internal/idea/model"
	"github.com/stretchr/testify/assert"
)

func TestParseIdea(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    model.Idea
	}{
		{
			name:    "both lines",
			content: "Idea: Go hiking\nEncouragement: You'll love the fresh air!",
			want:    model.Idea{Idea: "Go hiking", Encouragement: "You'll love the fresh air!"},
		},
		{
			name:    "surrounding whitespace is trimmed",
			content: "Idea:    Bake bread   \nEncouragement:  Flour power!  \n",
			want:    model.Idea{Idea: "Bake bread", Encouragement: "Flour power!"},
		},
		{
			name:    "case insensitive",
			content: "IDEA: Paint a mural\nencouragement: Colour the world",
			want:    model.Idea{Idea: "Paint a mural", Encouragement: "Colour the world"},
		},
		{
			name:    "idea without encouragement",
			content: "Here you go.\nIdea: Start a journal",
			want:    model.Idea{Idea: "Start a journal"},
		},
		{
			name:    "encouragement without idea",
			content: "Encouragement: You can do it",
			want:    model.Idea{Idea: FallbackIdea, Encouragement: "You can do it"},
		},
		{
			name:    "neither pattern",
			content: "I am not sure what to suggest.",
			want:    model.Idea{Idea: FallbackIdea},
		},
		{
			name:    "empty content",
			content: "",
			want:    model.Idea{Idea: FallbackIdea},
		},
		{
			name:    "first match wins",
			content: "Idea: first\nIdea: second\nEncouragement: one\nEncouragement: two",
			want:    model.Idea{Idea: "first", Encouragement: "one"},
		},
		{
			name:    "windows line endings",
			content: "Idea: Visit a museum\r\nEncouragement: Culture awaits\r\n",
			want:    model.Idea{Idea: "Visit a museum", Encouragement: "Culture awaits"},
		},
		{
			name:    "both on one line",
			content: "Idea: Learn chess and Encouragement: Checkmate!",
			want:    model.Idea{Idea: "Learn chess and Encouragement: Checkmate!", Encouragement: "Checkmate!"},
		},
		{
			name:    "markdown bold prefix still matches",
			content: "**Idea: Plant herbs**\n**Encouragement: Grow for it**",
			want:    model.Idea{Idea: "Plant herbs**", Encouragement: "Grow for it**"},
		},
		{
			name:    "label without space does not match",
			content: "Idea:Cook pasta",
			want:    model.Idea{Idea: FallbackIdea},
		},
		{
			name:    "empty idea line is kept empty",
			content: "Idea: \nEncouragement: Keep going",
			want:    model.Idea{Idea: "", Encouragement: "Keep going"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseIdea(tt.content))
		})
	}
}

func TestParseIdea_TruncatesOversizedContent(t *testing.T) {
	content := strings.Repeat("x", maxContentLen) + "\nIdea: hidden"
	assert.Equal(t, FallbackIdea, ParseIdea(content).Idea)
}

func TestParseIdea_TruncationKeepsRunesWhole(t *testing.T) {
	body := strings.Repeat("x", maxContentLen-1-len("Idea: "))
	content := "Idea: " + body + "é and more"

	got := ParseIdea(content)
	assert.True(t, utf8.ValidString(got.Idea))
	assert.Equal(t, body, got.Idea)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abc", 2))
	assert.Equal(t, "a", truncate("aé", 2))
	assert.Equal(t, "aé", truncate("aé", 3))
}
