package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractEntities(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		mentions []string
		hashtags []string
	}{
		{
			name:     "plain text",
			text:     "nothing to see here",
			mentions: nil,
			hashtags: nil,
		},
		{
			name:     "single mention and hashtag",
			text:     "hello @bob #x",
			mentions: []string{"bob"},
			hashtags: []string{"x"},
		},
		{
			name:     "duplicates collapsed",
			text:     "@bob @bob #go #go",
			mentions: []string{"bob"},
			hashtags: []string{"go"},
		},
		{
			name:     "multiple in order",
			text:     "cc @alice @bob about #release and #golang",
			mentions: []string{"alice", "bob"},
			hashtags: []string{"release", "golang"},
		},
		{
			name:     "punctuation terminates tokens",
			text:     "thanks @carol, loved #demo!",
			mentions: []string{"carol"},
			hashtags: []string{"demo"},
		},
		{
			name:     "underscores and digits allowed",
			text:     "@user_1 shipped #v2_0",
			mentions: []string{"user_1"},
			hashtags: []string{"v2_0"},
		},
		{
			name:     "bare symbols ignored",
			text:     "lonely @ and # signs",
			mentions: nil,
			hashtags: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractEntities(tt.text)
			assert.Equal(t, tt.mentions, got.Mentions)
			assert.Equal(t, tt.hashtags, got.Hashtags)
		})
	}
}
