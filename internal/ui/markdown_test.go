package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ponymatrix/internal/prompt"
)

func TestHistoryMarkdown(t *testing.T) {
	recs := []prompt.Record{
		{Positive: "score_9, unicorn", Negative: "lowres", Metadata: "Twilight | anime"},
		{Positive: "group", Negative: "lowres", Metadata: "Mane Six | sketch"},
	}

	md := HistoryMarkdown(recs, 4)
	assert.Contains(t, md, "## 4. Twilight | anime\n")
	assert.Contains(t, md, "## 5. Mane Six | sketch\n")
	assert.Contains(t, md, "```\nscore_9, unicorn\n```")
}

func TestRenderHistory(t *testing.T) {
	r, err := NewMarkdownRenderer(LightTheme(), 80)
	require.NoError(t, err)

	out, err := RenderHistory(r, []prompt.Record{{Positive: "score_9", Negative: "lowres", Metadata: "Twilight"}}, 1)
	require.NoError(t, err)
	plain := stripANSI(out)
	assert.Contains(t, plain, "Twilight")
	assert.Contains(t, plain, "score_9")

	empty, err := RenderHistory(r, nil, 1)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
