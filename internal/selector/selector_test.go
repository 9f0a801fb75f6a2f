package selector

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ponymatrix/internal/table"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		answer string
		count  int
		want   Decision
	}{
		{"0", 3, Decision{Outcome: Random}},
		{" 0 ", 3, Decision{Outcome: Random}},
		{"1", 3, Decision{Outcome: Explicit, Index: 0}},
		{"3\n", 3, Decision{Outcome: Explicit, Index: 2}},
		{"+2", 3, Decision{Outcome: Explicit, Index: 1}},
		{"4", 3, Decision{Outcome: Invalid}},
		{"-1", 3, Decision{Outcome: Invalid}},
		{"", 3, Decision{Outcome: Invalid}},
		{"two", 3, Decision{Outcome: Invalid}},
		{"1.5", 3, Decision{Outcome: Invalid}},
	}

	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.answer, tt.count))
		})
	}
}

// fixedSource always returns the same index.
type fixedSource int

func (f fixedSource) IntN(n int) int { return int(f) % n }

func TestResolve(t *testing.T) {
	assert.Equal(t, 1, Resolve(Decision{Outcome: Explicit, Index: 1}, 3, fixedSource(2)))
	assert.Equal(t, 2, Resolve(Decision{Outcome: Random}, 3, fixedSource(2)))
	assert.Equal(t, 2, Resolve(Decision{Outcome: Invalid}, 3, fixedSource(2)))
}

func TestResolve_RandomCoversAllCandidates(t *testing.T) {
	src, _, err := NewSource(1234)
	require.NoError(t, err)

	const count = 5
	seen := make(map[int]int)
	for i := 0; i < 2000; i++ {
		idx := Resolve(Decision{Outcome: Random}, count, src)
		require.GreaterOrEqual(t, idx, 0)
		require.Less(t, idx, count)
		seen[idx]++
	}
	assert.Len(t, seen, count)
	for idx, hits := range seen {
		// Expected 400 per bucket; a wide band keeps the test stable.
		assert.Greater(t, hits, 250, "index %d", idx)
	}
}

func TestNewSource_Deterministic(t *testing.T) {
	a, seedA, err := NewSource(99)
	require.NoError(t, err)
	b, seedB, err := NewSource(99)
	require.NoError(t, err)
	assert.Equal(t, int64(99), seedA)
	assert.Equal(t, seedA, seedB)

	for i := 0; i < 20; i++ {
		assert.Equal(t, a.IntN(1000), b.IntN(1000))
	}

	_, fresh, err := NewSource(0)
	require.NoError(t, err)
	assert.NotZero(t, fresh)
}

type scriptedMenu struct {
	answers  []string
	labels   []string
	options  [][]string
	warnings []string
}

func (m *scriptedMenu) Menu(label string, options []string) (string, error) {
	m.labels = append(m.labels, label)
	m.options = append(m.options, options)
	if len(m.answers) == 0 {
		return "", errors.New("no more answers")
	}
	a := m.answers[0]
	m.answers = m.answers[1:]
	return a, nil
}

func (m *scriptedMenu) Warn(msg string) { m.warnings = append(m.warnings, msg) }

func styles(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.Parse("styles", strings.NewReader("name,tags\nanime,cel shading\nsketch,lineart\nwatercolor,soft\n"))
	require.NoError(t, err)
	return tbl
}

func TestSelector_Select(t *testing.T) {
	tbl := styles(t)

	t.Run("explicit", func(t *testing.T) {
		menu := &scriptedMenu{answers: []string{"2"}}
		got, err := New(menu, fixedSource(0)).Select("Style", tbl)
		require.NoError(t, err)
		assert.Equal(t, "sketch", got.Name())
		assert.Empty(t, menu.warnings)
		assert.Equal(t, []string{"Style"}, menu.labels)
		assert.Equal(t, []string{"anime", "sketch", "watercolor"}, menu.options[0])
	})

	t.Run("zero is random without warning", func(t *testing.T) {
		menu := &scriptedMenu{answers: []string{"0"}}
		got, err := New(menu, fixedSource(2)).Select("Style", tbl)
		require.NoError(t, err)
		assert.Equal(t, "watercolor", got.Name())
		assert.Empty(t, menu.warnings)
	})

	t.Run("invalid falls back with warning", func(t *testing.T) {
		for _, answer := range []string{"9", "abc", ""} {
			menu := &scriptedMenu{answers: []string{answer}}
			got, err := New(menu, fixedSource(1)).Select("Style", tbl)
			require.NoError(t, err)
			assert.Equal(t, "sketch", got.Name())
			assert.Equal(t, []string{InvalidInputWarning}, menu.warnings)
		}
	})

	t.Run("menu error propagates", func(t *testing.T) {
		_, err := New(&scriptedMenu{}, fixedSource(0)).Select("Style", tbl)
		assert.Error(t, err)
	})

	t.Run("empty table", func(t *testing.T) {
		_, err := New(&scriptedMenu{answers: []string{"1"}}, fixedSource(0)).Select("Theme", &table.Table{Name: "themes"})
		var empty *table.EmptyTableError
		assert.True(t, errors.As(err, &empty))
	})
}
