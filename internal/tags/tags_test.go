package tags

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  List
	}{
		{name: "three tags", input: "a|b|c", want: List{"a", "b", "c"}},
		{name: "empty field", input: "", want: List{}},
		{name: "single tag", input: "unicorn", want: List{"unicorn"}},
		{name: "whitespace preserved", input: " horn | wings", want: List{" horn ", " wings"}},
		{name: "empty segments kept", input: "a||b|", want: List{"a", "", "b", ""}},
		{name: "case untouched", input: "Purple|purple", want: List{"Purple", "purple"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Parse(tt.input)); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParseField(t *testing.T) {
	fields := map[string]string{"tags": "horn|magic aura", "nsfw_tags": ""}
	lookup := func(name string) (string, bool) {
		v, ok := fields[name]
		return v, ok
	}

	assert.Equal(t, List{"horn", "magic aura"}, ParseField(lookup, "tags"))
	assert.Empty(t, ParseField(lookup, "nsfw_tags"))
	assert.Empty(t, ParseField(lookup, "absent"))
}

func TestList_JoinAndClone(t *testing.T) {
	l := List{"score_9", "unicorn", "unicorn"}
	assert.Equal(t, "score_9, unicorn, unicorn", l.Join())
	assert.Equal(t, 2, l.Count("unicorn"))

	c := l.Clone()
	c[0] = "changed"
	assert.Equal(t, "score_9", l[0])
	assert.Equal(t, "", List{}.Join())
}
