package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/license-plate-game/config"
)

func TestText(t *testing.T) {
	tests := []struct {
		name        string
		letters     string
		constraints config.MatchConstraints
		want        string
	}{
		{"permissive", "glw", config.MatchConstraints{}, "^[a-zA-Z]*[gG][a-zA-Z]*[lL][a-zA-Z]*[wW][a-zA-Z]*$"},
		{"no start", "ABC", config.MatchConstraints{NoStart: true}, "^[a-zA-Z]+[aA][a-zA-Z]*[bB][a-zA-Z]*[cC][a-zA-Z]*$"},
		{"no end", "abc", config.MatchConstraints{NoEnd: true}, "^[a-zA-Z]*[aA][a-zA-Z]*[bB][a-zA-Z]*[cC][a-zA-Z]+$"},
		{"space between", "abc", config.MatchConstraints{SpaceBetween: true}, "^[a-zA-Z]*[aA][a-zA-Z]+[bB][a-zA-Z]+[cC][a-zA-Z]*$"},
		{
			"all constraints",
			"aqs",
			config.MatchConstraints{NoStart: true, NoEnd: true, SpaceBetween: true},
			"^[a-zA-Z]+[aA][a-zA-Z]+[qQ][a-zA-Z]+[sS][a-zA-Z]+$",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.letters, tt.constraints))
		})
	}
}

func TestBuild_Matches(t *testing.T) {
	tests := []struct {
		name        string
		letters     string
		constraints config.MatchConstraints
		accept      []string
		reject      []string
	}{
		{
			name:    "letters in order anywhere",
			letters: "ABC",
			accept:  []string{"XABCY", "ABC", "AABBCC", "abc", "xaxbxcx", "CABC"},
			reject:  []string{"ACB", "AB", "BCA", "XYZ", "", "AB-C", "A BC"},
		},
		{
			name:        "no start rejects a leading first letter",
			letters:     "ABC",
			constraints: config.MatchConstraints{NoStart: true},
			accept:      []string{"XABCD", "AABC", "XABC"},
			reject:      []string{"ABCD", "ABC"},
		},
		{
			name:        "space between rejects adjacent letters",
			letters:     "AB",
			constraints: config.MatchConstraints{SpaceBetween: true},
			accept:      []string{"AXB", "ABXB", "ABAB", "AXBY"},
			reject:      []string{"AB", "XAB", "ABY"},
		},
		{
			name:        "no end rejects a trailing last letter",
			letters:     "AB",
			constraints: config.MatchConstraints{NoEnd: true},
			accept:      []string{"XABY", "ABB", "ABY"},
			reject:      []string{"XAB", "AB"},
		},
		{
			name:        "all constraints",
			letters:     "ABC",
			constraints: config.MatchConstraints{NoStart: true, NoEnd: true, SpaceBetween: true},
			accept:      []string{"XAYBZCW", "AXAYBZCWC"},
			reject:      []string{"XABZCW", "AXBXCX", "XAXBXC"},
		},
		{
			name:    "non-ASCII case variants are not letters",
			letters: "glw",
			accept:  []string{"GLOW", "glow", "gLoW"},
			reject:  []string{"\u017fglow", "glow\u212a", "GL\u00d6W"},
		},
		{
			name:    "s and k only fold to their ASCII pairs",
			letters: "ask",
			accept:  []string{"ASK", "aSk", "TASKS"},
			reject:  []string{"a\u017f\u212a", "a\u017fk", "as\u212a"},
		},
		{
			name:    "license plate example",
			letters: "aqs",
			accept:  []string{"ANTIQUES", "VANQUISHES", "aqs"},
			reject:  []string{"QUEASY", "SQUAD"},
		},
		{
			name:        "last letter may repeat when no end is set",
			letters:     "aqs",
			constraints: config.MatchConstraints{NoEnd: true},
			accept:      []string{"VANQUISHES"},
			reject:      []string{"ANTIQUES"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := Build(tt.letters, tt.constraints)
			require.NoError(t, err)

			for _, word := range tt.accept {
				assert.True(t, rule.Matches(word), "rule %s should accept %q", rule, word)
			}
			for _, word := range tt.reject {
				assert.False(t, rule.Matches(word), "rule %s should reject %q", rule, word)
			}
		})
	}
}

func TestBuild_RepeatedLetters(t *testing.T) {
	rule, err := Build("AA", config.MatchConstraints{})
	require.NoError(t, err)
	assert.True(t, rule.Matches("AA"))
	assert.True(t, rule.Matches("BANANA"))
	assert.False(t, rule.Matches("CAT"), "each repeated letter is its own anchor")

	spaced, err := Build("AA", config.MatchConstraints{SpaceBetween: true})
	require.NoError(t, err)
	assert.False(t, spaced.Matches("AA"))
	assert.False(t, spaced.Matches("BAA"))
	assert.True(t, spaced.Matches("ABA"))
	assert.True(t, spaced.Matches("AAXA"), "a non-adjacent pair of anchors can still be found")
}

func TestBuild_IsDeterministic(t *testing.T) {
	words := []string{"GLOW", "HELLO", "GALLOW", "WGL", "glowworm", "GLW", "AGLWA"}
	constraintSets := []config.MatchConstraints{
		{},
		{NoStart: true},
		{NoEnd: true},
		{SpaceBetween: true},
		{NoStart: true, NoEnd: true, SpaceBetween: true},
	}

	for _, c := range constraintSets {
		first, err := Build("glw", c)
		require.NoError(t, err)
		second, err := Build("glw", c)
		require.NoError(t, err)

		assert.Equal(t, first.String(), second.String())
		for _, word := range words {
			assert.Equal(t, first.Matches(word), second.Matches(word), "word %q under %+v", word, c)
		}
	}
}

func TestBuild_Accessors(t *testing.T) {
	c := config.MatchConstraints{NoEnd: true}
	rule, err := Build("hvl", c)
	require.NoError(t, err)

	assert.Equal(t, "HVL", rule.Letters())
	assert.Equal(t, c, rule.Constraints())
	assert.Equal(t, Text("hvl", c), rule.String())
	assert.True(t, rule.Matches("chivalry"))
}

func TestBuild_InvalidLetters(t *testing.T) {
	for _, letters := range []string{"", "a1c", "a.c", "a*", "(ab)"} {
		_, err := Build(letters, config.MatchConstraints{})
		assert.Error(t, err, "Build(%q) should fail", letters)
	}
}
