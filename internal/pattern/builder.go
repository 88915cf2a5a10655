// Package pattern turns a letter query and its match constraints into a Rule that
// tests whole dictionary words.
//
// A rule for letters L1..Ln reads, left to right:
//
//	^ gap(NoStart) L1 gap(SpaceBetween) L2 ... gap(SpaceBetween) Ln gap(NoEnd) $
//
// where a gap is "[a-zA-Z]*" or, when its constraint is set, "[a-zA-Z]+", and each query
// letter is an upper/lower pair such as "[gG]". SpaceBetween only governs the gaps between
// consecutive query letters. Case folding is ASCII only and the rule is anchored at both
// ends, so a word containing anything other than A-Z letters never matches.
package pattern

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/gcbaptista/license-plate-game/config"
)

const (
	anyLetters  = "[a-zA-Z]*"
	someLetters = "[a-zA-Z]+"
)

// Rule is a compiled, immutable matching rule. It is safe for concurrent use.
type Rule struct {
	letters     string
	constraints config.MatchConstraints
	text        string
	re          *regexp.Regexp
}

// Text returns the textual pattern for letters under the given constraints without compiling it.
func Text(letters string, constraints config.MatchConstraints) string {
	gap := anyLetters
	if constraints.SpaceBetween {
		gap = someLetters
	}

	var b strings.Builder
	b.WriteString("^")
	if constraints.NoStart {
		b.WriteString(someLetters)
	} else {
		b.WriteString(anyLetters)
	}
	for i, r := range strings.ToLower(letters) {
		if i > 0 {
			b.WriteString(gap)
		}
		b.WriteString(letterClass(r))
	}
	if constraints.NoEnd {
		b.WriteString(someLetters)
	} else {
		b.WriteString(anyLetters)
	}
	b.WriteString("$")
	return b.String()
}

// letterClass matches r in either case. A "(?i)" flag would also fold non-ASCII
// runes such as U+017F and U+212A onto s and k.
func letterClass(r rune) string {
	return "[" + string(r) + string(unicode.ToUpper(r)) + "]"
}

// Build creates the rule for letters under constraints. Letters must be non-empty
// and A-Z only (either case); minimum query length is enforced by the solver, not here.
func Build(letters string, constraints config.MatchConstraints) (*Rule, error) {
	if letters == "" {
		return nil, fmt.Errorf("cannot build a rule from an empty letter sequence")
	}
	for _, r := range letters {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return nil, fmt.Errorf("cannot build a rule from %q: %q is not a letter", letters, r)
		}
	}

	text := Text(letters, constraints)
	re, err := regexp.Compile(text)
	if err != nil {
		return nil, fmt.Errorf("failed to compile rule %q: %w", text, err)
	}

	return &Rule{
		letters:     strings.ToUpper(letters),
		constraints: constraints,
		text:        text,
		re:          re,
	}, nil
}

// Matches reports whether the whole word satisfies the rule.
func (r *Rule) Matches(word string) bool {
	return r.re.MatchString(word)
}

// Letters returns the upper-cased letters the rule was built from.
func (r *Rule) Letters() string {
	return r.letters
}

// Constraints returns the constraints the rule was built with.
func (r *Rule) Constraints() config.MatchConstraints {
	return r.constraints
}

// String returns the textual pattern.
func (r *Rule) String() string {
	return r.text
}
