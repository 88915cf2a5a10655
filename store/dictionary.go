// Package store holds the in-memory word list a solver scans.
package store

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/gcbaptista/license-plate-game/internal/errors"
)

// maxTokenSize bounds a single dictionary token; real words are far shorter.
const maxTokenSize = 1024 * 1024

// Dictionary is an immutable, ordered snapshot of a word list. Order and duplicates
// are preserved exactly as read, since result order follows dictionary order.
// A Dictionary is never mutated after construction, so it can be shared by readers.
type Dictionary struct {
	source string
	words  []string
}

// NewDictionary wraps words read from source. The slice is copied.
func NewDictionary(source string, words []string) *Dictionary {
	owned := make([]string, len(words))
	copy(owned, words)
	return &Dictionary{source: source, words: owned}
}

// EmptyDictionary returns a dictionary with no words for source.
func EmptyDictionary(source string) *Dictionary {
	return &Dictionary{source: source, words: []string{}}
}

// LoadDictionary reads whitespace-separated tokens from the file at path.
// On failure it returns an empty dictionary together with a *errors.DictionaryLoadError,
// so callers can carry on with no words.
func LoadDictionary(path string) (*Dictionary, error) {
	file, err := os.Open(path) // #nosec G304 -- dictionary path is operator configuration
	if err != nil {
		return EmptyDictionary(path), errors.NewDictionaryLoadError(path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	words, err := ReadWords(file)
	if err != nil {
		return EmptyDictionary(path), errors.NewDictionaryLoadError(path, err)
	}
	return &Dictionary{source: path, words: words}, nil
}

// ReadWords splits r into whitespace-separated tokens, one word per token, in order.
func ReadWords(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxTokenSize)
	scanner.Split(bufio.ScanWords)

	words := make([]string, 0, 1024)
	for scanner.Scan() {
		words = append(words, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read words: %w", err)
	}
	return words, nil
}

// Source returns the path the dictionary was loaded from.
func (d *Dictionary) Source() string {
	return d.source
}

// Len returns the number of words.
func (d *Dictionary) Len() int {
	return len(d.words)
}

// Words returns a copy of the words in dictionary order.
func (d *Dictionary) Words() []string {
	out := make([]string, len(d.words))
	copy(out, d.words)
	return out
}

// Each calls fn for every word in order. fn must not retain the index for mutation.
func (d *Dictionary) Each(fn func(i int, word string)) {
	for i, w := range d.words {
		fn(i, w)
	}
}
