// Package moderation censors banned words in message content before it is
// stored. Matching is leet-speak aware: patterns and content are normalized
// (lowercased, digit/symbol substitutions folded back, punctuation and
// spacing dropped) and matches are mapped back onto the original runes.
package moderation

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
)

// DefaultWords is the built-in ban list used when no word file is
// configured. Deployments aimed at classrooms swap in a larger list via
// CENSORED_WORDS_FILE.
var DefaultWords = []string{
	"idiot",
	"loser",
	"stupid",
	"dumb",
	"ugly",
	"shut up",
	"hate you",
	"noob",
}

// Sanitizer rewrites banned spans with the replacement rune.
type Sanitizer struct {
	matcher     *goahocorasick.Machine
	replacement rune
}

type textMapping struct {
	normalized []rune
	origIdx    []int
}

// NewSanitizer builds the Aho-Corasick automaton from the ban list. An empty
// list yields a pass-through sanitizer.
func NewSanitizer(words []string, replacement rune) (*Sanitizer, error) {
	if replacement == 0 {
		replacement = '*'
	}

	patterns := normalizePatterns(words)
	if len(patterns) == 0 {
		return &Sanitizer{replacement: replacement}, nil
	}

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, fmt.Errorf("failed to build moderation automaton: %w", err)
	}
	return &Sanitizer{matcher: m, replacement: replacement}, nil
}

// Sanitize replaces every banned span with the replacement rune while
// preserving the content's length.
func (s *Sanitizer) Sanitize(content string) string {
	if s.matcher == nil {
		return content
	}

	mapping := normalizeText(content)
	if len(mapping.normalized) == 0 {
		return content
	}

	spans := s.matcher.MultiPatternSearch(mapping.normalized, false)
	if len(spans) == 0 {
		return content
	}

	origRunes := []rune(content)
	for _, span := range spans {
		normStart := span.Pos
		normEnd := normStart + len(span.Word)
		if normStart < 0 || normEnd > len(mapping.origIdx) {
			continue
		}

		origStart := mapping.origIdx[normStart]
		origEnd := mapping.origIdx[normEnd-1] + 1
		for i := origStart; i < origEnd; i++ {
			origRunes[i] = s.replacement
		}
	}

	return string(origRunes)
}

// LoadWordsFile reads one pattern per line; blank lines and #-comments are
// skipped.
func LoadWordsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open words file: %w", err)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read words file: %w", err)
	}
	return words, nil
}

// normalizePatterns folds, sorts and dedupes the ban list; the trie builder
// wants ordered unique keys, and distinct spellings can collapse to one
// normalized form.
func normalizePatterns(words []string) [][]rune {
	seen := make(map[string]bool, len(words))
	patterns := make([][]rune, 0, len(words))
	for _, word := range words {
		norm := normalizeRunes([]rune(word))
		if len(norm) == 0 || seen[string(norm)] {
			continue
		}
		seen[string(norm)] = true
		patterns = append(patterns, norm)
	}
	sort.Slice(patterns, func(i, j int) bool {
		return string(patterns[i]) < string(patterns[j])
	})
	return patterns
}

// normalizeText transforms content into searchable form and records where
// each kept rune sits in the original.
func normalizeText(input string) textMapping {
	origRunes := []rune(input)
	norm := make([]rune, 0, len(origRunes))
	origIdx := make([]int, 0, len(origRunes))

	for i, r := range origRunes {
		clean := simplifyRune(r)
		if isNoise(clean) {
			continue
		}
		norm = append(norm, unicode.ToLower(clean))
		origIdx = append(origIdx, i)
	}
	return textMapping{normalized: norm, origIdx: origIdx}
}

func normalizeRunes(input []rune) []rune {
	out := make([]rune, 0, len(input))
	for _, r := range input {
		clean := simplifyRune(r)
		if isNoise(clean) {
			continue
		}
		out = append(out, unicode.ToLower(clean))
	}
	return out
}

// simplifyRune folds common leet-speak substitutions back to letters.
func simplifyRune(r rune) rune {
	switch r {
	case '4', '@':
		return 'a'
	case '3', '€':
		return 'e'
	case '1', '!', '|':
		return 'i'
	case '0':
		return 'o'
	case '5', '$':
		return 's'
	default:
		return r
	}
}

// isNoise identifies runes ignored during matching.
func isNoise(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r)
}
