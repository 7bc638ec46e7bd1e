package utils

import (
	"strings"
	"unicode"
)

// CollectionName derives the default collection name of a model: the model
// name lower-cased and pluralized ("School" -> "schools").
func CollectionName(modelName string) string {
	return Pluralize(modelName)
}

// Pluralize lower-cases word and applies simple English plural rules
func Pluralize(word string) string {
	if word == "" {
		return word
	}

	word = strings.ToLower(word)

	switch {
	case strings.HasSuffix(word, "s"), strings.HasSuffix(word, "x"),
		strings.HasSuffix(word, "z"), strings.HasSuffix(word, "ch"),
		strings.HasSuffix(word, "sh"):
		return word + "es"
	case strings.HasSuffix(word, "y") && len(word) > 1 && !isVowel(rune(word[len(word)-2])):
		return word[:len(word)-1] + "ies"
	case strings.HasSuffix(word, "fe"):
		return word[:len(word)-2] + "ves"
	case strings.HasSuffix(word, "f"):
		return word[:len(word)-1] + "ves"
	}

	return word + "s"
}

func isVowel(r rune) bool {
	switch unicode.ToLower(r) {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	default:
		return false
	}
}

// SplitPath splits a dotted field path into its segments. Empty segments are
// kept so callers can reject paths like "a..b".
func SplitPath(path string) []string {
	return strings.Split(path, ".")
}

// JoinPath is the inverse of SplitPath
func JoinPath(segments ...string) string {
	return strings.Join(segments, ".")
}
