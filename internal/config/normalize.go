package config

import "strings"

// normalizer provides type-safe string-to-enum normalization with a default
// for unrecognized input.
type normalizer[T comparable] struct {
	values       map[string]T
	defaultValue T
}

func newNormalizer[T comparable](values map[string]T, defaultValue T) *normalizer[T] {
	normalized := make(map[string]T, len(values))
	for k, v := range values {
		normalized[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return &normalizer[T]{values: normalized, defaultValue: defaultValue}
}

func (n *normalizer[T]) normalize(raw string) T {
	if v, ok := n.values[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return v
	}
	return n.defaultValue
}
