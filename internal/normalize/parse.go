// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize maps raw provider records onto the canonical
// types.Title. Missing-value sentinels never survive normalization: "N/A"
// and blank strings become empty fields or nil pointers, and numeric fields
// that fail to parse are dropped rather than reported.
package normalize

import (
	"math"
	"strconv"
	"strings"
)

// MissingSentinel is the placeholder OMDb uses for absent fields.
const MissingSentinel = "N/A"

// IsMissing reports whether s carries no value.
func IsMissing(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, MissingSentinel)
}

// Clean trims s and maps missing values to "".
func Clean(s string) string {
	if IsMissing(s) {
		return ""
	}
	return strings.TrimSpace(s)
}

// ParseRating parses ratings such as "8.7". Missing or malformed input
// yields nil.
func ParseRating(s string) *float64 {
	s = Clean(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// ParseVotes parses vote counts with thousands separators, e.g.
// "1,900,000". Missing or malformed input yields nil.
func ParseVotes(s string) *int {
	s = strings.ReplaceAll(Clean(s), ",", "")
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

// SplitList splits a comma-joined field into trimmed, non-empty items in
// their original order. A missing value yields nil.
func SplitList(s string) []string {
	if IsMissing(s) {
		return nil
	}
	return CleanList(strings.Split(s, ","))
}

// CleanList trims every item and drops blanks and sentinels.
func CleanList(items []string) []string {
	var out []string
	for _, item := range items {
		if v := Clean(item); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// UniqueList is CleanList with duplicates removed, keeping first-seen order.
// Duplicates are compared case-insensitively.
func UniqueList(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	var out []string
	for _, v := range CleanList(items) {
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}
