package utils

import (
	"sort"
)

// SortedStringKeys returns the string keys of a map sorted in ascending order
func SortedStringKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// UniqueStrings removes duplicate strings from a slice
func UniqueStrings(slice []string) []string {
	if len(slice) == 0 {
		return slice
	}
	seen := make(map[string]bool, len(slice))
	result := make([]string, 0, len(slice))
	for _, v := range slice {
		if !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
	}
	return result
}

// ContainsSlice checks if a slice contains a specific element
func ContainsSlice[T comparable](slice []T, item T) bool {
	for _, v := range slice {
		if v == item {
			return true
		}
	}
	return false
}

// ReverseSlice reverses a slice in place
func ReverseSlice[T any](slice []T) {
	for i, j := 0, len(slice)-1; i < j; i, j = i+1, j-1 {
		slice[i], slice[j] = slice[j], slice[i]
	}
}

// CopyInt64Map returns an independent copy of a column-value map
func CopyInt64Map(m map[string]int64) map[string]int64 {
	result := make(map[string]int64, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}

// CopyStringSet returns an independent copy of a string set
func CopyStringSet(s map[string]struct{}) map[string]struct{} {
	result := make(map[string]struct{}, len(s))
	for k := range s {
		result[k] = struct{}{}
	}
	return result
}
