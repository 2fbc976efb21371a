package utils

import (
	"time"
)

// ConvertToLocalTime moves t into the named zone; unknown zones fall back to UTC.
func ConvertToLocalTime(utcTime time.Time, timezone string) time.Time {
	//init the loc
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}
	//set timezone,
	return utcTime.In(loc)
}

// safely dereference pointer of type T, nil pointer return zero value or optional default
func DereferencePtr[T any](ptr *T, defaults ...T) T {
	var defaultValue T
	if len(defaults) > 0 {
		defaultValue = defaults[0]
	}
	if ptr == nil {
		return defaultValue
	}
	return *ptr
}

// UniqueSlice keeps the first occurrence of every element, preserving order.
func UniqueSlice[T comparable](slice []T) []T {
	seen := make(map[T]struct{}, len(slice))
	result := make([]T, 0, len(slice))
	for _, v := range slice {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}
