package services

import (
	"github.com/bloomworks/bloom-practice/internal/store"
)

// Partial-update payloads arrive as decoded JSON maps. Services whitelist the
// mutable fields; anything else in the map is silently ignored.

func stringField(fields map[string]interface{}, key string) *string {
	v, ok := fields[key]
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}

// intField accepts float64 (the decoded-JSON number type) and int.
func intField(fields map[string]interface{}, key string) *int {
	v, ok := fields[key]
	if !ok {
		return nil
	}
	switch n := v.(type) {
	case float64:
		i := int(n)
		return &i
	case int:
		return &n
	}
	return nil
}

// chunked invokes fn over ids in slices of at most store.MaxBatchDelete.
// Each call is atomic in the backend; the sequence as a whole is not.
func chunked(ids []string, fn func([]string) error) error {
	for len(ids) > 0 {
		n := len(ids)
		if n > store.MaxBatchDelete {
			n = store.MaxBatchDelete
		}
		if err := fn(ids[:n]); err != nil {
			return err
		}
		ids = ids[n:]
	}
	return nil
}
