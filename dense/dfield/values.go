package dfield

import (
	"github.com/iancoleman/orderedmap"
	"github.com/samber/lo"
)

type (
	// Record is a read-only view over the keyed value shapes that reach the
	// encoder: ordered maps coming back from a decode or from JSON
	// unmarshalling, and plain maps built in code.
	Record struct {
		lhm *orderedmap.OrderedMap
		m   map[string]any
	}
)

func AsRecord(value any) (Record, bool) {
	switch typed := value.(type) {
	case *orderedmap.OrderedMap:
		return Record{lhm: typed}, true
	case orderedmap.OrderedMap:
		return Record{lhm: &typed}, true
	case map[string]any:
		return Record{m: typed}, true
	case Record:
		return typed, true
	}
	return Record{}, false
}

func (r Record) Get(key string) (any, bool) {
	if r.lhm != nil {
		return r.lhm.Get(key)
	}
	value, ok := r.m[key]
	return value, ok
}

func AsInt(value any) (int, bool) {
	switch typed := value.(type) {
	case int:
		return typed, true
	case int32:
		return int(typed), true
	case int64:
		return int(typed), true
	case uint32:
		return int(typed), true
	case float64:
		return int(typed), true
	}
	return 0, false
}

func AsFloat(value any) (float64, bool) {
	switch typed := value.(type) {
	case float64:
		return typed, true
	case float32:
		return float64(typed), true
	case int:
		return float64(typed), true
	case int64:
		return float64(typed), true
	}
	return 0, false
}

func AsSlice(value any) ([]any, bool) {
	switch typed := value.(type) {
	case []any:
		return typed, true
	case []string:
		return lo.Map(
			typed,
			func(s string, _ int) any { return s },
		), true
	case []float64:
		return lo.Map(
			typed,
			func(f float64, _ int) any { return f },
		), true
	case []int:
		return lo.Map(
			typed,
			func(i int, _ int) any { return i },
		), true
	}
	return nil, false
}
