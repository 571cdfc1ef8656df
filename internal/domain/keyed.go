package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// unmarshalKeyed decodes a store list that may be either an object keyed by
// child ID or a plain JSON array. The store persists an empty list as [] and
// pushed children as an object, so readers have to accept both shapes.
// Array entries get their index as the key; null slots are skipped.
func unmarshalKeyed[T any](data []byte) (map[string]T, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return map[string]T{}, nil
	}

	if data[0] == '[' {
		var arr []*T
		if err := json.Unmarshal(data, &arr); err != nil {
			return nil, err
		}
		out := make(map[string]T, len(arr))
		for i, it := range arr {
			if it == nil {
				continue
			}
			out[strconv.Itoa(i)] = *it
		}
		return out, nil
	}

	var obj map[string]T
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		obj = map[string]T{}
	}
	return obj, nil
}
