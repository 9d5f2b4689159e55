package utils

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// ParseMapKey decodes config[key] into out by round-tripping it through JSON.
func ParseMapKey[T any](config map[string]any, key string, out *T) error {
	field, exists := config[key]
	if !exists {
		return fmt.Errorf("key %s doesn't exists in map", key)
	}

	bytes, err := json.Marshal(field)
	if err != nil {
		return err
	}

	var temp T
	err = json.Unmarshal(bytes, &temp)
	if err != nil {
		return fmt.Errorf("type for %s mismatch %s", key, reflect.TypeOf(field))
	}
	*out = temp
	return nil
}

// ParseMapKeyOr behaves like ParseMapKey but falls back to def when key is absent.
func ParseMapKeyOr[T any](config map[string]any, key string, def T, out *T) error {
	if _, exists := config[key]; !exists {
		*out = def
		return nil
	}
	return ParseMapKey(config, key, out)
}
