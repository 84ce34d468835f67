package models

import (
	"encoding/json"
	"reflect"
	"strings"
)

var (
	jobKeys         = jsonKeys(reflect.TypeOf(Job{}))
	applicationKeys = jsonKeys(reflect.TypeOf(Application{}))
)

// JobExtra returns the top-level keys of a job body that have no Job field.
func JobExtra(data []byte) (map[string]any, error) {
	return unknownKeys(data, jobKeys)
}

// ApplicationExtra returns the top-level keys of an application body that
// have no Application field. Enrichment keys count as known and are dropped.
func ApplicationExtra(data []byte) (map[string]any, error) {
	return unknownKeys(data, applicationKeys)
}

func jsonKeys(t reflect.Type) map[string]struct{} {
	keys := make(map[string]struct{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		switch name {
		case "-":
			continue
		case "":
			name = f.Name
		}
		keys[name] = struct{}{}
	}
	return keys
}

func unknownKeys(data []byte, known map[string]struct{}) (map[string]any, error) {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	var extra map[string]any
	for k, raw := range all {
		if _, ok := known[k]; ok {
			continue
		}
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		if extra == nil {
			extra = make(map[string]any)
		}
		extra[k] = v
	}
	return extra, nil
}

// mergeExtra adds extra keys to an encoded object. Encoded fields win.
func mergeExtra(encoded []byte, extra map[string]any) ([]byte, error) {
	if len(extra) == 0 {
		return encoded, nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(encoded, &fields); err != nil {
		return nil, err
	}
	merged := make(map[string]any, len(fields)+len(extra))
	for k, v := range extra {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return json.Marshal(merged)
}
