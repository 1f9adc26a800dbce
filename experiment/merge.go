// Copyright 2026 The launchexp Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package experiment

import (
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	yaml "gopkg.in/yaml.v2"
)

// Merge returns base overridden by override.
//
// Nested maps are merged recursively. Two lists are merged element by element
// and must have the same length. Any other value of override replaces the one
// of base. Neither input is modified.
func Merge(base, override yaml.MapSlice) (yaml.MapSlice, error) {
	res := copyValue(base).(yaml.MapSlice)
	if res == nil {
		res = yaml.MapSlice{}
	}
	for _, item := range override {
		key := cast.ToString(item.Key)
		i := indexOf(res, key)
		if i < 0 {
			res = append(res, yaml.MapItem{Key: item.Key, Value: copyValue(item.Value)})
			continue
		}
		merged, err := mergeValues(key, res[i].Value, item.Value)
		if err != nil {
			return nil, err
		}
		res[i].Value = merged
	}
	return res, nil
}

func mergeValues(key string, base, override interface{}) (interface{}, error) {
	switch o := override.(type) {
	case yaml.MapSlice:
		if b, ok := base.(yaml.MapSlice); ok {
			m, err := Merge(b, o)
			return m, errors.Wrapf(err, "in %q", key)
		}
	case []interface{}:
		if b, ok := base.([]interface{}); ok {
			if len(b) != len(o) {
				return nil, errors.Errorf("list for key %q has different lengths (%d and %d), use an empty map {} to pad the shorter list", key, len(b), len(o))
			}
			res := make([]interface{}, len(o))
			for i := range o {
				v, err := mergeValues(key, b[i], o[i])
				if err != nil {
					return nil, err
				}
				res[i] = v
			}
			return res, nil
		}
	}
	return copyValue(override), nil
}

func copyValue(v interface{}) interface{} {
	switch t := v.(type) {
	case yaml.MapSlice:
		if t == nil {
			return yaml.MapSlice(nil)
		}
		res := make(yaml.MapSlice, len(t))
		for i, item := range t {
			res[i] = yaml.MapItem{Key: item.Key, Value: copyValue(item.Value)}
		}
		return res
	case []interface{}:
		res := make([]interface{}, len(t))
		for i, e := range t {
			res[i] = copyValue(e)
		}
		return res
	default:
		return v
	}
}
