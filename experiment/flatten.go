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
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
	yaml "gopkg.in/yaml.v2"

	"github.com/ocp-tools/launchexp/launch"
)

// Flatten turns nested parameters into dotted overrides, in document order.
//
// Values are written the way the training script's argument parser reads them:
// lists as "[1500, 2000, 3000]", booleans as True/False and null as None.
func Flatten(params yaml.MapSlice) []launch.Override {
	return flatten(nil, "", params)
}

func flatten(res []launch.Override, prefix string, params yaml.MapSlice) []launch.Override {
	for _, item := range params {
		key := prefix + cast.ToString(item.Key)
		if m, ok := item.Value.(yaml.MapSlice); ok {
			res = flatten(res, key+".", m)
			continue
		}
		res = append(res, launch.Override{Key: key, Value: formatValue(item.Value)})
	}
	return res
}

func formatValue(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return "None"
	case string:
		return t
	case bool:
		if t {
			return "True"
		}
		return "False"
	case float64:
		return formatFloat(t)
	case float32:
		return formatFloat(float64(t))
	case []interface{}:
		items := make([]string, len(t))
		for i, e := range t {
			items[i] = repr(e)
		}
		return "[" + strings.Join(items, ", ") + "]"
	case yaml.MapSlice:
		items := make([]string, len(t))
		for i, item := range t {
			items[i] = repr(item.Key) + ": " + repr(item.Value)
		}
		return "{" + strings.Join(items, ", ") + "}"
	default:
		return cast.ToString(v)
	}
}

// repr formats values nested in lists and maps, where strings are quoted
func repr(v interface{}) string {
	s, ok := v.(string)
	if !ok {
		return formatValue(v)
	}
	if strings.Contains(s, "'") && !strings.Contains(s, "\"") {
		return "\"" + s + "\""
	}
	return "'" + strings.NewReplacer("\\", "\\\\", "'", "\\'").Replace(s) + "'"
}

func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	if abs := math.Abs(f); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
