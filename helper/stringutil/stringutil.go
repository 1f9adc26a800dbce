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
package stringutil

import (
	"strconv"
	"strings"
	"time"
)

// TimestampLayout is the layout of the timestamps used in generated file names
const TimestampLayout = "20060102_150405"

// GetLastElement returns the last element of a "separator-separated" string.
//
// The whole string is returned if it does not contain the separator.
func GetLastElement(str string, separator string) string {
	if idx := strings.LastIndex(str, separator); idx >= 0 {
		return str[idx+len(separator):]
	}
	return str
}

// TrimExtensions removes the given extensions from the end of str, in order
func TrimExtensions(str string, exts ...string) string {
	for _, ext := range exts {
		str = strings.TrimSuffix(str, ext)
	}
	return str
}

// Timestamp formats t for use in file names
func Timestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// UniqueTimestampedName generates a time-stamped name for temporary file or directory by instance
func UniqueTimestampedName(prefix string, suffix string) string {
	return prefix + strconv.FormatInt(time.Now().UnixNano(), 10) + suffix
}
