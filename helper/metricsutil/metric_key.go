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
// Package metricsutil holds the telemetry helpers shared by submission commands.
package metricsutil

import (
	"strings"
)

// . is the statsd separator, _ the prometheus one, / is not allowed by prometheus, | and : are reserved by statsd
var reserved = strings.NewReplacer("/", "-", ".", "-", "_", "-", "|", "-", ":", "-", " ", "-")

// CleanupMetricKey replaces any reserved characters in statsd/statsite and prometheus by '-'.
//
// Empty parts are dropped.
func CleanupMetricKey(key ...string) []string {
	res := make([]string, 0, len(key))
	for _, keyPart := range key {
		if keyPart == "" {
			continue
		}
		res = append(res, reserved.Replace(keyPart))
	}
	return res
}
