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
package metricsutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ocp-tools/launchexp/config"
)

func TestCleanupMetricKey(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		key  []string
		want []string
	}{
		{"Plain", []string{"submit", "jobs"}, []string{"submit", "jobs"}},
		{"ExperimentPath", []string{"submit", "is2re/sfarinet_v2", "jobs"}, []string{"submit", "is2re-sfarinet-v2", "jobs"}},
		{"Reserved", []string{"a.b|c:d e"}, []string{"a-b-c-d-e"}},
		{"EmptyPartsDropped", []string{"submit", "", "jobs"}, []string{"submit", "jobs"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanupMetricKey(tt.key...))
		})
	}
}

func TestSetupTelemetryInMemory(t *testing.T) {
	sink, err := SetupTelemetry(config.Telemetry{ServiceName: "launchexp-test"})
	require.NoError(t, err)
	require.NotNil(t, sink)
}
