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
	"time"

	metrics "github.com/armon/go-metrics"
	"github.com/pkg/errors"

	"github.com/ocp-tools/launchexp/config"
	"github.com/ocp-tools/launchexp/log"
)

// SetupTelemetry installs the global metrics sink.
//
// Metrics are always kept in memory and also sent to statsd when an address is configured.
func SetupTelemetry(cfg config.Telemetry) (*metrics.InmemSink, error) {
	memSink := metrics.NewInmemSink(10*time.Second, time.Minute)
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = config.DefaultServiceName
	}
	metricsConf := metrics.DefaultConfig(serviceName)
	metricsConf.EnableHostname = !cfg.DisableHostName

	if cfg.StatsdAddress == "" {
		log.Debugln("Using InMemory only telemetry")
		_, err := metrics.NewGlobal(metricsConf, memSink)
		return memSink, errors.Wrap(err, "Failed to setup telemetry")
	}

	log.Debugf("Setting up a statsd telemetry service on %q", cfg.StatsdAddress)
	statsdSink, err := metrics.NewStatsdSink(cfg.StatsdAddress)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to create Statsd telemetry service")
	}
	_, err = metrics.NewGlobal(metricsConf, metrics.FanoutSink{statsdSink, memSink})
	return memSink, errors.Wrap(err, "Failed to setup telemetry")
}
