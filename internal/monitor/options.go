/**
# Copyright (c) 2024, NVIDIA CORPORATION.  All rights reserved.
#
# Licensed under the Apache License, Version 2.0 (the "License");
# you may not use this file except in compliance with the License.
# You may obtain a copy of the License at
#
#     http://www.apache.org/licenses/LICENSE-2.0
#
# Unless required by applicable law or agreed to in writing, software
# distributed under the License is distributed on an "AS IS" BASIS,
# WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
# See the License for the specific language governing permissions and
# limitations under the License.
**/

package monitor

import (
	"time"

	"github.com/NVIDIA/gpu-throttle-monitor/internal/gpu"
	"github.com/NVIDIA/gpu-throttle-monitor/internal/report"
	"github.com/NVIDIA/gpu-throttle-monitor/internal/throttle"
)

// Option is a function that configures a Monitor
type Option func(*Monitor)

// WithManager sets the GPU manager to read devices from
func WithManager(manager gpu.Manager) Option {
	return func(m *Monitor) {
		m.manager = manager
	}
}

// WithDetector sets the detector used to evaluate snapshots
func WithDetector(detector *throttle.Detector) Option {
	return func(m *Monitor) {
		m.detector = detector
	}
}

// WithReporter sets the reporter that verdicts are written to
func WithReporter(reporter report.Reporter) Option {
	return func(m *Monitor) {
		m.reporter = reporter
	}
}

// WithInterval sets the polling interval.
func WithInterval(interval time.Duration) Option {
	return func(m *Monitor) {
		m.interval = interval
	}
}

// WithOneshot sets whether the monitor polls once and returns.
func WithOneshot(oneshot bool) Option {
	return func(m *Monitor) {
		m.oneshot = oneshot
	}
}
