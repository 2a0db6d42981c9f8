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

package throttle

import (
	spec "github.com/NVIDIA/gpu-throttle-monitor/api/config/v1"
)

// DefaultThresholds returns the thresholds used when nothing is configured.
func DefaultThresholds() Thresholds {
	return Thresholds{
		TemperatureThreshold: spec.DefaultTemperatureThreshold,
		MonitoringLoad:       spec.DefaultMonitoringLoad,
		ThrottlingLoad:       spec.DefaultThrottlingLoad,
		DropFactor:           spec.DefaultDropFactor,
		Persistence:          spec.DefaultPersistence,
		MaxHistory:           spec.DefaultMaxHistory,
		HistoryWindow:        spec.DefaultHistoryWindow,
		RatedClockFraction:   spec.DefaultRatedClockFraction,
	}
}

// NewThresholds builds thresholds from a config, using defaults for unset values.
func NewThresholds(config *spec.Config) Thresholds {
	t := DefaultThresholds()

	f := config.Flags.Thresholds
	if f == nil {
		return t
	}
	if f.TemperatureThreshold != nil {
		t.TemperatureThreshold = *f.TemperatureThreshold
	}
	if f.MonitoringLoad != nil {
		t.MonitoringLoad = uint32(*f.MonitoringLoad)
	}
	if f.ThrottlingLoad != nil {
		t.ThrottlingLoad = uint32(*f.ThrottlingLoad)
	}
	if f.DropFactor != nil {
		t.DropFactor = *f.DropFactor
	}
	if f.Persistence != nil {
		t.Persistence = *f.Persistence
	}
	if f.MaxHistory != nil {
		t.MaxHistory = *f.MaxHistory
	}
	if f.HistoryWindow != nil {
		t.HistoryWindow = *f.HistoryWindow
	}
	if f.RatedClockFraction != nil {
		t.RatedClockFraction = *f.RatedClockFraction
	}
	return t
}
