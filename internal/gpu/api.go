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

package gpu

import (
	"errors"
	"time"
)

// ErrNoDevices is returned when no backend reports a usable GPU.
var ErrNoDevices = errors.New("no compatible GPU detected")

// Manager defines an interface for managing the GPUs of a single vendor backend.
//
//go:generate moq -rm -out manager_mock.go . Manager
type Manager interface {
	Init() error
	Shutdown() error
	Name() string
	GetDevices() ([]Device, error)
}

// Device defines an interface for reading the telemetry of a single GPU.
//
//go:generate moq -rm -out device_mock.go . Device
type Device interface {
	GetIndex() int
	GetMetrics() (*Metrics, error)
}

// Metrics is a snapshot of the telemetry of a single GPU.
type Metrics struct {
	Index int    `json:"gpu"`
	Name  string `json:"name,omitempty"`
	// Temperature is in degrees Celsius.
	Temperature float64 `json:"temperature"`
	// GPUUtilization and MemoryUtilization are percentages.
	GPUUtilization    uint32 `json:"gpuUtilization"`
	MemoryUtilization uint32 `json:"memoryUtilization"`
	// PowerUsage is in Watts.
	PowerUsage float64 `json:"powerUsage"`
	// Clocks are in MHz. MaxGPUClock is 0 when the rated clock is unknown.
	GPUClock    uint32 `json:"gpuClock"`
	MaxGPUClock uint32 `json:"maxGpuClock,omitempty"`
	MemoryClock uint32 `json:"memoryClock"`
	// ThrottleReasons is a bitmask of ThrottleReason* values.
	ThrottleReasons uint64    `json:"throttleReasons,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}

// Clock throttle reasons as defined by nvmlClocksThrottleReason* in nvml.h.
const (
	ThrottleReasonGpuIdle              uint64 = 0x0000000000000001
	ThrottleReasonSwPowerCap           uint64 = 0x0000000000000004
	ThrottleReasonHwSlowdown           uint64 = 0x0000000000000008
	ThrottleReasonSwThermalSlowdown    uint64 = 0x0000000000000020
	ThrottleReasonHwThermalSlowdown    uint64 = 0x0000000000000040
	ThrottleReasonHwPowerBrakeSlowdown uint64 = 0x0000000000000080

	ThrottleReasonsThermal = ThrottleReasonSwThermalSlowdown | ThrottleReasonHwThermalSlowdown
	ThrottleReasonsPower   = ThrottleReasonSwPowerCap | ThrottleReasonHwPowerBrakeSlowdown
)
