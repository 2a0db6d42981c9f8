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
	"fmt"
	"time"

	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

type nvmlDevice struct {
	nvml.Device
	index int
}

var _ Device = (*nvmlDevice)(nil)

// GetIndex returns the NVML index of the device.
func (d *nvmlDevice) GetIndex() int {
	return d.index
}

// GetMetrics reads a telemetry snapshot from the device.
// Temperature, utilization and the graphics clock are required; the remaining
// counters read as zero on devices that do not support them.
func (d *nvmlDevice) GetMetrics() (*Metrics, error) {
	temperature, ret := d.GetTemperature(nvml.TEMPERATURE_GPU)
	if ret != nvml.SUCCESS {
		return nil, fmt.Errorf("error getting temperature: %v", ret)
	}

	utilization, ret := d.GetUtilizationRates()
	if ret != nvml.SUCCESS {
		return nil, fmt.Errorf("error getting utilization rates: %v", ret)
	}

	clock, ret := d.GetClockInfo(nvml.CLOCK_GRAPHICS)
	if ret != nvml.SUCCESS {
		return nil, fmt.Errorf("error getting graphics clock: %v", ret)
	}

	maxClock, err := optional(d.GetMaxClockInfo(nvml.CLOCK_GRAPHICS))
	if err != nil {
		return nil, fmt.Errorf("error getting max graphics clock: %w", err)
	}

	memoryClock, err := optional(d.GetClockInfo(nvml.CLOCK_MEM))
	if err != nil {
		return nil, fmt.Errorf("error getting memory clock: %w", err)
	}

	power, err := optional(d.GetPowerUsage())
	if err != nil {
		return nil, fmt.Errorf("error getting power usage: %w", err)
	}

	reasons, err := optional(d.GetCurrentClocksThrottleReasons())
	if err != nil {
		return nil, fmt.Errorf("error getting throttle reasons: %w", err)
	}

	name, _ := optional(d.GetName())

	return &Metrics{
		Index:             d.index,
		Name:              name,
		Temperature:       float64(temperature),
		GPUUtilization:    utilization.Gpu,
		MemoryUtilization: utilization.Memory,
		PowerUsage:        float64(power) / 1000,
		GPUClock:          clock,
		MaxGPUClock:       maxClock,
		MemoryClock:       memoryClock,
		ThrottleReasons:   reasons,
		Timestamp:         time.Now(),
	}, nil
}

// optional treats ERROR_NOT_SUPPORTED as the zero value.
func optional[T any](v T, ret nvml.Return) (T, error) {
	var zero T
	switch ret {
	case nvml.SUCCESS:
		return v, nil
	case nvml.ERROR_NOT_SUPPORTED:
		return zero, nil
	default:
		return zero, ret
	}
}
