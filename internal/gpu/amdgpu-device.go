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
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type amdgpuDevice struct {
	lib   *amdgpuLib
	index int
	card  string
	// path is the PCI device directory of the card, e.g. /sys/class/drm/card0/device
	path string
}

var _ Device = (*amdgpuDevice)(nil)

// GetIndex returns the enumeration index of the card.
func (d *amdgpuDevice) GetIndex() int {
	return d.index
}

// GetMetrics reads a telemetry snapshot from the card.
func (d *amdgpuDevice) GetMetrics() (*Metrics, error) {
	stats, err := d.lib.card(d.card)
	if err != nil {
		return nil, err
	}

	hwmon, err := d.hwmonPath()
	if err != nil {
		return nil, err
	}

	// millidegrees Celsius
	temperature, err := readUintFile(filepath.Join(hwmon, "temp1_input"))
	if err != nil {
		return nil, fmt.Errorf("error getting temperature: %w", err)
	}

	clock, maxClock, err := d.coreClocks(hwmon)
	if err != nil {
		return nil, fmt.Errorf("error getting core clock: %w", err)
	}

	var memoryClock uint32
	if data, err := os.ReadFile(filepath.Join(d.path, "pp_dpm_mclk")); err == nil {
		memoryClock, _, _ = parseDPMClocks(string(data))
	}

	// microwatts; older kernels only expose power1_average, newer ones power1_input
	var power uint64
	for _, file := range []string{"power1_average", "power1_input"} {
		if p, err := readUintFile(filepath.Join(hwmon, file)); err == nil {
			power = p
			break
		}
	}

	var memoryUtilization uint32
	if stats.MemoryVRAMSize > 0 {
		memoryUtilization = uint32(stats.MemoryVRAMUsed * 100 / stats.MemoryVRAMSize)
	}

	return &Metrics{
		Index:             d.index,
		Name:              d.name(),
		Temperature:       float64(temperature) / 1000,
		GPUUtilization:    uint32(stats.GPUBusyPercent),
		MemoryUtilization: memoryUtilization,
		PowerUsage:        float64(power) / 1e6,
		GPUClock:          clock,
		MaxGPUClock:       maxClock,
		MemoryClock:       memoryClock,
		Timestamp:         time.Now(),
	}, nil
}

// coreClocks returns the current and rated core clock in MHz.
// pp_dpm_sclk is preferred; hwmon freq1_input (Hz) is used when it is absent and
// leaves the rated clock unknown.
func (d *amdgpuDevice) coreClocks(hwmon string) (uint32, uint32, error) {
	data, err := os.ReadFile(filepath.Join(d.path, "pp_dpm_sclk"))
	if err == nil {
		return parseDPMClocks(string(data))
	}
	hz, ferr := readUintFile(filepath.Join(hwmon, "freq1_input"))
	if ferr != nil {
		return 0, 0, fmt.Errorf("neither pp_dpm_sclk (%v) nor freq1_input (%v) are readable", err, ferr)
	}
	return uint32(hz / 1e6), 0, nil
}

func (d *amdgpuDevice) hwmonPath() (string, error) {
	matches, err := filepath.Glob(filepath.Join(d.path, "hwmon", "hwmon*"))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no hwmon interface found for %v", d.card)
	}
	return matches[0], nil
}

func (d *amdgpuDevice) name() string {
	data, err := os.ReadFile(filepath.Join(d.path, "product_name"))
	if err != nil || len(strings.TrimSpace(string(data))) == 0 {
		return "AMD GPU (" + d.card + ")"
	}
	return strings.TrimSpace(string(data))
}

// parseDPMClocks parses the contents of a pp_dpm_sclk / pp_dpm_mclk file:
//
//	0: 500Mhz
//	1: 1350Mhz *
//	2: 2100Mhz
//
// The starred level is the current clock and the highest level the rated one.
func parseDPMClocks(data string) (uint32, uint32, error) {
	var current, rated uint32
	found := false
	for _, line := range strings.Split(data, "\n") {
		_, level, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		fields := strings.Fields(level)
		if len(fields) == 0 {
			continue
		}
		value := strings.TrimSuffix(strings.ToLower(fields[0]), "mhz")
		mhz, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return 0, 0, fmt.Errorf("malformed DPM level %q: %v", strings.TrimSpace(line), err)
		}
		if uint32(mhz) > rated {
			rated = uint32(mhz)
		}
		if len(fields) > 1 && fields[1] == "*" {
			current = uint32(mhz)
			found = true
		}
	}
	if !found {
		return 0, 0, fmt.Errorf("no active DPM level")
	}
	return current, rated, nil
}

func readUintFile(path string) (uint64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return strconv.ParseUint(strings.TrimSpace(string(data)), 10, 64)
}
