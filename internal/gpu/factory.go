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

	"github.com/NVIDIA/go-nvlib/pkg/nvlib/info"
	"github.com/NVIDIA/go-nvml/pkg/nvml"
	"github.com/prometheus/procfs/sysfs"
	"k8s.io/klog/v2"

	spec "github.com/NVIDIA/gpu-throttle-monitor/api/config/v1"
)

// NewManager is a factory method that creates a GPU Manager based on the specified config.
// The returned manager still has to be initialized.
func NewManager(config *spec.Config) (Manager, error) {
	backend := spec.DefaultBackend
	if config.Flags.Backend != nil {
		backend = *config.Flags.Backend
	}
	sysfsRoot := spec.DefaultSysfsRoot
	if config.Flags.SysfsRoot != nil {
		sysfsRoot = *config.Flags.SysfsRoot
	}

	switch backend {
	case spec.BackendNVML:
		klog.Info("Using NVML manager")
		return NewNVMLManager(nvml.New()), nil
	case spec.BackendAMDGPU:
		klog.Info("Using amdgpu manager")
		return NewAMDGPUManager(sysfsRoot), nil
	case spec.BackendAuto:
		return detectManager(sysfsRoot), nil
	default:
		return nil, fmt.Errorf("invalid backend %q", backend)
	}
}

// detectManager logs which platforms are present and returns a manager trying
// NVIDIA first and AMD second.
func detectManager(sysfsRoot string) Manager {
	// logWithReason logs the output of the has* checks
	logWithReason := func(f func() (bool, string), tag string) bool {
		is, reason := f()
		if !is {
			tag = "non-" + tag
		}
		klog.Infof("Detected %v platform: %v", tag, reason)
		return is
	}

	nvmllib := nvml.New()
	infolib := info.New(info.WithNvmlLib(nvmllib))

	logWithReason(infolib.HasNvml, "NVML")
	logWithReason(func() (bool, string) { return hasAMDGPU(sysfsRoot) }, "amdgpu")

	return NewFirstAvailable(
		NewNVMLManager(nvmllib),
		NewAMDGPUManager(sysfsRoot),
	)
}

// hasAMDGPU reports whether any DRM card under sysfsRoot is driven by amdgpu.
func hasAMDGPU(sysfsRoot string) (bool, string) {
	fs, err := sysfs.NewFS(sysfsRoot)
	if err != nil {
		return false, fmt.Sprintf("could not open sysfs: %v", err)
	}
	cards, err := amdgpuCards(fs, sysfsRoot)
	if err != nil {
		return false, fmt.Sprintf("could not list DRM cards: %v", err)
	}
	if len(cards) == 0 {
		return false, "no DRM card driven by amdgpu"
	}
	return true, fmt.Sprintf("found %d DRM card(s) driven by amdgpu", len(cards))
}
