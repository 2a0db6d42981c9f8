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
	"fmt"

	"k8s.io/klog/v2"
)

type firstAvailable struct {
	candidates []Manager
	active     Manager
}

var _ Manager = (*firstAvailable)(nil)

// NewFirstAvailable creates a manager that delegates to the first candidate that
// initializes and reports at least one device. Candidates are tried in order.
func NewFirstAvailable(candidates ...Manager) Manager {
	return &firstAvailable{
		candidates: candidates,
	}
}

// Name returns the name of the selected backend.
func (m *firstAvailable) Name() string {
	if m.active == nil {
		return "auto"
	}
	return m.active.Name()
}

// Init initializes the candidates in turn until one of them has devices.
// Candidates that initialized without devices are shut down again.
func (m *firstAvailable) Init() error {
	var errs []error
	for _, c := range m.candidates {
		if err := c.Init(); err != nil {
			klog.Warningf("The %v backend is unavailable: %v", c.Name(), err)
			errs = append(errs, err)
			continue
		}

		devices, err := c.GetDevices()
		if err == nil && len(devices) == 0 {
			klog.Infof("No GPUs detected on the %v backend", c.Name())
		}
		if err != nil {
			klog.Warningf("Failed to list devices on the %v backend: %v", c.Name(), err)
			errs = append(errs, err)
		}
		if err != nil || len(devices) == 0 {
			if err := c.Shutdown(); err != nil {
				klog.Warningf("Failed to shut down the %v backend: %v", c.Name(), err)
			}
			continue
		}

		klog.Infof("%d GPU(s) detected on %v", len(devices), c.Name())
		m.active = c
		return nil
	}

	if len(errs) == 0 {
		return ErrNoDevices
	}
	return fmt.Errorf("%w: %w", ErrNoDevices, errors.Join(errs...))
}

// Shutdown delegates to the selected manager
func (m *firstAvailable) Shutdown() error {
	if m.active == nil {
		return nil
	}
	err := m.active.Shutdown()
	m.active = nil
	return err
}

// GetDevices delegates to the selected manager
func (m *firstAvailable) GetDevices() ([]Device, error) {
	if m.active == nil {
		return nil, fmt.Errorf("no backend has been initialized")
	}
	return m.active.GetDevices()
}
