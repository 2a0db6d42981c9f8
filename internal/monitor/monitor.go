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
	"context"
	"fmt"
	"time"

	"k8s.io/klog/v2"

	spec "github.com/NVIDIA/gpu-throttle-monitor/api/config/v1"
	"github.com/NVIDIA/gpu-throttle-monitor/internal/gpu"
	"github.com/NVIDIA/gpu-throttle-monitor/internal/report"
	"github.com/NVIDIA/gpu-throttle-monitor/internal/throttle"
)

// Monitor periodically reads the GPUs of a manager and reports their verdicts.
type Monitor struct {
	manager  gpu.Manager
	detector *throttle.Detector
	reporter report.Reporter
	interval time.Duration
	oneshot  bool
}

// New creates a monitor with the supplied options.
func New(opts ...Option) (*Monitor, error) {
	m := &Monitor{
		interval: spec.DefaultInterval,
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.manager == nil {
		return nil, fmt.Errorf("a GPU manager is required")
	}
	if m.reporter == nil {
		return nil, fmt.Errorf("a reporter is required")
	}
	if m.detector == nil {
		m.detector = throttle.NewDetector(throttle.DefaultThresholds())
	}
	if m.interval <= 0 {
		return nil, fmt.Errorf("invalid polling interval: %v", m.interval)
	}

	return m, nil
}

// Run polls all devices immediately and then once per interval until the
// context is cancelled. In oneshot mode it returns after the first poll.
// The clock history of the detector is cleared since device indices may have
// changed since a previous run.
func (m *Monitor) Run(ctx context.Context) error {
	devices, err := m.manager.GetDevices()
	if err != nil {
		return fmt.Errorf("error getting devices: %w", err)
	}
	if len(devices) == 0 {
		return gpu.ErrNoDevices
	}
	m.detector.Reset()
	klog.Infof("Monitoring %d GPU(s) using the %v backend", len(devices), m.manager.Name())

	if err := m.poll(devices); err != nil {
		return err
	}
	if m.oneshot {
		return nil
	}

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := m.poll(devices); err != nil {
				return err
			}
		}
	}
}

// poll reads, evaluates and reports every device once. A device that cannot be
// read is skipped so that the others are still monitored. Idle GPUs in range are
// only reported in oneshot mode.
func (m *Monitor) poll(devices []gpu.Device) error {
	for _, d := range devices {
		metrics, err := d.GetMetrics()
		if err != nil {
			klog.Warningf("could not read metrics for GPU %d: %v, check for driver issues or dead GPU(s)", d.GetIndex(), err)
			continue
		}

		verdict := m.detector.Evaluate(metrics)
		klog.V(4).Infof("GPU %d: %+v", metrics.Index, verdict)
		if !verdict.Report && !m.oneshot {
			klog.V(1).Infof("GPU %d is idle (load %d%%, %.0f°C)", metrics.Index, metrics.GPUUtilization, metrics.Temperature)
			continue
		}
		if err := m.reporter.Report(metrics, verdict); err != nil {
			return fmt.Errorf("failed to report GPU %d: %w", metrics.Index, err)
		}
	}
	return nil
}
