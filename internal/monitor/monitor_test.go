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
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/gpu-throttle-monitor/internal/gpu"
	"github.com/NVIDIA/gpu-throttle-monitor/internal/report"
	"github.com/NVIDIA/gpu-throttle-monitor/internal/throttle"
)

func newDeviceMock(index int, metrics gpu.Metrics, err error) *gpu.DeviceMock {
	return &gpu.DeviceMock{
		GetIndexFunc: func() int {
			return index
		},
		GetMetricsFunc: func() (*gpu.Metrics, error) {
			if err != nil {
				return nil, err
			}
			m := metrics
			m.Index = index
			m.Timestamp = time.Now()
			return &m, nil
		},
	}
}

func newManagerMock(devices ...gpu.Device) *gpu.ManagerMock {
	return &gpu.ManagerMock{
		NameFunc: func() string {
			return "mock"
		},
		GetDevicesFunc: func() ([]gpu.Device, error) {
			return devices, nil
		},
	}
}

func newReporterMock() *report.ReporterMock {
	return &report.ReporterMock{
		ReportFunc: func(*gpu.Metrics, throttle.Verdict) error {
			return nil
		},
	}
}

func TestRunOneshot(t *testing.T) {
	hot := newDeviceMock(0, gpu.Metrics{Temperature: 95, GPUUtilization: 10, GPUClock: 600}, nil)
	broken := newDeviceMock(1, gpu.Metrics{}, errors.New("GPU is lost"))
	idle := newDeviceMock(2, gpu.Metrics{Temperature: 35, GPUUtilization: 0, GPUClock: 210, MaxGPUClock: 1980}, nil)
	busy := newDeviceMock(3, gpu.Metrics{Temperature: 70, GPUUtilization: 95, GPUClock: 1900, MaxGPUClock: 1980}, nil)

	reporter := newReporterMock()
	m, err := New(
		WithManager(newManagerMock(hot, broken, idle, busy)),
		WithReporter(reporter),
		WithOneshot(true),
	)
	require.NoError(t, err)
	require.NoError(t, m.Run(context.Background()))

	for _, d := range []*gpu.DeviceMock{hot, broken, idle, busy} {
		require.Len(t, d.GetMetricsCalls(), 1)
	}

	// every readable GPU is reported once, idle ones included
	calls := reporter.ReportCalls()
	require.Len(t, calls, 3)
	require.Equal(t, 0, calls[0].Metrics.Index)
	require.Equal(t, throttle.StatusThrottling, calls[0].Verdict.Status)
	require.Equal(t, []throttle.Reason{throttle.ReasonTemperature}, calls[0].Verdict.Reasons)
	require.Equal(t, 2, calls[1].Metrics.Index)
	require.Equal(t, throttle.StatusNormal, calls[1].Verdict.Status)
	require.False(t, calls[1].Verdict.Report)
	require.Equal(t, 3, calls[2].Metrics.Index)
	require.Equal(t, throttle.StatusNormal, calls[2].Verdict.Status)
}

func TestRunSkipsIdleGPUs(t *testing.T) {
	idle := newDeviceMock(0, gpu.Metrics{Temperature: 35, GPUUtilization: 0, GPUClock: 210, MaxGPUClock: 1980}, nil)
	busy := newDeviceMock(1, gpu.Metrics{Temperature: 70, GPUUtilization: 95, GPUClock: 1900, MaxGPUClock: 1980}, nil)

	reporter := newReporterMock()
	m, err := New(
		WithManager(newManagerMock(idle, busy)),
		WithReporter(reporter),
	)
	require.NoError(t, err)

	// a cancelled context stops the loop after the initial poll
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, m.Run(ctx))

	require.Len(t, idle.GetMetricsCalls(), 1)
	calls := reporter.ReportCalls()
	require.Len(t, calls, 1)
	require.Equal(t, 1, calls[0].Metrics.Index)
}

func TestRunPollsAtInterval(t *testing.T) {
	device := newDeviceMock(0, gpu.Metrics{Temperature: 60, GPUUtilization: 90, GPUClock: 1800}, nil)
	detector := throttle.NewDetector(throttle.DefaultThresholds())

	m, err := New(
		WithManager(newManagerMock(device)),
		WithReporter(newReporterMock()),
		WithDetector(detector),
		WithInterval(10*time.Millisecond),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 55*time.Millisecond)
	defer cancel()

	start := time.Now()
	require.NoError(t, m.Run(ctx))
	require.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)

	polls := len(device.GetMetricsCalls())
	require.GreaterOrEqual(t, polls, 2)
	require.LessOrEqual(t, polls, 8)
	require.Len(t, detector.History(0), polls)
}

func TestRunErrors(t *testing.T) {
	reportErr := errors.New("broken pipe")
	devicesErr := errors.New("driver not loaded")

	testCases := []struct {
		description   string
		manager       gpu.Manager
		reporter      report.Reporter
		expectedError error
	}{
		{
			description:   "no devices",
			manager:       newManagerMock(),
			reporter:      newReporterMock(),
			expectedError: gpu.ErrNoDevices,
		},
		{
			description: "device enumeration fails",
			manager: &gpu.ManagerMock{
				GetDevicesFunc: func() ([]gpu.Device, error) {
					return nil, devicesErr
				},
			},
			reporter:      newReporterMock(),
			expectedError: devicesErr,
		},
		{
			description: "reporter fails",
			manager:     newManagerMock(newDeviceMock(0, gpu.Metrics{Temperature: 99}, nil)),
			reporter: &report.ReporterMock{
				ReportFunc: func(*gpu.Metrics, throttle.Verdict) error {
					return reportErr
				},
			},
			expectedError: reportErr,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			m, err := New(WithManager(tc.manager), WithReporter(tc.reporter))
			require.NoError(t, err)

			err = m.Run(context.Background())
			require.ErrorIs(t, err, tc.expectedError)
		})
	}
}

func TestNew(t *testing.T) {
	testCases := []struct {
		description   string
		opts          []Option
		expectedError bool
	}{
		{
			description: "defaults",
			opts:        []Option{WithManager(newManagerMock()), WithReporter(newReporterMock())},
		},
		{
			description:   "missing manager",
			opts:          []Option{WithReporter(newReporterMock())},
			expectedError: true,
		},
		{
			description:   "missing reporter",
			opts:          []Option{WithManager(newManagerMock())},
			expectedError: true,
		},
		{
			description:   "zero interval",
			opts:          []Option{WithManager(newManagerMock()), WithReporter(newReporterMock()), WithInterval(0)},
			expectedError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			m, err := New(tc.opts...)
			if tc.expectedError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, m.detector)
		})
	}
}
