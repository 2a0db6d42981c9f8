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

package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	spec "github.com/NVIDIA/gpu-throttle-monitor/api/config/v1"
	"github.com/NVIDIA/gpu-throttle-monitor/internal/gpu"
	"github.com/NVIDIA/gpu-throttle-monitor/internal/throttle"
)

func TestTextReport(t *testing.T) {
	testCases := []struct {
		description string
		metrics     gpu.Metrics
		verdict     throttle.Verdict
		expected    string
	}{
		{
			description: "normal GPU",
			metrics: gpu.Metrics{
				Index:             0,
				Name:              "NVIDIA GeForce RTX 4090",
				Temperature:       71,
				GPUUtilization:    93,
				MemoryUtilization: 40,
				PowerUsage:        250.4,
				GPUClock:          1830,
				MaxGPUClock:       1980,
				MemoryClock:       9501,
			},
			verdict:  throttle.Verdict{Status: throttle.StatusNormal},
			expected: "GPU 0 (NVIDIA GeForce RTX 4090): [normal] 71°C, load 93%, core 1830/1980 MHz, power 250 W, VRAM 40% @ 9501 MHz\n",
		},
		{
			description: "unknown rated clock and power",
			metrics: gpu.Metrics{
				Index:             2,
				Temperature:       48,
				GPUUtilization:    35,
				MemoryUtilization: 12,
				GPUClock:          1100,
				MemoryClock:       96,
			},
			verdict:  throttle.Verdict{Status: throttle.StatusNormal},
			expected: "GPU 2: [normal] 48°C, load 35%, core 1100 MHz, VRAM 12% @ 96 MHz\n",
		},
		{
			description: "throttling GPU",
			metrics: gpu.Metrics{
				Index:             1,
				Name:              "AMD GPU (card1)",
				Temperature:       95,
				GPUUtilization:    97,
				MemoryUtilization: 50,
				PowerUsage:        301,
				GPUClock:          1050,
				MaxGPUClock:       1980,
				MemoryClock:       1249,
			},
			verdict: throttle.Verdict{
				Status:            throttle.StatusThrottling,
				Reasons:           []throttle.Reason{throttle.ReasonTemperature, throttle.ReasonClockBelowRated, throttle.ReasonClockDrop},
				MeanPreviousClock: 1630,
				Drop:              35.58,
				ConsecutiveDrops:  3,
			},
			expected: "GPU 1 (AMD GPU (card1)): [throttling] 95°C, load 97%, core 1050/1980 MHz, power 301 W, VRAM 50% @ 1249 MHz\n" +
				"WARNING: GPU 1 throttling (temperature, clock-below-rated, clock-drop): temperature is 95°C; " +
				"core clock 1050 MHz is 53% of the rated 1980 MHz; " +
				"core clock 1050 MHz dropped 35.6% below the recent mean of 1630 MHz for 3 readings\n",
		},
		{
			description: "hardware reasons",
			metrics: gpu.Metrics{
				Index:          0,
				Temperature:    84,
				GPUUtilization: 99,
				PowerUsage:     450,
				GPUClock:       2400,
				MaxGPUClock:    2520,
				MemoryClock:    10501,
			},
			verdict: throttle.Verdict{
				Status:  throttle.StatusThrottling,
				Reasons: []throttle.Reason{throttle.ReasonHardwareThermal, throttle.ReasonPowerCap},
			},
			expected: "GPU 0: [throttling] 84°C, load 99%, core 2400/2520 MHz, power 450 W, VRAM 0% @ 10501 MHz\n" +
				"WARNING: GPU 0 throttling (hw-thermal, power-cap): thermal slowdown reported by the driver; power capped by the driver\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			var buf bytes.Buffer
			r, err := New(&buf, spec.OutputFormatText, false)
			require.NoError(t, err)

			require.NoError(t, r.Report(&tc.metrics, tc.verdict))
			require.Equal(t, tc.expected, buf.String())
		})
	}
}

func TestTextReportColor(t *testing.T) {
	var buf bytes.Buffer
	r := newTextReporter(termenv.NewOutput(&buf, termenv.WithProfile(termenv.ANSI)))

	metrics := &gpu.Metrics{Index: 0, Temperature: 95, GPUUtilization: 97, GPUClock: 1500}
	verdict := throttle.Verdict{Status: throttle.StatusThrottling, Reasons: []throttle.Reason{throttle.ReasonTemperature}}
	require.NoError(t, r.Report(metrics, verdict))

	output := buf.String()
	require.Contains(t, output, "\x1b[")
	require.Contains(t, output, "throttling")
	require.Contains(t, output, "temperature is 95°C")
	require.Len(t, strings.Split(strings.TrimSpace(output), "\n"), 2)
}

func TestJSONReport(t *testing.T) {
	var buf bytes.Buffer
	r, err := New(&buf, spec.OutputFormatJSON, true)
	require.NoError(t, err)

	require.NoError(t, r.Report(
		&gpu.Metrics{Index: 0, Name: "NVIDIA A100-SXM4-80GB", Temperature: 65, GPUUtilization: 80, GPUClock: 1410, MaxGPUClock: 1410},
		throttle.Verdict{Status: throttle.StatusNormal},
	))
	require.NoError(t, r.Report(
		&gpu.Metrics{Index: 1, Temperature: 92, GPUUtilization: 99, GPUClock: 1005},
		throttle.Verdict{Status: throttle.StatusThrottling, Reasons: []throttle.Reason{throttle.ReasonTemperature}},
	))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.Equal(t, 0.0, first["gpu"])
	require.Equal(t, "NVIDIA A100-SXM4-80GB", first["name"])
	require.Equal(t, 1410.0, first["maxGpuClock"])
	require.Equal(t, map[string]interface{}{"status": "normal"}, first["verdict"])

	var second map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	require.Equal(t, 1.0, second["gpu"])
	require.NotContains(t, second, "name")
	require.Equal(t, map[string]interface{}{
		"status":  "throttling",
		"reasons": []interface{}{"temperature"},
	}, second["verdict"])
}

func TestNewUnknownFormat(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "xml", false)
	require.Error(t, err)
}
