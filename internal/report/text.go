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
	"fmt"
	"strings"

	"github.com/muesli/termenv"

	"github.com/NVIDIA/gpu-throttle-monitor/internal/gpu"
	"github.com/NVIDIA/gpu-throttle-monitor/internal/throttle"
)

const (
	colorRed    = "1"
	colorGreen  = "2"
	colorYellow = "3"
)

type textReporter struct {
	output *termenv.Output
}

func newTextReporter(output *termenv.Output) Reporter {
	return &textReporter{output: output}
}

// Report writes a load summary line and, for a throttling GPU, a warning line.
func (r *textReporter) Report(m *gpu.Metrics, v throttle.Verdict) error {
	var b strings.Builder

	b.WriteString(r.style(fmt.Sprintf("GPU %d", m.Index), "", true))
	if m.Name != "" {
		fmt.Fprintf(&b, " (%s)", m.Name)
	}
	fmt.Fprintf(&b, ": [%s] ", r.status(v.Status))
	b.WriteString(summary(m))
	b.WriteString("\n")

	if v.Status == throttle.StatusThrottling {
		warning := fmt.Sprintf("WARNING: GPU %d throttling (%s): %s", m.Index, joinReasons(v.Reasons), details(m, v))
		b.WriteString(r.style(warning, colorRed, false))
		b.WriteString("\n")
	}

	_, err := r.output.WriteString(b.String())
	return err
}

func (r *textReporter) status(s throttle.Status) string {
	switch s {
	case throttle.StatusThrottling:
		return r.style(string(s), colorRed, true)
	case throttle.StatusNormal:
		return r.style(string(s), colorGreen, false)
	}
	return r.style(string(s), colorYellow, false)
}

// style colours s unless the output has no colour support.
func (r *textReporter) style(s string, color string, bold bool) string {
	if r.output.Profile == termenv.Ascii {
		return s
	}
	style := r.output.String(s)
	if color != "" {
		style = style.Foreground(r.output.Color(color))
	}
	if bold {
		style = style.Bold()
	}
	return style.String()
}

func summary(m *gpu.Metrics) string {
	parts := []string{
		fmt.Sprintf("%.0f°C", m.Temperature),
		fmt.Sprintf("load %d%%", m.GPUUtilization),
	}
	if m.MaxGPUClock > 0 {
		parts = append(parts, fmt.Sprintf("core %d/%d MHz", m.GPUClock, m.MaxGPUClock))
	} else {
		parts = append(parts, fmt.Sprintf("core %d MHz", m.GPUClock))
	}
	if m.PowerUsage > 0 {
		parts = append(parts, fmt.Sprintf("power %.0f W", m.PowerUsage))
	}
	parts = append(parts, fmt.Sprintf("VRAM %d%% @ %d MHz", m.MemoryUtilization, m.MemoryClock))
	return strings.Join(parts, ", ")
}

func details(m *gpu.Metrics, v throttle.Verdict) string {
	var parts []string
	for _, reason := range v.Reasons {
		switch reason {
		case throttle.ReasonTemperature:
			parts = append(parts, fmt.Sprintf("temperature is %.0f°C", m.Temperature))
		case throttle.ReasonClockBelowRated:
			parts = append(parts, fmt.Sprintf("core clock %d MHz is %.0f%% of the rated %d MHz",
				m.GPUClock, float64(m.GPUClock)*100/float64(m.MaxGPUClock), m.MaxGPUClock))
		case throttle.ReasonClockDrop:
			parts = append(parts, fmt.Sprintf("core clock %d MHz dropped %.1f%% below the recent mean of %.0f MHz for %d readings",
				m.GPUClock, v.Drop, v.MeanPreviousClock, v.ConsecutiveDrops))
		case throttle.ReasonHardwareThermal:
			parts = append(parts, "thermal slowdown reported by the driver")
		case throttle.ReasonPowerCap:
			parts = append(parts, "power capped by the driver")
		}
	}
	return strings.Join(parts, "; ")
}

func joinReasons(reasons []throttle.Reason) string {
	names := make([]string, len(reasons))
	for i, r := range reasons {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}
