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
	"github.com/NVIDIA/gpu-throttle-monitor/internal/gpu"
)

// Status is the throttling verdict for a single GPU.
type Status string

// Constants representing the possible verdicts
const (
	StatusNormal     Status = "normal"
	StatusThrottling Status = "throttling"
)

// Reason names a check that flagged a GPU as throttling.
type Reason string

// Constants representing the throttling reasons
const (
	ReasonTemperature     Reason = "temperature"
	ReasonClockBelowRated Reason = "clock-below-rated"
	ReasonClockDrop       Reason = "clock-drop"
	ReasonHardwareThermal Reason = "hw-thermal"
	ReasonPowerCap        Reason = "power-cap"
)

// Verdict is the result of evaluating one metrics snapshot.
type Verdict struct {
	Status  Status   `json:"status"`
	Reasons []Reason `json:"reasons,omitempty"`
	// Report is set when the snapshot should be printed.
	Report bool `json:"-"`
	// MeanPreviousClock and Drop (in percent) describe the last sustained-drop check.
	// They are only set when the history was long enough to run the check.
	MeanPreviousClock float64 `json:"meanPreviousClock,omitempty"`
	Drop              float64 `json:"drop,omitempty"`
	ConsecutiveDrops  int     `json:"consecutiveDrops,omitempty"`
}

// Has returns whether the verdict carries the given reason.
func (v Verdict) Has(reason Reason) bool {
	for _, r := range v.Reasons {
		if r == reason {
			return true
		}
	}
	return false
}

// Thresholds holds the limits the detector compares against.
type Thresholds struct {
	TemperatureThreshold float64
	MonitoringLoad       uint32
	ThrottlingLoad       uint32
	DropFactor           float64
	Persistence          int
	MaxHistory           int
	HistoryWindow        int
	RatedClockFraction   float64
}

type deviceState struct {
	clocks []uint32
	drops  int
}

// Detector evaluates metrics snapshots against a set of thresholds. It keeps a
// bounded core clock history per GPU index and is not safe for concurrent use.
type Detector struct {
	thresholds Thresholds
	devices    map[int]*deviceState
}

// NewDetector creates a detector for the given thresholds.
func NewDetector(thresholds Thresholds) *Detector {
	return &Detector{
		thresholds: thresholds,
		devices:    make(map[int]*deviceState),
	}
}

// Reset drops the history of all GPUs.
func (d *Detector) Reset() {
	d.devices = make(map[int]*deviceState)
}

// Evaluate compares a snapshot against the thresholds and records its core clock.
func (d *Detector) Evaluate(m *gpu.Metrics) Verdict {
	t := d.thresholds
	var v Verdict

	hot := m.Temperature >= t.TemperatureThreshold
	if hot {
		v.Reasons = append(v.Reasons, ReasonTemperature)
	}

	if m.ThrottleReasons&gpu.ThrottleReasonsThermal != 0 {
		v.Reasons = append(v.Reasons, ReasonHardwareThermal)
	}

	// An idle GPU lowers its clocks on its own, so the clock checks need load.
	if m.GPUUtilization >= t.ThrottlingLoad {
		state := d.state(m.Index)
		state.record(m.GPUClock, t.MaxHistory)

		if m.MaxGPUClock > 0 && float64(m.GPUClock) < t.RatedClockFraction*float64(m.MaxGPUClock) {
			v.Reasons = append(v.Reasons, ReasonClockBelowRated)
		}

		if hot && len(state.clocks) >= t.HistoryWindow+1 {
			mean, drop := state.drop(t.HistoryWindow)
			if float64(state.latest()) <= t.DropFactor*mean {
				state.drops++
			} else {
				state.drops = 0
			}
			v.MeanPreviousClock = mean
			v.Drop = drop
			v.ConsecutiveDrops = state.drops
			if state.drops >= t.Persistence {
				v.Reasons = append(v.Reasons, ReasonClockDrop)
			}
		}

		if m.ThrottleReasons&gpu.ThrottleReasonsPower != 0 {
			v.Reasons = append(v.Reasons, ReasonPowerCap)
		}
	}

	v.Status = StatusNormal
	if len(v.Reasons) > 0 {
		v.Status = StatusThrottling
	}
	v.Report = v.Status == StatusThrottling || m.GPUUtilization >= t.MonitoringLoad

	return v
}

// History returns a copy of the recorded core clocks of a GPU, oldest first.
func (d *Detector) History(index int) []uint32 {
	state, ok := d.devices[index]
	if !ok {
		return nil
	}
	return append([]uint32(nil), state.clocks...)
}

func (d *Detector) state(index int) *deviceState {
	state, ok := d.devices[index]
	if !ok {
		state = &deviceState{}
		d.devices[index] = state
	}
	return state
}

func (s *deviceState) record(clock uint32, limit int) {
	s.clocks = append(s.clocks, clock)
	if len(s.clocks) > limit {
		s.clocks = s.clocks[len(s.clocks)-limit:]
	}
}

func (s *deviceState) latest() uint32 {
	return s.clocks[len(s.clocks)-1]
}

// drop returns the mean of the window readings before the latest one and the
// relative drop of the latest reading from that mean in percent.
func (s *deviceState) drop(window int) (float64, float64) {
	previous := s.clocks[len(s.clocks)-window-1 : len(s.clocks)-1]
	var sum float64
	for _, c := range previous {
		sum += float64(c)
	}
	mean := sum / float64(len(previous))
	if mean == 0 {
		return 0, 0
	}
	return mean, (mean - float64(s.latest())) * 100 / mean
}
