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
	"encoding/json"
	"io"

	"github.com/NVIDIA/gpu-throttle-monitor/internal/gpu"
	"github.com/NVIDIA/gpu-throttle-monitor/internal/throttle"
)

type jsonReporter struct {
	encoder *json.Encoder
}

type record struct {
	*gpu.Metrics
	Verdict throttle.Verdict `json:"verdict"`
}

func newJSONReporter(w io.Writer) Reporter {
	return &jsonReporter{encoder: json.NewEncoder(w)}
}

// Report writes the snapshot and its verdict as a single JSON object per line.
func (r *jsonReporter) Report(m *gpu.Metrics, v throttle.Verdict) error {
	return r.encoder.Encode(record{Metrics: m, Verdict: v})
}
