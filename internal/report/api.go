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
	"io"

	"github.com/muesli/termenv"

	spec "github.com/NVIDIA/gpu-throttle-monitor/api/config/v1"
	"github.com/NVIDIA/gpu-throttle-monitor/internal/gpu"
	"github.com/NVIDIA/gpu-throttle-monitor/internal/throttle"
)

// Reporter writes the outcome of evaluating a metrics snapshot.
//
//go:generate moq -rm -out reporter_mock.go . Reporter
type Reporter interface {
	Report(*gpu.Metrics, throttle.Verdict) error
}

// New creates a reporter for the requested output format.
// Colour is only emitted for text output when color is set and w is a terminal.
func New(w io.Writer, format string, color bool) (Reporter, error) {
	switch format {
	case spec.OutputFormatText:
		var opts []termenv.OutputOption
		if !color {
			opts = append(opts, termenv.WithProfile(termenv.Ascii))
		}
		return newTextReporter(termenv.NewOutput(w, opts...)), nil
	case spec.OutputFormatJSON:
		return newJSONReporter(w), nil
	}
	return nil, fmt.Errorf("unknown output format: %v", format)
}
