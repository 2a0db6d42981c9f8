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

package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
	cli "github.com/urfave/cli/v2"
	"k8s.io/klog/v2"
)

func TestApply(t *testing.T) {
	testCases := []struct {
		description string
		args        []string
		enabled     klog.Level
		disabled    klog.Level
	}{
		{
			description: "verbosity from flag",
			args:        []string{"--v=4"},
			enabled:     4,
			disabled:    5,
		},
		{
			description: "default verbosity",
			enabled:     0,
			disabled:    1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			c := NewConfig()
			app := &cli.App{
				Flags: c.Flags(),
				Action: func(*cli.Context) error {
					return c.Apply()
				},
			}

			require.NoError(t, app.Run(append([]string{"gpu-throttle-monitor"}, tc.args...)))
			require.True(t, klog.V(tc.enabled).Enabled())
			require.False(t, klog.V(tc.disabled).Enabled())
		})
	}
}
