/*
 * Copyright (c) 2024, NVIDIA CORPORATION.  All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package v1

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestUnmarshalFlags(t *testing.T) {
	testCases := []struct {
		input  string
		output Flags
		err    bool
	}{
		{
			input: ``,
			err:   true,
		},
		{
			input:  `{}`,
			output: Flags{},
		},
		{
			input: `{
				"monitor": {}
			}`,
			output: Flags{
				CommandLineFlags{
					Monitor: &MonitorCommandLineFlags{},
				},
			},
		},
		{
			input: `{
				"monitor": {
					"interval": 5
				}
			}`,
			output: Flags{
				CommandLineFlags{
					Monitor: &MonitorCommandLineFlags{
						Interval: ptr(Duration(5)),
					},
				},
			},
		},
		{
			input: `{
				"monitor": {
					"interval": "250ms"
				}
			}`,
			output: Flags{
				CommandLineFlags{
					Monitor: &MonitorCommandLineFlags{
						Interval: ptr(Duration(250 * time.Millisecond)),
					},
				},
			},
		},
		{
			input: `{
				"monitor": {
					"interval": "soon"
				}
			}`,
			err: true,
		},
		{
			input: `{
				"backend": "amdgpu",
				"thresholds": {
					"temperatureThreshold": 85.5,
					"throttlingLoad": 60,
					"dropFactor": 0.9
				}
			}`,
			output: Flags{
				CommandLineFlags{
					Backend: ptr("amdgpu"),
					Thresholds: &ThresholdCommandLineFlags{
						TemperatureThreshold: ptr(85.5),
						ThrottlingLoad:       ptr(60),
						DropFactor:           ptr(0.9),
					},
				},
			},
		},
		{
			input: `{
				"output": {
					"format": "json",
					"noColor": true
				}
			}`,
			output: Flags{
				CommandLineFlags{
					Output: &OutputCommandLineFlags{
						Format:  ptr("json"),
						NoColor: ptr(true),
					},
				},
			},
		},
	}

	for i, tc := range testCases {
		t.Run(fmt.Sprintf("test case %d", i), func(t *testing.T) {
			var output Flags
			err := json.Unmarshal([]byte(tc.input), &output)
			if tc.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.output, output)
		})
	}
}

func TestMarshalDuration(t *testing.T) {
	b, err := json.Marshal(Duration(1500 * time.Millisecond))
	require.NoError(t, err)
	require.Equal(t, `"1.5s"`, string(b))
}
