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
	"fmt"

	cli "github.com/urfave/cli/v2"
)

// prt returns a reference to whatever type is passed into it
func ptr[T any](x T) *T {
	return &x
}

// updateFromCLIFlag conditionally updates the config flag at 'pflag' to the value of the CLI flag with name 'flagName'
func updateFromCLIFlag[T any](pflag **T, c *cli.Context, flagName string) {
	if c.IsSet(flagName) || *pflag == (*T)(nil) {
		switch flag := any(pflag).(type) {
		case **string:
			*flag = ptr(c.String(flagName))
		case **bool:
			*flag = ptr(c.Bool(flagName))
		case **int:
			*flag = ptr(c.Int(flagName))
		case **float64:
			*flag = ptr(c.Float64(flagName))
		case **Duration:
			*flag = ptr(Duration(c.Duration(flagName)))
		default:
			panic(fmt.Errorf("unsupported flag type for %v: %T", flagName, flag))
		}
	}
}

// Flags holds the full list of flags used to configure the monitor.
type Flags struct {
	CommandLineFlags
}

// CommandLineFlags holds the list of command line flags used to configure the monitor.
type CommandLineFlags struct {
	Backend    *string                    `json:"backend"              yaml:"backend"`
	SysfsRoot  *string                    `json:"sysfsRoot,omitempty"  yaml:"sysfsRoot,omitempty"`
	Monitor    *MonitorCommandLineFlags   `json:"monitor,omitempty"    yaml:"monitor,omitempty"`
	Thresholds *ThresholdCommandLineFlags `json:"thresholds,omitempty" yaml:"thresholds,omitempty"`
	Output     *OutputCommandLineFlags    `json:"output,omitempty"     yaml:"output,omitempty"`
}

// MonitorCommandLineFlags holds the list of command line flags controlling the polling loop.
type MonitorCommandLineFlags struct {
	Interval *Duration `json:"interval" yaml:"interval"`
	Oneshot  *bool     `json:"oneshot"  yaml:"oneshot"`
}

// ThresholdCommandLineFlags holds the thresholds used to detect throttling.
type ThresholdCommandLineFlags struct {
	// TemperatureThreshold is the temperature (°C) at which throttling detection starts.
	TemperatureThreshold *float64 `json:"temperatureThreshold" yaml:"temperatureThreshold"`
	// MonitoringLoad is the GPU load (%) required to print metrics.
	MonitoringLoad *int `json:"monitoringLoad" yaml:"monitoringLoad"`
	// ThrottlingLoad is the GPU load (%) required to evaluate the core clock.
	ThrottlingLoad *int `json:"throttlingLoad" yaml:"throttlingLoad"`
	// DropFactor is the relative core clock drop threshold (0.85 is a 15% drop).
	DropFactor *float64 `json:"dropFactor" yaml:"dropFactor"`
	// Persistence is the number of consecutive drops required to report throttling.
	Persistence *int `json:"persistence" yaml:"persistence"`
	// MaxHistory is the number of core clock readings kept per GPU.
	MaxHistory *int `json:"maxHistory" yaml:"maxHistory"`
	// HistoryWindow is the number of previous readings averaged for the drop check.
	HistoryWindow *int `json:"historyWindow" yaml:"historyWindow"`
	// RatedClockFraction is the share of the rated core clock below which a loaded GPU is throttling.
	RatedClockFraction *float64 `json:"ratedClockFraction" yaml:"ratedClockFraction"`
}

// OutputCommandLineFlags holds the list of command line flags controlling console output.
type OutputCommandLineFlags struct {
	Format  *string `json:"format"  yaml:"format"`
	NoColor *bool   `json:"noColor" yaml:"noColor"`
}

// UpdateFromCLIFlags updates Flags from settings in the cli Flags if they are set.
func (f *Flags) UpdateFromCLIFlags(c *cli.Context, flags []cli.Flag) {
	for _, flag := range flags {
		for _, n := range flag.Names() {
			// Common flags
			switch n {
			case FlagBackend:
				updateFromCLIFlag(&f.Backend, c, n)
			case FlagSysfsRoot:
				updateFromCLIFlag(&f.SysfsRoot, c, n)
			}
			// Monitor specific flags
			if f.Monitor == nil {
				f.Monitor = &MonitorCommandLineFlags{}
			}
			switch n {
			case FlagInterval:
				updateFromCLIFlag(&f.Monitor.Interval, c, n)
			case FlagOneshot:
				updateFromCLIFlag(&f.Monitor.Oneshot, c, n)
			}
			// Threshold specific flags
			if f.Thresholds == nil {
				f.Thresholds = &ThresholdCommandLineFlags{}
			}
			switch n {
			case FlagTemperatureThreshold:
				updateFromCLIFlag(&f.Thresholds.TemperatureThreshold, c, n)
			case FlagMonitoringLoad:
				updateFromCLIFlag(&f.Thresholds.MonitoringLoad, c, n)
			case FlagThrottlingLoad:
				updateFromCLIFlag(&f.Thresholds.ThrottlingLoad, c, n)
			case FlagDropFactor:
				updateFromCLIFlag(&f.Thresholds.DropFactor, c, n)
			case FlagPersistence:
				updateFromCLIFlag(&f.Thresholds.Persistence, c, n)
			case FlagMaxHistory:
				updateFromCLIFlag(&f.Thresholds.MaxHistory, c, n)
			case FlagHistoryWindow:
				updateFromCLIFlag(&f.Thresholds.HistoryWindow, c, n)
			case FlagRatedClockFraction:
				updateFromCLIFlag(&f.Thresholds.RatedClockFraction, c, n)
			}
			// Output specific flags
			if f.Output == nil {
				f.Output = &OutputCommandLineFlags{}
			}
			switch n {
			case FlagOutputFormat:
				updateFromCLIFlag(&f.Output.Format, c, n)
			case FlagNoColor:
				updateFromCLIFlag(&f.Output.NoColor, c, n)
			}
		}
	}
}
