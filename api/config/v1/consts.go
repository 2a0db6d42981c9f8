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

import "time"

// Constants representing the supported GPU backends
const (
	BackendAuto   = "auto"
	BackendNVML   = "nvml"
	BackendAMDGPU = "amdgpu"
)

// Constants representing the supported output formats
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
)

// Default values for the command line flags
const (
	DefaultBackend              = BackendAuto
	DefaultSysfsRoot            = "/sys"
	DefaultInterval             = time.Second
	DefaultTemperatureThreshold = 90.0
	DefaultMonitoringLoad       = 30
	DefaultThrottlingLoad       = 70
	DefaultDropFactor           = 0.85
	DefaultPersistence          = 3
	DefaultMaxHistory           = 20
	DefaultHistoryWindow        = 5
	DefaultRatedClockFraction   = 0.6
	DefaultOutputFormat         = OutputFormatText
)

// Command line flag names - Common flags
const (
	FlagBackend    = "backend"
	FlagSysfsRoot  = "sysfs-root"
	FlagConfigFile = "config-file"
)

// Command line flag names - Monitor specific flags
const (
	FlagInterval = "interval"
	FlagOneshot  = "oneshot"
)

// Command line flag names - Threshold specific flags
const (
	FlagTemperatureThreshold = "temperature-threshold"
	FlagMonitoringLoad       = "monitoring-load"
	FlagThrottlingLoad       = "throttling-load"
	FlagDropFactor           = "drop-factor"
	FlagPersistence          = "persistence"
	FlagMaxHistory           = "max-history"
	FlagHistoryWindow        = "history-window"
	FlagRatedClockFraction   = "rated-clock-fraction"
)

// Command line flag names - Output specific flags
const (
	FlagOutputFormat = "output-format"
	FlagNoColor      = "no-color"
)
