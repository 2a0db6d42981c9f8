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
	"io"
	"os"
	"time"

	cli "github.com/urfave/cli/v2"
	"sigs.k8s.io/yaml"
)

// Version indicates the version of the 'Config' struct used to hold configuration information.
const Version = "v1"

// Config is a versioned struct used to hold configuration information.
type Config struct {
	Version string `json:"version"         yaml:"version"`
	Flags   Flags  `json:"flags,omitempty" yaml:"flags,omitempty"`
}

// NewConfig builds out a Config struct from a config file (or command line flags).
// The data stored in the config will be populated in order of precedence from
// (1) command line, (2) environment variable, (3) config file.
func NewConfig(c *cli.Context, flags []cli.Flag) (*Config, error) {
	config := &Config{Version: Version}

	if configFile := c.String(FlagConfigFile); configFile != "" {
		var err error
		config, err = parseConfig(configFile)
		if err != nil {
			return nil, fmt.Errorf("unable to parse config file: %v", err)
		}
	}

	config.Flags.UpdateFromCLIFlags(c, flags)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// parseConfig parses a config file as either YAML of JSON and unmarshals it into a Config struct.
func parseConfig(configFile string) (*Config, error) {
	reader, err := os.Open(configFile)
	if err != nil {
		return nil, fmt.Errorf("error opening config file: %v", err)
	}
	defer reader.Close()

	config, err := parseConfigFrom(reader)
	if err != nil {
		return nil, fmt.Errorf("error parsing config file: %v", err)
	}

	return config, nil
}

func parseConfigFrom(reader io.Reader) (*Config, error) {
	configYaml, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read error: %v", err)
	}

	var config Config
	err = yaml.Unmarshal(configYaml, &config)
	if err != nil {
		return nil, fmt.Errorf("unmarshal error: %v", err)
	}

	if config.Version == "" {
		return nil, fmt.Errorf("missing version field")
	}

	if config.Version != Version {
		return nil, fmt.Errorf("unknown version: %v", config.Version)
	}

	return &config, nil
}

// Validate checks that all flags hold values the monitor can run with.
// Flags left unset are not checked.
func (c *Config) Validate() error {
	f := c.Flags

	if f.Backend != nil {
		switch *f.Backend {
		case BackendAuto, BackendNVML, BackendAMDGPU:
		default:
			return fmt.Errorf("invalid --%v option: %v", FlagBackend, *f.Backend)
		}
	}

	if m := f.Monitor; m != nil {
		if m.Interval != nil && time.Duration(*m.Interval) <= 0 {
			return fmt.Errorf("--%v must be positive, got %v", FlagInterval, *m.Interval)
		}
	}

	if t := f.Thresholds; t != nil {
		if t.TemperatureThreshold != nil && *t.TemperatureThreshold <= 0 {
			return fmt.Errorf("--%v must be positive, got %v", FlagTemperatureThreshold, *t.TemperatureThreshold)
		}
		for name, load := range map[string]*int{
			FlagMonitoringLoad: t.MonitoringLoad,
			FlagThrottlingLoad: t.ThrottlingLoad,
		} {
			if load != nil && (*load < 0 || *load > 100) {
				return fmt.Errorf("--%v must be a percentage in [0, 100], got %v", name, *load)
			}
		}
		for name, fraction := range map[string]*float64{
			FlagDropFactor:         t.DropFactor,
			FlagRatedClockFraction: t.RatedClockFraction,
		} {
			if fraction != nil && (*fraction <= 0 || *fraction > 1) {
				return fmt.Errorf("--%v must be in (0, 1], got %v", name, *fraction)
			}
		}
		for name, count := range map[string]*int{
			FlagPersistence:   t.Persistence,
			FlagMaxHistory:    t.MaxHistory,
			FlagHistoryWindow: t.HistoryWindow,
		} {
			if count != nil && *count < 1 {
				return fmt.Errorf("--%v must be at least 1, got %v", name, *count)
			}
		}
		if t.HistoryWindow != nil && t.MaxHistory != nil && *t.HistoryWindow >= *t.MaxHistory {
			return fmt.Errorf("--%v (%v) must be smaller than --%v (%v)", FlagHistoryWindow, *t.HistoryWindow, FlagMaxHistory, *t.MaxHistory)
		}
	}

	if o := f.Output; o != nil && o.Format != nil {
		switch *o.Format {
		case OutputFormatText, OutputFormatJSON:
		default:
			return fmt.Errorf("invalid --%v option: %v", FlagOutputFormat, *o.Format)
		}
	}

	return nil
}
