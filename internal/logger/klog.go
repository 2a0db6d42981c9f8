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
	"flag"
	"fmt"
	"strconv"

	cli "github.com/urfave/cli/v2"
	"k8s.io/klog/v2"
)

// Config holds the klog settings exposed on the command line.
type Config struct {
	verbosity int
}

// NewConfig creates a logging config with klog's defaults.
func NewConfig() *Config {
	return &Config{}
}

// Flags returns the command line flags for the logging config.
func (c *Config) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "v",
			Usage:       "number for the log level verbosity",
			Destination: &c.verbosity,
			EnvVars:     []string{"GTM_VERBOSITY"},
		},
	}
}

// Apply configures klog from the parsed flags.
func (c *Config) Apply() error {
	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)

	if err := klogFlags.Set("v", strconv.Itoa(c.verbosity)); err != nil {
		return fmt.Errorf("failed to set log verbosity: %w", err)
	}
	return nil
}
