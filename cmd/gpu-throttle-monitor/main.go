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

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	cli "github.com/urfave/cli/v2"
	"k8s.io/klog/v2"

	spec "github.com/NVIDIA/gpu-throttle-monitor/api/config/v1"
	"github.com/NVIDIA/gpu-throttle-monitor/internal/gpu"
	"github.com/NVIDIA/gpu-throttle-monitor/internal/info"
	"github.com/NVIDIA/gpu-throttle-monitor/internal/logger"
	"github.com/NVIDIA/gpu-throttle-monitor/internal/monitor"
	"github.com/NVIDIA/gpu-throttle-monitor/internal/report"
	"github.com/NVIDIA/gpu-throttle-monitor/internal/throttle"
	"github.com/NVIDIA/gpu-throttle-monitor/internal/watch"
)

func main() {
	loggingConfig := logger.NewConfig()

	c := cli.NewApp()
	c.Name = "gpu-throttle-monitor"
	c.Usage = "detect thermal and power throttling of NVIDIA and AMD GPUs"
	c.Version = info.GetVersionString()
	c.Flags = append(flags(), loggingConfig.Flags()...)
	c.Before = func(*cli.Context) error {
		return loggingConfig.Apply()
	}
	c.Action = func(ctx *cli.Context) error {
		return start(ctx, c.Flags)
	}

	if err := c.Run(os.Args); err != nil {
		klog.Error(err)
		os.Exit(1)
	}
}

func flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    spec.FlagBackend,
			Value:   spec.DefaultBackend,
			Usage:   "the GPU backend to read metrics from:\n\t\t[auto | nvml | amdgpu]",
			EnvVars: []string{"GTM_BACKEND"},
		},
		&cli.StringFlag{
			Name:    spec.FlagSysfsRoot,
			Value:   spec.DefaultSysfsRoot,
			Usage:   "the mount point of sysfs used by the amdgpu backend",
			EnvVars: []string{"GTM_SYSFS_ROOT"},
		},
		&cli.StringFlag{
			Name:      spec.FlagConfigFile,
			Usage:     "the path to a config file as an alternative to command line options or environment variables",
			TakesFile: true,
			EnvVars:   []string{"GTM_CONFIG_FILE"},
		},
		&cli.DurationFlag{
			Name:    spec.FlagInterval,
			Value:   spec.DefaultInterval,
			Usage:   "the time between two polls of the GPUs",
			EnvVars: []string{"GTM_INTERVAL"},
		},
		&cli.BoolFlag{
			Name:    spec.FlagOneshot,
			Usage:   "poll the GPUs once and exit",
			EnvVars: []string{"GTM_ONESHOT"},
		},
		&cli.Float64Flag{
			Name:    spec.FlagTemperatureThreshold,
			Value:   spec.DefaultTemperatureThreshold,
			Usage:   "the temperature in °C at or above which a GPU is considered throttling",
			EnvVars: []string{"GTM_TEMPERATURE_THRESHOLD"},
		},
		&cli.IntFlag{
			Name:    spec.FlagMonitoringLoad,
			Value:   spec.DefaultMonitoringLoad,
			Usage:   "the GPU load in percent at or above which metrics are printed",
			EnvVars: []string{"GTM_MONITORING_LOAD"},
		},
		&cli.IntFlag{
			Name:    spec.FlagThrottlingLoad,
			Value:   spec.DefaultThrottlingLoad,
			Usage:   "the GPU load in percent at or above which the core clock is checked",
			EnvVars: []string{"GTM_THROTTLING_LOAD"},
		},
		&cli.Float64Flag{
			Name:    spec.FlagDropFactor,
			Value:   spec.DefaultDropFactor,
			Usage:   "the share of the recent mean core clock at or below which a reading counts as a drop",
			EnvVars: []string{"GTM_DROP_FACTOR"},
		},
		&cli.IntFlag{
			Name:    spec.FlagPersistence,
			Value:   spec.DefaultPersistence,
			Usage:   "the number of consecutive drops before a GPU is reported as throttling",
			EnvVars: []string{"GTM_PERSISTENCE"},
		},
		&cli.IntFlag{
			Name:    spec.FlagMaxHistory,
			Value:   spec.DefaultMaxHistory,
			Usage:   "the number of core clock readings kept per GPU",
			EnvVars: []string{"GTM_MAX_HISTORY"},
		},
		&cli.IntFlag{
			Name:    spec.FlagHistoryWindow,
			Value:   spec.DefaultHistoryWindow,
			Usage:   "the number of previous readings averaged by the drop check",
			EnvVars: []string{"GTM_HISTORY_WINDOW"},
		},
		&cli.Float64Flag{
			Name:    spec.FlagRatedClockFraction,
			Value:   spec.DefaultRatedClockFraction,
			Usage:   "the share of the rated core clock below which a loaded GPU is considered throttling",
			EnvVars: []string{"GTM_RATED_CLOCK_FRACTION"},
		},
		&cli.StringFlag{
			Name:    spec.FlagOutputFormat,
			Value:   spec.DefaultOutputFormat,
			Usage:   "the format of the status output:\n\t\t[text | json]",
			EnvVars: []string{"GTM_OUTPUT_FORMAT"},
		},
		&cli.BoolFlag{
			Name:    spec.FlagNoColor,
			Usage:   "disable coloured text output (NO_COLOR is honoured as well)",
			EnvVars: []string{"GTM_NO_COLOR"},
		},
	}
}

func start(c *cli.Context, flags []cli.Flag) error {
	r := &runner{
		configFile: c.String(spec.FlagConfigFile),
		newManager: gpu.NewManager,
		stdout:     os.Stdout,
	}

	if r.configFile != "" {
		klog.Info("Starting FS watcher.")
		watcher, err := watch.Files(r.configFile)
		if err != nil {
			return fmt.Errorf("failed to create FS watcher: %w", err)
		}
		defer watcher.Close()
		r.events, r.watchErrors = watcher.Events, watcher.Errors
	}

	klog.Info("Starting OS watcher.")
	r.sigs = watch.Signals(syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	for {
		restart, err := r.run(c, flags)
		if err != nil {
			return err
		}
		if !restart {
			return nil
		}
	}
}

// runner holds what stays the same across reloads.
type runner struct {
	configFile  string
	sigs        chan os.Signal
	events      chan fsnotify.Event
	watchErrors chan error
	newManager  func(*spec.Config) (gpu.Manager, error)
	stdout      io.Writer
}

// run starts monitoring with a freshly loaded config and blocks until the
// monitor exits, a reload is requested or a termination signal is received.
// It returns whether monitoring should be restarted.
func (r *runner) run(c *cli.Context, flags []cli.Flag) (bool, error) {
	config, err := loadConfig(c, flags)
	if err != nil {
		return false, err
	}

	manager, err := r.newManager(config)
	if err != nil {
		return false, fmt.Errorf("failed to create GPU manager: %w", err)
	}
	if err := manager.Init(); err != nil {
		logInstallHints(*config.Flags.Backend, err)
		return false, fmt.Errorf("failed to initialize GPU manager: %w", err)
	}
	defer func() {
		if err := manager.Shutdown(); err != nil {
			klog.Warningf("Failed to shut down the %v backend: %v", manager.Name(), err)
		}
	}()

	m, err := newMonitor(config, manager, r.stdout)
	if err != nil {
		return false, err
	}

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- m.Run(ctx)
	}()

	stop := func() {
		cancel()
		<-done
	}

	for {
		select {
		case err := <-done:
			return false, err

		case event := <-r.events:
			if watch.IsChange(event, r.configFile) {
				klog.Infof("inotify: %s changed, reloading.", event.Name)
				stop()
				return true, nil
			}

		case err := <-r.watchErrors:
			klog.Warningf("inotify: %v", err)

		case s := <-r.sigs:
			switch s {
			case syscall.SIGHUP:
				klog.Info("Received SIGHUP, reloading.")
				stop()
				return true, nil
			default:
				klog.Infof("Received signal %q, shutting down.", s)
				stop()
				fmt.Fprintln(r.stdout, "Monitoring stopped")
				return false, nil
			}
		}
	}
}

func loadConfig(c *cli.Context, flags []cli.Flag) (*spec.Config, error) {
	config, err := spec.NewConfig(c, flags)
	if err != nil {
		return nil, fmt.Errorf("unable to finalize config: %w", err)
	}

	configJSON, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to JSON: %w", err)
	}
	klog.Infof("\nRunning with config:\n%v", string(configJSON))

	return config, nil
}

func newMonitor(config *spec.Config, manager gpu.Manager, stdout io.Writer) (*monitor.Monitor, error) {
	output := config.Flags.Output
	reporter, err := report.New(stdout, *output.Format, !*output.NoColor)
	if err != nil {
		return nil, fmt.Errorf("failed to create reporter: %w", err)
	}

	m, err := monitor.New(
		monitor.WithManager(manager),
		monitor.WithDetector(throttle.NewDetector(throttle.NewThresholds(config))),
		monitor.WithReporter(reporter),
		monitor.WithInterval(time.Duration(*config.Flags.Monitor.Interval)),
		monitor.WithOneshot(*config.Flags.Monitor.Oneshot),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create monitor: %w", err)
	}
	return m, nil
}

// logInstallHints tells the user what is needed for the selected backend.
func logInstallHints(backend string, err error) {
	if errors.Is(err, gpu.ErrNoDevices) {
		klog.Error("No compatible GPU was found.")
	}
	if backend == spec.BackendAuto || backend == spec.BackendNVML {
		klog.Error("For NVIDIA GPUs, install the NVIDIA driver; it provides NVML (libnvidia-ml.so.1).")
		klog.Error("You can check that the driver is working with `nvidia-smi`.")
	}
	if backend == spec.BackendAuto || backend == spec.BackendAMDGPU {
		klog.Error("For AMD GPUs, load the amdgpu kernel driver and make sure sysfs is mounted (see --sysfs-root).")
		klog.Error("You can check that the driver is loaded with `lsmod | grep amdgpu`.")
	}
}
