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

package watch

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/require"
)

func TestSignals(t *testing.T) {
	sigs := Signals(syscall.SIGUSR1)
	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGUSR1))

	select {
	case s := <-sigs:
		require.Equal(t, syscall.SIGUSR1, s)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for signal")
	}
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("version: v1\n"), 0o600))

	watcher, err := Files(configFile)
	require.NoError(t, err)
	defer watcher.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(configFile, []byte("version: v1\nflags: {}\n"), 0o600))

	timeout := time.After(5 * time.Second)
	for {
		select {
		case event := <-watcher.Events:
			if IsChange(event, configFile) {
				return
			}
		case err := <-watcher.Errors:
			require.NoError(t, err)
		case <-timeout:
			t.Fatal("timed out waiting for config file change")
		}
	}
}

func TestFilesMissingDirectory(t *testing.T) {
	_, err := Files(filepath.Join(t.TempDir(), "missing", "config.yaml"))
	require.Error(t, err)
}

func TestIsChange(t *testing.T) {
	testCases := []struct {
		description string
		event       fsnotify.Event
		expected    bool
	}{
		{
			description: "write",
			event:       fsnotify.Event{Name: "/etc/gtm/config.yaml", Op: fsnotify.Write},
			expected:    true,
		},
		{
			description: "create of the same path",
			event:       fsnotify.Event{Name: "/etc/gtm/./config.yaml", Op: fsnotify.Create},
			expected:    true,
		},
		{
			description: "chmod",
			event:       fsnotify.Event{Name: "/etc/gtm/config.yaml", Op: fsnotify.Chmod},
		},
		{
			description: "other file",
			event:       fsnotify.Event{Name: "/etc/gtm/config.yaml.swp", Op: fsnotify.Write},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			require.Equal(t, tc.expected, IsChange(tc.event, "/etc/gtm/config.yaml"))
		})
	}
}
