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
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Signals returns a channel that receives the given OS signals.
func Signals(sigs ...os.Signal) chan os.Signal {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, sigs...)

	return sigChan
}

// Files creates a watcher for the given files. The parent directory of each
// file is watched so that files replaced by editors or config management are
// still picked up; use IsChange to filter the events.
func Files(files ...string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, f := range files {
		dir := filepath.Dir(filepath.Clean(f))
		err = watcher.Add(dir)
		if err != nil {
			watcher.Close()
			return nil, fmt.Errorf("failed to watch %v: %w", dir, err)
		}
	}

	return watcher, nil
}

// IsChange returns whether the event modified the contents of file.
func IsChange(event fsnotify.Event, file string) bool {
	if filepath.Clean(event.Name) != filepath.Clean(file) {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
