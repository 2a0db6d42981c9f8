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

package gpu

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/procfs/sysfs"
)

type amdgpuLib struct {
	root string
	fs   *sysfs.FS
}

var _ Manager = (*amdgpuLib)(nil)

// NewAMDGPUManager creates a new manager that reads AMD GPUs through the amdgpu
// kernel driver's sysfs interface mounted at sysfsRoot.
func NewAMDGPUManager(sysfsRoot string) Manager {
	return &amdgpuLib{root: sysfsRoot}
}

// Name returns the name of the backend
func (l *amdgpuLib) Name() string {
	return "amdgpu"
}

// Init opens the sysfs mount and checks that the amdgpu driver exposes its cards.
func (l *amdgpuLib) Init() error {
	fs, err := sysfs.NewFS(l.root)
	if err != nil {
		return fmt.Errorf("failed to open sysfs at %v: %w", l.root, err)
	}
	if _, err := amdgpuCards(fs, l.root); err != nil {
		return fmt.Errorf("failed to read amdgpu cards (is the amdgpu kernel driver loaded?): %w", err)
	}
	l.fs = &fs
	return nil
}

// Shutdown is a no-op for the amdgpu manager
func (l *amdgpuLib) Shutdown() error {
	l.fs = nil
	return nil
}

// GetDevices returns one device per DRM card driven by amdgpu
func (l *amdgpuLib) GetDevices() ([]Device, error) {
	cards, err := l.cards()
	if err != nil {
		return nil, err
	}

	var devices []Device
	for i, card := range cards {
		devices = append(devices, &amdgpuDevice{
			lib:   l,
			index: i,
			card:  card.Name,
			path:  filepath.Join(l.root, "class", "drm", card.Name, "device"),
		})
	}
	return devices, nil
}

func (l *amdgpuLib) cards() ([]sysfs.ClassDRMCardAMDGPUStats, error) {
	if l.fs == nil {
		return nil, fmt.Errorf("amdgpu manager is not initialized")
	}
	cards, err := amdgpuCards(*l.fs, l.root)
	if err != nil {
		return nil, fmt.Errorf("error reading amdgpu cards: %w", err)
	}
	return cards, nil
}

// amdgpuCards returns the statistics of the DRM cards bound to the amdgpu
// driver. Cards of other drivers are left out.
func amdgpuCards(fs sysfs.FS, root string) ([]sysfs.ClassDRMCardAMDGPUStats, error) {
	stats, err := fs.ClassDRMCardAMDGPUStats()
	if err != nil {
		return nil, err
	}

	var cards []sysfs.ClassDRMCardAMDGPUStats
	for _, card := range stats {
		card.Name = filepath.Base(card.Name)
		uevent, err := os.ReadFile(filepath.Join(root, "class", "drm", card.Name, "device", "uevent"))
		if err != nil {
			continue
		}
		for _, line := range strings.Split(string(uevent), "\n") {
			if strings.TrimSpace(line) == "DRIVER=amdgpu" {
				cards = append(cards, card)
				break
			}
		}
	}
	return cards, nil
}

// card returns the driver statistics of the named DRM card.
func (l *amdgpuLib) card(name string) (*sysfs.ClassDRMCardAMDGPUStats, error) {
	cards, err := l.cards()
	if err != nil {
		return nil, err
	}
	for i := range cards {
		if cards[i].Name == name {
			return &cards[i], nil
		}
	}
	return nil, fmt.Errorf("card %v is no longer present", name)
}
