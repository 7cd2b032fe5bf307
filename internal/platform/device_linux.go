//go:build linux
// +build linux

package platform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jaypipes/ghw"
	"github.com/jaypipes/ghw/pkg/block"
	"github.com/shirou/gopsutil/v3/disk"
)

type linuxInventory struct {
	runner Runner
}

func newInventory(runner Runner) Inventory {
	return &linuxInventory{runner: runner}
}

func (inv *linuxInventory) RemovableDisks() ([]Disk, error) {
	info, err := block.New(ghw.WithDisableTools())
	if err != nil {
		return nil, fmt.Errorf("reading block devices: %w", err)
	}

	var mountErr error
	mounts, err := mountTable()
	if err != nil {
		mountErr = fmt.Errorf("reading mount table: %w", err)
	}

	var disks []Disk
	for _, d := range info.Disks {
		if !isRemovable(d) {
			continue
		}

		dev := Disk{
			Name:      d.Name,
			Model:     strings.TrimSpace(d.Model),
			Serial:    d.SerialNumber,
			Bus:       busName(d),
			SizeBytes: d.SizeBytes,
		}
		if dev.Model == "" || dev.Model == "unknown" {
			dev.Model = strings.TrimSpace(d.Vendor + " " + d.Name)
		}
		if mountErr != nil {
			dev.ProbeErrors = append(dev.ProbeErrors, mountErr)
		}

		for _, p := range d.Partitions {
			part := Partition{
				Name:       p.Name,
				MountPoint: p.MountPoint,
				Label:      p.FilesystemLabel,
				FileSystem: p.Type,
			}
			if m, ok := mounts["/dev/"+p.Name]; ok {
				if part.MountPoint == "" {
					part.MountPoint = m.Mountpoint
				}
				if part.FileSystem == "" || part.FileSystem == "unknown" {
					part.FileSystem = m.Fstype
				}
			}
			if part.Label == "unknown" {
				part.Label = ""
			}
			dev.Partitions = append(dev.Partitions, part)
		}
		disks = append(disks, dev)
	}

	sort.Slice(disks, func(i, j int) bool { return disks[i].Name < disks[j].Name })
	for i := range disks {
		disks[i].Index = i
	}
	return disks, nil
}

func (inv *linuxInventory) PartitionTable(d Disk) (*PartitionTable, error) {
	out, err := inv.runner.RunOutput("lsblk", "-J", "-o", "NAME,TYPE,PTTYPE,PARTTYPE", "/dev/"+d.Name)
	if err != nil {
		return nil, err
	}
	return parseLsblkTable([]byte(out))
}

// isRemovable mirrors the kernel's removable flag, and also accepts fixed
// USB disks such as external SSDs.
func isRemovable(d *block.Disk) bool {
	return d.IsRemovable || strings.Contains(d.BusPath, "usb")
}

func busName(d *block.Disk) string {
	if strings.Contains(d.BusPath, "usb") {
		return "USB"
	}
	return d.StorageController.String()
}

func mountTable() (map[string]disk.PartitionStat, error) {
	partitions, err := disk.Partitions(false)
	if err != nil {
		return nil, err
	}
	mounts := make(map[string]disk.PartitionStat, len(partitions))
	for _, p := range partitions {
		if _, seen := mounts[p.Device]; !seen {
			mounts[p.Device] = p
		}
	}
	return mounts, nil
}
