//go:build darwin
// +build darwin

package platform

import (
	"fmt"
	"strings"
)

type macInventory struct {
	runner Runner
}

func newInventory(runner Runner) Inventory {
	return &macInventory{runner: runner}
}

func (inv *macInventory) RemovableDisks() ([]Disk, error) {
	output, err := inv.runner.RunOutput("diskutil", "list", "-plist", "external", "physical")
	if err != nil {
		return nil, err
	}
	list, err := parseDiskutilList([]byte(output))
	if err != nil {
		return nil, err
	}

	var disks []Disk
	for _, d := range list.AllDisksAndPartitions {
		dev := Disk{
			Index:      diskNumber(d.DeviceIdentifier),
			Name:       d.DeviceIdentifier,
			Model:      d.DeviceIdentifier,
			SizeBytes:  d.Size,
			Partitions: d.partitions(),
		}

		info, err := inv.info(d.DeviceIdentifier)
		if err != nil {
			dev.ProbeErrors = append(dev.ProbeErrors, err)
			disks = append(disks, dev)
			continue
		}
		if !info.Removable && !info.RemovableMedia && !info.Ejectable && !strings.EqualFold(info.BusProtocol, "USB") {
			continue
		}
		if info.MediaName != "" {
			dev.Model = info.MediaName
		}
		if info.TotalSize > 0 {
			dev.SizeBytes = info.TotalSize
		}
		dev.Bus = info.BusProtocol
		disks = append(disks, dev)
	}
	return disks, nil
}

func (inv *macInventory) PartitionTable(d Disk) (*PartitionTable, error) {
	output, err := inv.runner.RunOutput("diskutil", "list", "-plist", d.Name)
	if err != nil {
		return nil, err
	}
	list, err := parseDiskutilList([]byte(output))
	if err != nil {
		return nil, err
	}
	for _, entry := range list.AllDisksAndPartitions {
		if entry.DeviceIdentifier == d.Name {
			return entry.table(), nil
		}
	}
	return nil, fmt.Errorf("diskutil did not report %s", d.Name)
}

func (inv *macInventory) info(identifier string) (*diskutilInfo, error) {
	output, err := inv.runner.RunOutput("diskutil", "info", "-plist", identifier)
	if err != nil {
		return nil, err
	}
	return parseDiskutilInfo([]byte(output))
}
