//go:build windows
// +build windows

package platform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yusufpapurcu/wmi"
)

const storageNamespace = `root\Microsoft\Windows\Storage`

type msftDisk struct {
	Number         uint32
	FriendlyName   string
	Model          string
	SerialNumber   string
	Size           uint64
	BusType        uint16
	PartitionStyle uint16
}

type msftPartition struct {
	DiskNumber      uint32
	PartitionNumber uint32
	DriveLetter     uint16
	GptType         string
}

type msftVolume struct {
	DriveLetter     uint16
	FileSystemLabel string
	FileSystem      string
}

type windowsInventory struct{}

func newInventory(runner Runner) Inventory {
	return &windowsInventory{}
}

func query(q string, dst interface{}) error {
	return wmi.Query(q, dst, nil, storageNamespace)
}

func (inv *windowsInventory) RemovableDisks() ([]Disk, error) {
	var disks []msftDisk
	if err := query("SELECT Number, FriendlyName, Model, SerialNumber, Size, BusType, PartitionStyle FROM MSFT_Disk", &disks); err != nil {
		return nil, fmt.Errorf("querying MSFT_Disk: %w", err)
	}

	var volumeErr error
	volumes := make(map[uint16]msftVolume)
	var vols []msftVolume
	if err := query("SELECT DriveLetter, FileSystemLabel, FileSystem FROM MSFT_Volume", &vols); err != nil {
		volumeErr = fmt.Errorf("querying MSFT_Volume: %w", err)
	}
	for _, v := range vols {
		if v.DriveLetter != 0 {
			volumes[v.DriveLetter] = v
		}
	}

	var result []Disk
	for _, d := range disks {
		if !isRemovableBus(d.BusType) {
			continue
		}

		dev := Disk{
			Index:     int(d.Number),
			Name:      fmt.Sprintf("PhysicalDrive%d", d.Number),
			Model:     strings.TrimSpace(d.FriendlyName),
			Serial:    strings.TrimSpace(d.SerialNumber),
			Bus:       busTypeName(d.BusType),
			SizeBytes: d.Size,
		}
		if dev.Model == "" {
			dev.Model = strings.TrimSpace(d.Model)
		}
		if volumeErr != nil {
			dev.ProbeErrors = append(dev.ProbeErrors, volumeErr)
		}

		parts, err := inv.partitions(d.Number)
		if err != nil {
			dev.ProbeErrors = append(dev.ProbeErrors, err)
		}
		for _, p := range parts {
			part := Partition{
				Name:       fmt.Sprintf("Disk %d Partition %d", p.DiskNumber, p.PartitionNumber),
				MountPoint: driveRoot(p.DriveLetter),
			}
			if v, ok := volumes[p.DriveLetter]; ok && part.MountPoint != "" {
				part.Label = v.FileSystemLabel
				part.FileSystem = v.FileSystem
			}
			dev.Partitions = append(dev.Partitions, part)
		}
		result = append(result, dev)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Index < result[j].Index })
	return result, nil
}

func (inv *windowsInventory) PartitionTable(d Disk) (*PartitionTable, error) {
	var disks []msftDisk
	if err := query(fmt.Sprintf("SELECT Number, PartitionStyle FROM MSFT_Disk WHERE Number = %d", d.Index), &disks); err != nil {
		return nil, fmt.Errorf("querying partition style: %w", err)
	}
	if len(disks) == 0 {
		return nil, fmt.Errorf("disk %d is no longer present", d.Index)
	}

	table := &PartitionTable{Style: partitionStyleName(disks[0].PartitionStyle)}
	parts, err := inv.partitions(uint32(d.Index))
	if err != nil {
		return nil, err
	}
	for _, p := range parts {
		table.TypeIDs = append(table.TypeIDs, p.GptType)
	}
	return table, nil
}

func (inv *windowsInventory) partitions(disk uint32) ([]msftPartition, error) {
	var parts []msftPartition
	q := fmt.Sprintf("SELECT DiskNumber, PartitionNumber, DriveLetter, GptType FROM MSFT_Partition WHERE DiskNumber = %d", disk)
	if err := query(q, &parts); err != nil {
		return nil, fmt.Errorf("querying partitions of disk %d: %w", disk, err)
	}
	sort.Slice(parts, func(i, j int) bool { return parts[i].PartitionNumber < parts[j].PartitionNumber })
	return parts, nil
}
