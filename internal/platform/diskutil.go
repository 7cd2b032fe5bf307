package platform

import (
	"fmt"
	"strconv"
	"strings"

	"howett.net/plist"
)

type diskutilList struct {
	AllDisksAndPartitions []diskutilDisk `plist:"AllDisksAndPartitions"`
}

type diskutilDisk struct {
	DeviceIdentifier string              `plist:"DeviceIdentifier"`
	Content          string              `plist:"Content"`
	Size             uint64              `plist:"Size"`
	VolumeName       string              `plist:"VolumeName"`
	MountPoint       string              `plist:"MountPoint"`
	Partitions       []diskutilPartition `plist:"Partitions"`
}

type diskutilPartition struct {
	DeviceIdentifier string `plist:"DeviceIdentifier"`
	Content          string `plist:"Content"`
	Size             uint64 `plist:"Size"`
	VolumeName       string `plist:"VolumeName"`
	MountPoint       string `plist:"MountPoint"`
}

type diskutilInfo struct {
	DeviceIdentifier string `plist:"DeviceIdentifier"`
	MediaName        string `plist:"MediaName"`
	BusProtocol      string `plist:"BusProtocol"`
	Removable        bool   `plist:"Removable"`
	RemovableMedia   bool   `plist:"RemovableMedia"`
	Ejectable        bool   `plist:"Ejectable"`
	TotalSize        uint64 `plist:"TotalSize"`
}

// diskutil reports the ESP by content name rather than by GUID.
const diskutilEFIContent = "EFI"

const efiSystemPartitionType = "c12a7328-f81f-11d2-ba4b-00a0c93ec93b"

func parseDiskutilList(out []byte) (*diskutilList, error) {
	var list diskutilList
	if _, err := plist.Unmarshal(out, &list); err != nil {
		return nil, fmt.Errorf("parsing diskutil list: %w", err)
	}
	return &list, nil
}

func parseDiskutilInfo(out []byte) (*diskutilInfo, error) {
	var info diskutilInfo
	if _, err := plist.Unmarshal(out, &info); err != nil {
		return nil, fmt.Errorf("parsing diskutil info: %w", err)
	}
	return &info, nil
}

// diskNumber extracts N from "diskN".
func diskNumber(identifier string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(identifier, "disk"))
	if err != nil {
		return -1
	}
	return n
}

// partitions returns the disk's partitions. A disk formatted without a
// partition table carries its volume on the whole device.
func (d diskutilDisk) partitions() []Partition {
	if len(d.Partitions) == 0 && d.MountPoint != "" {
		return []Partition{{
			Name:       d.DeviceIdentifier,
			MountPoint: d.MountPoint,
			Label:      d.VolumeName,
			FileSystem: d.Content,
		}}
	}
	parts := make([]Partition, 0, len(d.Partitions))
	for _, p := range d.Partitions {
		parts = append(parts, Partition{
			Name:       p.DeviceIdentifier,
			MountPoint: p.MountPoint,
			Label:      p.VolumeName,
			FileSystem: p.Content,
		})
	}
	return parts
}

func (d diskutilDisk) table() *PartitionTable {
	table := &PartitionTable{Style: d.Content}
	if len(d.Partitions) == 0 && d.Content == "" {
		table.Style = "raw"
	}
	for _, p := range d.Partitions {
		typeID := p.Content
		if p.Content == diskutilEFIContent {
			typeID = efiSystemPartitionType
		}
		table.TypeIDs = append(table.TypeIDs, typeID)
	}
	return table
}
