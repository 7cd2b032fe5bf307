package platform

import (
	"encoding/json"
	"fmt"
)

type lsblkOutput struct {
	Blockdevices []lsblkDevice `json:"blockdevices"`
}

type lsblkDevice struct {
	Name     string        `json:"name"`
	Type     string        `json:"type"`
	PTType   *string       `json:"pttype"`
	PartType *string       `json:"parttype"`
	Children []lsblkDevice `json:"children"`
}

// parseLsblkTable reads `lsblk -J -o NAME,TYPE,PTTYPE,PARTTYPE <disk>` output.
// A disk without a partition table has a null PTTYPE, reported as "raw".
func parseLsblkTable(out []byte) (*PartitionTable, error) {
	var raw lsblkOutput
	if err := json.Unmarshal(out, &raw); err != nil {
		return nil, fmt.Errorf("parsing lsblk output: %w", err)
	}
	if len(raw.Blockdevices) == 0 {
		return nil, fmt.Errorf("lsblk returned no block devices")
	}

	dev := raw.Blockdevices[0]
	table := &PartitionTable{Style: "raw"}
	if dev.PTType != nil && *dev.PTType != "" {
		table.Style = *dev.PTType
	}
	for _, child := range dev.Children {
		if child.Type != "part" {
			continue
		}
		typeID := ""
		if child.PartType != nil {
			typeID = *child.PartType
		}
		table.TypeIDs = append(table.TypeIDs, typeID)
	}
	return table, nil
}
