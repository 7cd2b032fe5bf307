package platform

import "errors"

// Disk is a removable physical disk as reported by the platform inventory.
type Disk struct {
	Index      int
	Name       string
	Model      string
	Serial     string
	Bus        string
	SizeBytes  uint64
	Partitions []Partition

	// ProbeErrors collects per-disk lookups that failed while the rest of the
	// record could still be built.
	ProbeErrors []error
}

// Partition is a child partition of a Disk. MountPoint is empty when the
// partition has no mounted volume.
type Partition struct {
	Name       string
	MountPoint string
	Label      string
	FileSystem string
}

// PartitionTable is partition-table metadata for one disk. Style is the
// platform's native value (lsblk PTTYPE, diskutil Content, MSFT_Disk style
// name). TypeIDs holds one partition type identifier per partition.
type PartitionTable struct {
	Style   string
	TypeIDs []string
}

// Inventory provides cross-platform removable disk enumeration.
type Inventory interface {
	// RemovableDisks lists removable/USB disks with their partitions and
	// mounted volumes. An error means the inventory itself is unavailable.
	RemovableDisks() ([]Disk, error)
	// PartitionTable queries partition-table metadata for one disk.
	PartitionTable(d Disk) (*PartitionTable, error)
}

// ErrUnsupported is returned on platforms without an inventory backend.
var ErrUnsupported = errors.New("removable disk inventory is not supported on this platform")

// NewInventory creates a platform-specific inventory.
func NewInventory(runner Runner) Inventory {
	return newInventory(runner)
}

// Runner runs an external command and returns its stdout.
type Runner interface {
	RunOutput(name string, args ...string) (string, error)
}
