//go:build !linux && !darwin && !windows
// +build !linux,!darwin,!windows

package platform

type unsupportedInventory struct{}

func newInventory(runner Runner) Inventory {
	return unsupportedInventory{}
}

func (unsupportedInventory) RemovableDisks() ([]Disk, error) {
	return nil, ErrUnsupported
}

func (unsupportedInventory) PartitionTable(d Disk) (*PartitionTable, error) {
	return nil, ErrUnsupported
}
