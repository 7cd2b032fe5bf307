package platform

import "fmt"

// MSFT_Disk.BusType values.
const (
	busTypeUSB uint16 = 7
	busTypeSD  uint16 = 12
	busTypeMMC uint16 = 13
)

var busTypeNames = map[uint16]string{
	1:          "SCSI",
	3:          "ATA",
	busTypeUSB: "USB",
	8:          "RAID",
	11:         "SATA",
	busTypeSD:  "SD",
	busTypeMMC: "MMC",
	17:         "NVMe",
}

func busTypeName(code uint16) string {
	if name, ok := busTypeNames[code]; ok {
		return name
	}
	return fmt.Sprintf("Bus(%d)", code)
}

func isRemovableBus(code uint16) bool {
	return code == busTypeUSB || code == busTypeSD || code == busTypeMMC
}

// partitionStyleName maps MSFT_Disk.PartitionStyle. Get-Disk shows 0 as RAW.
func partitionStyleName(code uint16) string {
	switch code {
	case 0:
		return "raw"
	case 1:
		return "mbr"
	case 2:
		return "gpt"
	default:
		return fmt.Sprintf("unknown(%d)", code)
	}
}

// driveRoot turns an MSFT_Partition.DriveLetter into a volume root such as
// `E:\`. Zero means no letter is assigned.
func driveRoot(letter uint16) string {
	if letter == 0 || letter == ' ' {
		return ""
	}
	return fmt.Sprintf(`%c:\`, rune(letter))
}
