package device

import (
	"fmt"
	"strings"
)

// PartitionStyle is the partition table format of a disk.
type PartitionStyle int

const (
	PartitionStyleUnknown PartitionStyle = iota
	PartitionStyleGPT
	PartitionStyleMBR
	PartitionStyleRAW
)

var partitionStyleNames = map[PartitionStyle]string{
	PartitionStyleUnknown: "Unknown",
	PartitionStyleGPT:     "GPT",
	PartitionStyleMBR:     "MBR",
	PartitionStyleRAW:     "RAW",
}

func (s PartitionStyle) String() string {
	if name, ok := partitionStyleNames[s]; ok {
		return name
	}
	return "Unknown"
}

func (s PartitionStyle) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParsePartitionStyle maps the value reported by the platform (lsblk PTTYPE,
// diskutil Content, MSFT_Disk.PartitionStyle) to a PartitionStyle.
// Anything unrecognized is Unknown.
func ParsePartitionStyle(native string) PartitionStyle {
	switch strings.ToLower(strings.TrimSpace(native)) {
	case "gpt", "guid_partition_scheme":
		return PartitionStyleGPT
	case "mbr", "dos", "fdisk_partition_scheme":
		return PartitionStyleMBR
	case "raw":
		return PartitionStyleRAW
	default:
		return PartitionStyleUnknown
	}
}

// EFISystemPartitionGUID is the GPT partition type of an EFI System Partition.
const EFISystemPartitionGUID = "c12a7328-f81f-11d2-ba4b-00a0c93ec93b"

// IsEFISystemPartition reports whether a GPT partition type identifier is the
// EFI System Partition type. Braces and case are ignored.
func IsEFISystemPartition(typeID string) bool {
	id := strings.Trim(strings.TrimSpace(typeID), "{}")
	return strings.EqualFold(id, EFISystemPartitionGUID)
}

// BootloaderKind identifies a boot loader found on a volume.
type BootloaderKind int

const (
	BootloaderNone BootloaderKind = iota
	BootloaderVentoy
	BootloaderWindows
	BootloaderGenericUEFI
	BootloaderLinuxGRUB
)

var bootloaderNames = map[BootloaderKind]string{
	BootloaderNone:        "None",
	BootloaderVentoy:      "Ventoy",
	BootloaderWindows:     "Windows Bootloader",
	BootloaderGenericUEFI: "Generic UEFI",
	BootloaderLinuxGRUB:   "Linux GRUB",
}

func (k BootloaderKind) String() string {
	if name, ok := bootloaderNames[k]; ok {
		return name
	}
	return "None"
}

func (k BootloaderKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Bootloader is a detected boot loader. Version is only ever set for Ventoy.
type Bootloader struct {
	Kind    BootloaderKind `json:"kind"`
	Version string         `json:"version,omitempty"`
}

func (b Bootloader) String() string {
	if b.Version != "" {
		return fmt.Sprintf("%s %s", b.Kind, b.Version)
	}
	return b.Kind.String()
}

// BootCapability is the boot mode a device supports as it stands.
type BootCapability int

const (
	BootCapabilityUnknown BootCapability = iota
	BootCapabilityUEFI
	BootCapabilityBIOS
	BootCapabilityUEFIOrBIOSMultiboot
	BootCapabilityUEFICapableUnformatted
	BootCapabilityBIOSCapable
	BootCapabilityNotFormatted
)

var bootCapabilityNames = map[BootCapability]string{
	BootCapabilityUnknown:                "Unknown",
	BootCapabilityUEFI:                   "UEFI",
	BootCapabilityBIOS:                   "BIOS",
	BootCapabilityUEFIOrBIOSMultiboot:    "UEFI/BIOS (Multiboot)",
	BootCapabilityUEFICapableUnformatted: "UEFI Capable (Unformatted)",
	BootCapabilityBIOSCapable:            "BIOS Capable",
	BootCapabilityNotFormatted:           "Not Formatted",
}

func (c BootCapability) String() string {
	if name, ok := bootCapabilityNames[c]; ok {
		return name
	}
	return "Unknown"
}

func (c BootCapability) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// ContentKind summarizes what a device holds.
type ContentKind int

const (
	ContentEmpty ContentKind = iota
	ContentUnformatted
	ContentWindowsInstallationMedia
	ContentISOFiles
	ContentOther
)

var contentNames = map[ContentKind]string{
	ContentEmpty:                    "Empty",
	ContentUnformatted:              "Unformatted",
	ContentWindowsInstallationMedia: "Windows Installation Media",
	ContentISOFiles:                 "ISO Files",
	ContentOther:                    "Other",
}

func (k ContentKind) String() string {
	if name, ok := contentNames[k]; ok {
		return name
	}
	return "Other"
}

func (k ContentKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Content is the content summary of a device. ISOCount is only meaningful
// for ContentISOFiles.
type Content struct {
	Kind     ContentKind `json:"kind"`
	ISOCount int         `json:"iso_count,omitempty"`
}

func (c Content) String() string {
	if c.Kind == ContentISOFiles {
		return fmt.Sprintf("%d ISO file(s)", c.ISOCount)
	}
	return c.Kind.String()
}

// RiskStatus is the verdict that gates destructive operations.
type RiskStatus int

const (
	RiskReady RiskStatus = iota
	RiskWarning
)

func (r RiskStatus) String() string {
	if r == RiskWarning {
		return "Warning"
	}
	return "Ready"
}

func (r RiskStatus) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Recommendations attached to a device.
const (
	RecommendBackup = "Backup data before proceeding"
	RecommendFormat = "Can be formatted and used"
	RecommendDeploy = "Ready for deployment"
)

// MountedVolume is a mounted filesystem on one of the device's partitions.
type MountedVolume struct {
	MountPoint string `json:"mount_point"`
	Label      string `json:"label"`
	FileSystem string `json:"file_system"`
}

// RemovableDevice is the classification of one physical removable disk.
// A fresh value is built on every scan.
type RemovableDevice struct {
	ID                    string          `json:"id"`
	Index                 int             `json:"index"`
	Name                  string          `json:"name"`
	Model                 string          `json:"model"`
	Serial                string          `json:"serial,omitempty"`
	Bus                   string          `json:"bus,omitempty"`
	SizeBytes             uint64          `json:"size_bytes"`
	PartitionStyle        PartitionStyle  `json:"partition_style"`
	PartitionCount        int             `json:"partition_count"`
	HasEFISystemPartition bool            `json:"has_efi_system_partition"`
	MountedVolumes        []MountedVolume `json:"mounted_volumes"`
	DetectedBootloader    Bootloader      `json:"detected_bootloader"`
	BootCapability        BootCapability  `json:"boot_capability"`
	ContentSummary        Content         `json:"content_summary"`
	ISOFileNames          []string        `json:"iso_file_names"`
	Warnings              []string        `json:"warnings"`
	RiskStatus            RiskStatus      `json:"risk_status"`
	Recommendation        string          `json:"recommendation"`
}

// PrimaryVolume returns the first enumerated volume, or false if the device
// has none.
func (d RemovableDevice) PrimaryVolume() (MountedVolume, bool) {
	if len(d.MountedVolumes) == 0 {
		return MountedVolume{}, false
	}
	return d.MountedVolumes[0], true
}

// NeedsConfirmation reports whether selecting this device requires the
// operator to type the confirmation token.
func (d RemovableDevice) NeedsConfirmation() bool {
	return len(d.Warnings) > 0
}
