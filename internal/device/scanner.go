package device

import (
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/gajzzs/usbprep/internal/crypto"
	"github.com/gajzzs/usbprep/internal/platform"
)

// EnumerationError means the platform inventory itself could not be queried.
// No partial results accompany it.
type EnumerationError struct {
	Err error
}

func (e *EnumerationError) Error() string {
	return fmt.Sprintf("enumerating removable devices: %v", e.Err)
}

func (e *EnumerationError) Unwrap() error {
	return e.Err
}

// Logger receives probe failures that were absorbed during a scan.
type Logger interface {
	Debug(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}

// Scanner classifies removable devices reported by a platform inventory.
type Scanner struct {
	inventory platform.Inventory
	open      func(mountPoint string) fs.FS
	log       Logger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithLogger sets the logger for absorbed probe failures.
func WithLogger(l Logger) Option {
	return func(s *Scanner) {
		if l != nil {
			s.log = l
		}
	}
}

// WithVolumeFS replaces how a mount point is opened for probing.
func WithVolumeFS(open func(mountPoint string) fs.FS) Option {
	return func(s *Scanner) {
		if open != nil {
			s.open = open
		}
	}
}

// NewScanner creates a scanner over inv. Volumes are probed through
// os.DirFS unless WithVolumeFS says otherwise.
func NewScanner(inv platform.Inventory, opts ...Option) *Scanner {
	s := &Scanner{
		inventory: inv,
		open:      func(mountPoint string) fs.FS { return os.DirFS(mountPoint) },
		log:       nopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScanRemovableDevices enumerates and classifies every removable device.
// It returns an empty, non-nil slice when none are attached. Only an
// unavailable inventory is an error; per-device probe failures degrade the
// affected fields.
func (s *Scanner) ScanRemovableDevices() ([]RemovableDevice, error) {
	disks, err := s.inventory.RemovableDisks()
	if err != nil {
		return nil, &EnumerationError{Err: err}
	}

	devices := make([]RemovableDevice, 0, len(disks))
	seen := make(map[string]int, len(disks))
	for _, d := range disks {
		dev := s.scanDisk(d)
		seen[dev.ID]++
		devices = append(devices, dev)
	}

	// Identical sticks sharing a serial collide; the platform name tells
	// them apart within this scan.
	for i, d := range disks {
		if seen[devices[i].ID] > 1 {
			devices[i].ID = deviceID(d, true)
		}
	}
	return devices, nil
}

// deviceID fingerprints the hardware attributes of d. Disks without a usable
// serial fall back to their platform name.
func deviceID(d platform.Disk, withName bool) string {
	serial := strings.TrimSpace(d.Serial)
	if serial == "" || strings.EqualFold(serial, "unknown") {
		serial = d.Name
		withName = false
	}
	attrs := []string{d.Model, serial, d.Bus, strconv.FormatUint(d.SizeBytes, 10)}
	if withName {
		attrs = append(attrs, d.Name)
	}
	return crypto.Fingerprint(attrs...)
}

func (s *Scanner) scanDisk(d platform.Disk) RemovableDevice {
	for _, err := range d.ProbeErrors {
		s.log.Debug("%s: %v", d.Name, err)
	}

	style := PartitionStyleUnknown
	var typeIDs []string
	table, err := s.inventory.PartitionTable(d)
	if err != nil {
		s.log.Debug("%s: partition table unavailable, style set to Unknown: %v", d.Name, err)
	} else {
		style = ParsePartitionStyle(table.Style)
		typeIDs = table.TypeIDs
	}

	hasESP := false
	if style == PartitionStyleGPT {
		for _, id := range typeIDs {
			if IsEFISystemPartition(id) {
				hasESP = true
				break
			}
		}
	}

	var volumes []volumeResult
	for _, p := range d.Partitions {
		if p.MountPoint == "" {
			continue
		}
		v := volumeResult{
			volume: MountedVolume{MountPoint: p.MountPoint, Label: p.Label, FileSystem: p.FileSystem},
		}
		// RAW disks are never probed.
		if style != PartitionStyleRAW {
			v.class = ClassifyVolume(NewProbe(s.open(p.MountPoint)), hasESP, p.MountPoint)
		}
		volumes = append(volumes, v)
	}

	dev := assemble(d, style, hasESP, volumes)
	// Probe errors leave the partition list incomplete. RAW keeps its
	// formatting verdict.
	if style != PartitionStyleRAW && len(d.ProbeErrors) > 0 {
		for _, err := range d.ProbeErrors {
			dev.Warnings = append(dev.Warnings, fmt.Sprintf("Could not read partitions of %s: %v", d.Name, err))
		}
		dev.RiskStatus = RiskWarning
		dev.Recommendation = recommend(dev.RiskStatus, dev.ContentSummary)
	}
	s.log.Debug("%s: %s, %d partition(s), bootloader %s, %s", d.Name, dev.PartitionStyle, dev.PartitionCount, dev.DetectedBootloader, dev.RiskStatus)
	return dev
}

type volumeResult struct {
	volume MountedVolume
	class  VolumeClass
}

// assemble folds per-volume classifications into the device record.
func assemble(d platform.Disk, style PartitionStyle, hasESP bool, volumes []volumeResult) RemovableDevice {
	dev := RemovableDevice{
		ID:                    deviceID(d, false),
		Index:                 d.Index,
		Name:                  d.Name,
		Model:                 d.Model,
		Serial:                d.Serial,
		Bus:                   d.Bus,
		SizeBytes:             d.SizeBytes,
		PartitionStyle:        style,
		PartitionCount:        len(d.Partitions),
		HasEFISystemPartition: hasESP && style == PartitionStyleGPT,
		MountedVolumes:        []MountedVolume{},
		ISOFileNames:          []string{},
		Warnings:              []string{},
	}

	content := Content{Kind: ContentEmpty}
	contentRank := 0
	for _, v := range volumes {
		dev.MountedVolumes = append(dev.MountedVolumes, v.volume)
		if style == PartitionStyleRAW {
			continue
		}

		c := v.class
		if dev.DetectedBootloader.Kind == BootloaderNone && c.Bootloader.Kind != BootloaderNone {
			dev.DetectedBootloader = c.Bootloader
			dev.BootCapability = c.BootCapability
		}
		dev.ISOFileNames = append(dev.ISOFileNames, c.ISOFileNames...)
		dev.Warnings = append(dev.Warnings, c.Warnings...)
		if r := contentRanks[c.Content.Kind]; r > contentRank {
			content, contentRank = c.Content, r
		}
	}

	if style == PartitionStyleRAW || len(volumes) == 0 {
		content = Content{Kind: ContentUnformatted}
	}
	dev.ContentSummary = content

	if dev.BootCapability == BootCapabilityUnknown {
		dev.BootCapability = fallbackBootCapability(style, dev.HasEFISystemPartition)
	}

	dev.RiskStatus = RiskReady
	if len(dev.Warnings) > 0 {
		dev.RiskStatus = RiskWarning
	}
	dev.Recommendation = recommend(dev.RiskStatus, dev.ContentSummary)
	return dev
}

// contentRanks orders volume content when folding to one device summary.
// Detected media outrank plain data, which outranks an empty volume.
var contentRanks = map[ContentKind]int{
	ContentEmpty:                    0,
	ContentOther:                    1,
	ContentWindowsInstallationMedia: 2,
	ContentISOFiles:                 2,
}

// fallbackBootCapability derives boot capability from the partition layout
// when no boot loader decided it.
func fallbackBootCapability(style PartitionStyle, hasESP bool) BootCapability {
	switch style {
	case PartitionStyleGPT:
		if hasESP {
			return BootCapabilityUEFICapableUnformatted
		}
		return BootCapabilityNotFormatted
	case PartitionStyleMBR:
		return BootCapabilityBIOSCapable
	case PartitionStyleRAW:
		return BootCapabilityNotFormatted
	default:
		return BootCapabilityUnknown
	}
}

func recommend(status RiskStatus, content Content) string {
	switch {
	case status == RiskWarning:
		return RecommendBackup
	case content.Kind == ContentUnformatted:
		return RecommendFormat
	default:
		return RecommendDeploy
	}
}
