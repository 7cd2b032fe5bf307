package selection

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gajzzs/usbprep/internal/crypto"
	"github.com/gajzzs/usbprep/internal/device"
	"github.com/gajzzs/usbprep/internal/system"
	"github.com/gajzzs/usbprep/internal/ui"
)

// ErrAborted is returned when the operator quits the device list.
var ErrAborted = errors.New("device selection aborted")

// Scanner produces a fresh device list on every call.
type Scanner interface {
	ScanRemovableDevices() ([]device.RemovableDevice, error)
}

// Selector walks the operator through choosing a target device.
type Selector struct {
	scanner Scanner
	ui      ui.UI
	token   string
	render  func(ui.UI, []device.RemovableDevice)
}

// New creates a Selector. token is the exact, case-sensitive answer required
// before a device with warnings is returned.
func New(scanner Scanner, u ui.UI, token string) *Selector {
	return &Selector{
		scanner: scanner,
		ui:      u,
		token:   token,
		render:  PrintDevices,
	}
}

// WithRenderer replaces how the device list is shown.
func (s *Selector) WithRenderer(render func(ui.UI, []device.RemovableDevice)) *Selector {
	if render != nil {
		s.render = render
	}
	return s
}

// Choose scans, shows the list and returns the confirmed device. preselect,
// when set, is a device ID (or an ID prefix) tried once before prompting. An
// ID matching several devices selects none of them.
// Declining a confirmation returns to the list. Quitting returns ErrAborted.
func (s *Selector) Choose(preselect string) (*device.RemovableDevice, error) {
	for {
		devices, err := s.scanner.ScanRemovableDevices()
		if err != nil {
			return nil, err
		}

		if preselect != "" {
			id := preselect
			preselect = ""
			matches := findByID(devices, id)
			switch len(matches) {
			case 0:
				s.ui.Printf("No device matches ID %q.\n", id)
			case 1:
				if dev := matches[0]; s.confirm(dev) {
					return &dev, nil
				}
			default:
				s.ui.Printf("ID %q matches %d devices, choose by index:\n", id, len(matches))
				for _, d := range matches {
					s.ui.Printf("  [%d] %s %s\n", d.Index, d.ID, d.Model)
				}
			}
		}

		chosen, rescan, err := s.pick(devices)
		if err != nil {
			return nil, err
		}
		if rescan {
			s.ui.Println("Rescanning...")
			continue
		}
		return chosen, nil
	}
}

// pick prompts over one scan result until a device is confirmed, a rescan is
// requested or the operator quits.
func (s *Selector) pick(devices []device.RemovableDevice) (*device.RemovableDevice, bool, error) {
	for {
		if len(devices) == 0 {
			s.ui.Println("No removable USB devices found. Insert a drive and rescan.")
		} else {
			s.render(s.ui, devices)
		}

		answer, err := s.ui.Ask("Select device index, [r] to rescan, [q] to quit: ")
		if err != nil {
			return nil, false, err
		}

		answer = strings.TrimSpace(answer)
		switch strings.ToLower(answer) {
		case "r", "rescan":
			return nil, true, nil
		case "q", "quit":
			return nil, false, ErrAborted
		}

		index, err := strconv.Atoi(answer)
		if err != nil {
			s.ui.Printf("Invalid choice %q.\n", answer)
			continue
		}
		dev, ok := findByIndex(devices, index)
		if !ok {
			s.ui.Printf("No device with index %d.\n", index)
			continue
		}
		if s.confirm(dev) {
			return &dev, false, nil
		}
	}
}

// confirm runs the gate. Devices without warnings pass straight through.
func (s *Selector) confirm(dev device.RemovableDevice) bool {
	if !dev.NeedsConfirmation() {
		return true
	}

	s.ui.Printf("\nDevice %d (%s) is not safe to overwrite:\n", dev.Index, dev.Model)
	for _, w := range dev.Warnings {
		s.ui.Printf("  ! %s\n", w)
	}
	s.ui.Printf("Recommendation: %s\n", dev.Recommendation)

	answer, err := s.ui.Ask(fmt.Sprintf("ALL DATA WILL BE LOST. Type %s to continue: ", s.token))
	if err != nil || answer != s.token {
		s.ui.Println("Selection cancelled.")
		return false
	}
	return true
}

func findByIndex(devices []device.RemovableDevice, index int) (device.RemovableDevice, bool) {
	for _, d := range devices {
		if d.Index == index {
			return d, true
		}
	}
	return device.RemovableDevice{}, false
}

// findByID returns every device whose ID starts with id.
func findByID(devices []device.RemovableDevice, id string) []device.RemovableDevice {
	var matches []device.RemovableDevice
	for _, d := range devices {
		if crypto.MatchFingerprint(d.ID, id) {
			matches = append(matches, d)
		}
	}
	return matches
}

// PrintDevices is the default list rendering.
func PrintDevices(u ui.UI, devices []device.RemovableDevice) {
	u.Println("\nRemovable devices:")
	for _, d := range devices {
		u.Printf("  [%d] %s (%s) - %s, %s, %s\n",
			d.Index, d.Model, system.FormatSize(d.SizeBytes), d.PartitionStyle, d.ContentSummary, d.RiskStatus)
		if v, ok := d.PrimaryVolume(); ok {
			u.Printf("      %s %s (%s)\n", v.MountPoint, v.Label, v.FileSystem)
		}
		if d.DetectedBootloader.Kind != device.BootloaderNone {
			u.Printf("      Bootloader: %s, boot mode: %s\n", d.DetectedBootloader, d.BootCapability)
		}
	}
}
