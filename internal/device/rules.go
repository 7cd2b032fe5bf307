package device

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/hashicorp/go-version"
)

const grubConfigLimit = 1 << 20

var ventoyVersionPattern = regexp.MustCompile(`Ventoy (\d+\.\d+\.\d+)`)

// Root entries every filesystem or OS creates on its own. A volume holding
// nothing else counts as empty.
var housekeepingEntries = map[string]bool{
	"system volume information": true,
	"$recycle.bin":              true,
	".trashes":                  true,
	".spotlight-v100":           true,
	".fseventsd":                true,
	"lost+found":                true,
}

// VolumeClass is the classification of a single mounted volume.
type VolumeClass struct {
	Bootloader     Bootloader
	BootCapability BootCapability
	Content        Content
	ISOFileNames   []string
	Warnings       []string
}

// contentDetected reports whether a rule already decided the content.
func (c VolumeClass) contentDetected() bool {
	return c.Content.Kind == ContentISOFiles || c.Content.Kind == ContentWindowsInstallationMedia
}

// A bootloaderRule recognizes one boot loader. Rules are tried in order and
// the first match wins.
type bootloaderRule struct {
	kind     BootloaderKind
	matches  func(p Probe) bool
	classify func(p Probe, hasESP bool) VolumeClass
}

var bootloaderRules = []bootloaderRule{
	{
		kind:     BootloaderVentoy,
		matches:  func(p Probe) bool { return p.IsDir("ventoy") },
		classify: classifyVentoy,
	},
	{
		kind: BootloaderWindows,
		matches: func(p Probe) bool {
			return p.IsFile("bootmgr.efi") || p.IsFile("bootmgr")
		},
		classify: classifyWindows,
	},
	{
		kind:    BootloaderGenericUEFI,
		matches: func(p Probe) bool { return p.IsFile("efi/boot/bootx64.efi") },
		classify: func(p Probe, hasESP bool) VolumeClass {
			return VolumeClass{BootCapability: BootCapabilityUEFI}
		},
	},
	{
		kind:    BootloaderLinuxGRUB,
		matches: func(p Probe) bool { return p.IsDir("grub") },
		classify: func(p Probe, hasESP bool) VolumeClass {
			return VolumeClass{BootCapability: BootCapabilityUEFIOrBIOSMultiboot}
		},
	},
}

// ClassifyVolume runs the boot loader rules against one volume and inspects
// its content. hasESP tells whether the owning device has an EFI System
// Partition. mountPoint is only used in warning text.
func ClassifyVolume(p Probe, hasESP bool, mountPoint string) VolumeClass {
	var class VolumeClass
	for _, rule := range bootloaderRules {
		if !rule.matches(p) {
			continue
		}
		class = rule.classify(p, hasESP)
		class.Bootloader.Kind = rule.kind
		class.Warnings = append([]string{overwriteWarning(class.Bootloader)}, class.Warnings...)
		break
	}

	if !class.contentDetected() {
		classifyContent(p, mountPoint, &class)
	}
	return class
}

func overwriteWarning(b Bootloader) string {
	return fmt.Sprintf("%s detected — will be overwritten!", b)
}

func classifyVentoy(p Probe, hasESP bool) VolumeClass {
	class := VolumeClass{
		Bootloader:     Bootloader{Version: ventoyVersion(p)},
		BootCapability: BootCapabilityUEFIOrBIOSMultiboot,
	}

	isos := rootISOFiles(p)
	if len(isos) > 0 {
		class.ISOFileNames = isos
		class.Content = Content{Kind: ContentISOFiles, ISOCount: len(isos)}
		class.Warnings = append(class.Warnings, fmt.Sprintf("%d ISO file(s) found on Ventoy drive", len(isos)))
	}
	return class
}

// ventoyVersion extracts the "Ventoy X.Y.Z" token from grub/grub.cfg.
func ventoyVersion(p Probe) string {
	text, err := p.ReadText("grub/grub.cfg", grubConfigLimit)
	if err != nil {
		return ""
	}
	m := ventoyVersionPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	v, err := version.NewVersion(m[1])
	if err != nil {
		return ""
	}
	return v.String()
}

func rootISOFiles(p Probe) []string {
	entries, err := p.RootEntries()
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(path.Ext(entry.Name()), ".iso") {
			names = append(names, entry.Name())
		}
	}
	return names
}

func classifyWindows(p Probe, hasESP bool) VolumeClass {
	class := VolumeClass{BootCapability: BootCapabilityBIOS}
	if hasESP || p.IsFile("efi/boot/bootx64.efi") {
		class.BootCapability = BootCapabilityUEFI
	}

	for _, image := range []string{"sources/install.wim", "sources/install.esd"} {
		if p.IsFile(image) {
			class.Content = Content{Kind: ContentWindowsInstallationMedia}
			class.Warnings = append(class.Warnings, fmt.Sprintf("Windows installation media found (%s)", image))
			break
		}
	}
	return class
}

// classifyContent decides between Empty and Other. Existing data only adds
// a warning when no boot loader was found, since that one already warns.
func classifyContent(p Probe, mountPoint string, class *VolumeClass) {
	entries, err := p.RootEntries()
	if err != nil {
		class.Content = Content{Kind: ContentOther}
		class.Warnings = append(class.Warnings, fmt.Sprintf("Could not inspect contents of %s: %v", mountPoint, err))
		return
	}

	items := 0
	for _, entry := range entries {
		if !housekeepingEntries[strings.ToLower(entry.Name())] {
			items++
		}
	}
	if items == 0 {
		class.Content = Content{Kind: ContentEmpty}
		return
	}

	class.Content = Content{Kind: ContentOther}
	if class.Bootloader.Kind == BootloaderNone {
		class.Warnings = append(class.Warnings, fmt.Sprintf("Existing data found on %s (%d items)", mountPoint, items))
	}
}
