package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/gajzzs/usbprep/internal/device"
	"github.com/gajzzs/usbprep/internal/system"
	"github.com/gajzzs/usbprep/internal/ui"
)

var (
	readyColor   = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
)

func statusText(d device.RemovableDevice) string {
	if d.RiskStatus == device.RiskWarning {
		return warningColor.Sprint(d.RiskStatus.String())
	}
	return readyColor.Sprint(d.RiskStatus.String())
}

// usageText reports used/total space of the primary volume.
func usageText(d device.RemovableDevice) string {
	v, ok := d.PrimaryVolume()
	if !ok {
		return "-"
	}
	used, total, err := system.VolumeUsage(v.MountPoint)
	if err != nil || total == 0 {
		return "-"
	}
	return fmt.Sprintf("%s/%s", system.FormatSize(used), system.FormatSize(total))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// printDeviceTable prints one row per device. STATUS stays the last column
// so its color codes never affect padding.
func printDeviceTable(w io.Writer, devices []device.RemovableDevice) {
	table := ui.NewTable("IDX", "ID", "MODEL", "SIZE", "STYLE", "VOLUME", "BOOTLOADER", "BOOT MODE", "CONTENT", "USED", "STATUS")
	for _, d := range devices {
		volume := "-"
		if v, ok := d.PrimaryVolume(); ok {
			volume = v.MountPoint
			if v.Label != "" {
				volume += " (" + v.Label + ")"
			}
		}
		table.AddRow(
			fmt.Sprintf("%d", d.Index),
			d.ID,
			orDash(d.Model),
			system.FormatSize(d.SizeBytes),
			d.PartitionStyle.String(),
			volume,
			d.DetectedBootloader.String(),
			d.BootCapability.String(),
			d.ContentSummary.String(),
			usageText(d),
			statusText(d),
		)
	}
	table.Print(w)
}

// printDeviceDetails prints a block per device with every warning.
func printDeviceDetails(w io.Writer, devices []device.RemovableDevice) {
	for i, d := range devices {
		if i > 0 {
			fmt.Fprintln(w)
		}

		fmt.Fprintf(w, "Disk %d: %s\n", d.Index, orDash(d.Model))
		fmt.Fprintf(w, "  ID: %s\n", d.ID)
		if d.Serial != "" {
			fmt.Fprintf(w, "  Serial: %s\n", d.Serial)
		}
		if d.Bus != "" {
			fmt.Fprintf(w, "  Bus: %s\n", d.Bus)
		}
		fmt.Fprintf(w, "  Size: %s\n", system.FormatSize(d.SizeBytes))
		fmt.Fprintf(w, "  Partition Style: %s (%d partitions)\n", d.PartitionStyle, d.PartitionCount)
		fmt.Fprintf(w, "  EFI System Partition: %t\n", d.HasEFISystemPartition)

		if len(d.MountedVolumes) == 0 {
			fmt.Fprintln(w, "  Volumes: none mounted")
		}
		for j, v := range d.MountedVolumes {
			primary := ""
			if j == 0 {
				primary = " [primary]"
			}
			fmt.Fprintf(w, "  Volume: %s %s (%s)%s\n", v.MountPoint, orDash(v.Label), orDash(v.FileSystem), primary)
		}

		fmt.Fprintf(w, "  Bootloader: %s\n", d.DetectedBootloader)
		fmt.Fprintf(w, "  Boot Mode: %s\n", d.BootCapability)
		fmt.Fprintf(w, "  Content: %s\n", d.ContentSummary)
		if len(d.ISOFileNames) > 0 {
			fmt.Fprintf(w, "  ISO Files: %s\n", strings.Join(d.ISOFileNames, ", "))
		}
		fmt.Fprintf(w, "  Status: %s\n", statusText(d))
		for _, warning := range d.Warnings {
			fmt.Fprintf(w, "    ! %s\n", warning)
		}
		fmt.Fprintf(w, "  Recommendation: %s\n", d.Recommendation)
	}
}

// tableRenderer adapts printDeviceTable to the selection UI.
func tableRenderer(w io.Writer) func(ui.UI, []device.RemovableDevice) {
	return func(u ui.UI, devices []device.RemovableDevice) {
		u.Println()
		printDeviceTable(w, devices)
	}
}
