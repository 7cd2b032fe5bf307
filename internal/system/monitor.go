package system

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
)

// HostSummary describes the machine the tool runs on.
type HostSummary struct {
	Hostname        string `json:"hostname"`
	OS              string `json:"os"`
	Platform        string `json:"platform"`
	PlatformVersion string `json:"platform_version"`
	KernelArch      string `json:"kernel_arch"`
	Elevated        bool   `json:"elevated"`
}

// GetHostSummary returns host details. Missing fields are left empty when
// the host query fails.
func GetHostSummary() HostSummary {
	summary := HostSummary{
		OS:         runtime.GOOS,
		KernelArch: runtime.GOARCH,
		Elevated:   IsElevated(),
	}
	if info, err := host.Info(); err == nil {
		summary.Hostname = info.Hostname
		summary.Platform = info.Platform
		summary.PlatformVersion = info.PlatformVersion
		if info.KernelArch != "" {
			summary.KernelArch = info.KernelArch
		}
	}
	return summary
}

// InventoryTools lists the external commands the disk inventory shells out
// to on this platform.
func InventoryTools() []string {
	switch runtime.GOOS {
	case "linux":
		return []string{"lsblk"}
	case "darwin":
		return []string{"diskutil"}
	default:
		return nil
	}
}

// VolumeUsage returns used and total bytes of the filesystem mounted at path.
func VolumeUsage(path string) (used, total uint64, err error) {
	usage, err := disk.Usage(path)
	if err != nil {
		return 0, 0, err
	}
	return usage.Used, usage.Total, nil
}
