package platform

import (
	"reflect"
	"testing"
)

const diskutilListSample = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>AllDisksAndPartitions</key>
	<array>
		<dict>
			<key>Content</key>
			<string>GUID_partition_scheme</string>
			<key>DeviceIdentifier</key>
			<string>disk4</string>
			<key>Partitions</key>
			<array>
				<dict>
					<key>Content</key>
					<string>EFI</string>
					<key>DeviceIdentifier</key>
					<string>disk4s1</string>
					<key>Size</key>
					<integer>209715200</integer>
					<key>VolumeName</key>
					<string>EFI</string>
				</dict>
				<dict>
					<key>Content</key>
					<string>Microsoft Basic Data</string>
					<key>DeviceIdentifier</key>
					<string>disk4s2</string>
					<key>MountPoint</key>
					<string>/Volumes/WININSTALL</string>
					<key>Size</key>
					<integer>31796543488</integer>
					<key>VolumeName</key>
					<string>WININSTALL</string>
				</dict>
			</array>
			<key>Size</key>
			<integer>32017047552</integer>
		</dict>
		<dict>
			<key>Content</key>
			<string>MS-DOS FAT32</string>
			<key>DeviceIdentifier</key>
			<string>disk5</string>
			<key>MountPoint</key>
			<string>/Volumes/STICK</string>
			<key>Size</key>
			<integer>8004304896</integer>
			<key>VolumeName</key>
			<string>STICK</string>
		</dict>
	</array>
</dict>
</plist>`

const diskutilInfoSample = `<?xml version="1.0" encoding="UTF-8"?>
<plist version="1.0">
<dict>
	<key>BusProtocol</key>
	<string>USB</string>
	<key>DeviceIdentifier</key>
	<string>disk4</string>
	<key>Ejectable</key>
	<true/>
	<key>MediaName</key>
	<string>SanDisk Ultra</string>
	<key>Removable</key>
	<false/>
	<key>RemovableMedia</key>
	<true/>
	<key>TotalSize</key>
	<integer>32017047552</integer>
</dict>
</plist>`

func TestParseDiskutilList(t *testing.T) {
	list, err := parseDiskutilList([]byte(diskutilListSample))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list.AllDisksAndPartitions) != 2 {
		t.Fatalf("expected 2 disks, got %d", len(list.AllDisksAndPartitions))
	}

	gpt := list.AllDisksAndPartitions[0]
	if diskNumber(gpt.DeviceIdentifier) != 4 {
		t.Errorf("disk number = %d", diskNumber(gpt.DeviceIdentifier))
	}
	table := gpt.table()
	if table.Style != "GUID_partition_scheme" {
		t.Errorf("style = %q", table.Style)
	}
	wantTypes := []string{efiSystemPartitionType, "Microsoft Basic Data"}
	if !reflect.DeepEqual(table.TypeIDs, wantTypes) {
		t.Errorf("type ids = %q, want %q", table.TypeIDs, wantTypes)
	}
	parts := gpt.partitions()
	if len(parts) != 2 || parts[0].MountPoint != "" || parts[1].MountPoint != "/Volumes/WININSTALL" {
		t.Errorf("unexpected partitions: %+v", parts)
	}

	whole := list.AllDisksAndPartitions[1]
	parts = whole.partitions()
	want := []Partition{{Name: "disk5", MountPoint: "/Volumes/STICK", Label: "STICK", FileSystem: "MS-DOS FAT32"}}
	if !reflect.DeepEqual(parts, want) {
		t.Errorf("whole-disk volume = %+v, want %+v", parts, want)
	}
}

func TestDiskutilTable_Empty(t *testing.T) {
	table := diskutilDisk{DeviceIdentifier: "disk6"}.table()
	if table.Style != "raw" || len(table.TypeIDs) != 0 {
		t.Fatalf("unexpected table: %+v", table)
	}
}

func TestParseDiskutilInfo(t *testing.T) {
	info, err := parseDiskutilInfo([]byte(diskutilInfoSample))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.MediaName != "SanDisk Ultra" || info.BusProtocol != "USB" || !info.RemovableMedia || info.Removable {
		t.Fatalf("unexpected info: %+v", info)
	}
	if info.TotalSize != 32017047552 {
		t.Fatalf("size = %d", info.TotalSize)
	}
}

func TestDiskNumber(t *testing.T) {
	tests := map[string]int{
		"disk0":   0,
		"disk12":  12,
		"disk4s1": -1,
		"sdb":     -1,
	}
	for in, want := range tests {
		if got := diskNumber(in); got != want {
			t.Errorf("diskNumber(%q) = %d, want %d", in, got, want)
		}
	}
}
