package platform

import (
	"reflect"
	"testing"
)

func TestParseLsblkTable(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantStyle string
		wantTypes []string
	}{
		{
			name: "gpt with esp",
			input: `{"blockdevices": [{"name": "sdb", "type": "disk", "pttype": "gpt", "parttype": null,
				"children": [
					{"name": "sdb1", "type": "part", "pttype": "gpt", "parttype": "c12a7328-f81f-11d2-ba4b-00a0c93ec93b"},
					{"name": "sdb2", "type": "part", "pttype": "gpt", "parttype": "ebd0a0a2-b9e5-4433-87c0-68b6b72699c7"}
				]}]}`,
			wantStyle: "gpt",
			wantTypes: []string{"c12a7328-f81f-11d2-ba4b-00a0c93ec93b", "ebd0a0a2-b9e5-4433-87c0-68b6b72699c7"},
		},
		{
			name: "dos",
			input: `{"blockdevices": [{"name": "sdc", "type": "disk", "pttype": "dos",
				"children": [{"name": "sdc1", "type": "part", "pttype": "dos", "parttype": "0x7"}]}]}`,
			wantStyle: "dos",
			wantTypes: []string{"0x7"},
		},
		{
			name:      "no partition table",
			input:     `{"blockdevices": [{"name": "sdd", "type": "disk", "pttype": null}]}`,
			wantStyle: "raw",
		},
		{
			name: "non partition children are skipped",
			input: `{"blockdevices": [{"name": "sde", "type": "disk", "pttype": "gpt",
				"children": [
					{"name": "sde1", "type": "part", "parttype": null},
					{"name": "luks", "type": "crypt"}
				]}]}`,
			wantStyle: "gpt",
			wantTypes: []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := parseLsblkTable([]byte(tt.input))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if table.Style != tt.wantStyle {
				t.Errorf("style = %q, want %q", table.Style, tt.wantStyle)
			}
			if !reflect.DeepEqual(table.TypeIDs, tt.wantTypes) {
				t.Errorf("type ids = %q, want %q", table.TypeIDs, tt.wantTypes)
			}
		})
	}
}

func TestParseLsblkTable_Errors(t *testing.T) {
	for _, input := range []string{`not json`, `{"blockdevices": []}`} {
		if _, err := parseLsblkTable([]byte(input)); err == nil {
			t.Errorf("expected error for %q", input)
		}
	}
}
