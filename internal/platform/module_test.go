package platform

import (
	"errors"
	"testing"
)

func TestModuleTypeValid(t *testing.T) {
	for _, mt := range []ModuleType{ModuleTypeSupervisor, ModuleTypeLineCard, ModuleTypeFabricCard} {
		if !mt.Valid() {
			t.Errorf("ModuleType(%q).Valid() = false, want true", mt)
		}
	}
	if ModuleType("LINECARD").Valid() {
		t.Error("ModuleType(\"LINECARD\").Valid() = true, want false")
	}
}

func TestParseModuleType(t *testing.T) {
	mt, err := ParseModuleType("FABRIC-CARD")
	if err != nil {
		t.Fatalf("ParseModuleType(FABRIC-CARD) failed: %v", err)
	}
	if mt != ModuleTypeFabricCard {
		t.Errorf("ParseModuleType(FABRIC-CARD) = %q, want %q", mt, ModuleTypeFabricCard)
	}

	if _, err := ParseModuleType("fabric-card"); !errors.Is(err, ErrInvalidModuleType) {
		t.Errorf("ParseModuleType(fabric-card) err = %v, want ErrInvalidModuleType", err)
	}
}

func TestFormatName(t *testing.T) {
	tests := []struct {
		mtype ModuleType
		index int
		want  string
	}{
		{ModuleTypeSupervisor, 0, "SUPERVISOR0"},
		{ModuleTypeLineCard, 3, "LINE-CARD3"},
		{ModuleTypeFabricCard, 5, "FABRIC-CARD5"},
	}
	for _, tt := range tests {
		if got := FormatName(tt.mtype, tt.index); got != tt.want {
			t.Errorf("FormatName(%q, %d) = %q, want %q", tt.mtype, tt.index, got, tt.want)
		}
	}
}

func TestModuleStatusValid(t *testing.T) {
	for _, s := range []ModuleStatus{StatusEmpty, StatusOffline, StatusPresent, StatusFault, StatusOnline} {
		if !s.Valid() {
			t.Errorf("ModuleStatus(%q).Valid() = false, want true", s)
		}
	}
	if ModuleStatus("online").Valid() {
		t.Error("ModuleStatus(\"online\").Valid() = true, want false")
	}
}

func TestChangeEventMapAdd(t *testing.T) {
	events := make(ChangeEventMap)
	events.Add(DeviceTypeFan, "0", DeviceRemoved)
	events.Add(DeviceTypeFan, "2", DeviceInserted)
	events.Add(DeviceTypeSFP, "11", DeviceRemoved)

	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}
	if ev := events[DeviceTypeFan]["0"]; ev != DeviceRemoved {
		t.Errorf("fan 0 event = %q, want %q", ev, DeviceRemoved)
	}
	if ev := events[DeviceTypeFan]["2"]; ev != DeviceInserted {
		t.Errorf("fan 2 event = %q, want %q", ev, DeviceInserted)
	}
	if ev := events[DeviceTypeSFP]["11"]; ev != DeviceRemoved {
		t.Errorf("sfp 11 event = %q, want %q", ev, DeviceRemoved)
	}

	// A later event for the same device wins.
	events.Add(DeviceTypeFan, "0", DeviceInserted)
	if ev := events[DeviceTypeFan]["0"]; ev != DeviceInserted {
		t.Errorf("fan 0 event after overwrite = %q, want %q", ev, DeviceInserted)
	}
}
