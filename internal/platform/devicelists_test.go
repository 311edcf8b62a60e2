package platform

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

type fakeDevice struct {
	name string
}

func (d *fakeDevice) GetName() string            { return d.name }
func (d *fakeDevice) GetPresence() (bool, error) { return true, nil }
func (d *fakeDevice) GetModel() (string, error)  { return "FAKE-01", nil }
func (d *fakeDevice) GetSerial() (string, error) { return "S0000", nil }
func (d *fakeDevice) GetStatus() (bool, error)   { return true, nil }

type fakeComponent struct{ fakeDevice }

func (c *fakeComponent) GetFirmwareVersion() (string, error) { return "1.0", nil }

type fakeFan struct{ fakeDevice }

func (f *fakeFan) GetSpeed() (int, error) { return 50, nil }

type fakePSU struct{ fakeDevice }

func (p *fakePSU) GetVoltage() (float64, error) { return 12.0, nil }

type fakeThermal struct{ fakeDevice }

func (t *fakeThermal) GetTemperature() (float64, error) { return 35.5, nil }

type fakeSFP struct{ fakeDevice }

func (s *fakeSFP) GetTxDisable() (bool, error) { return false, nil }

func TestDeviceListsEmpty(t *testing.T) {
	var lists DeviceLists
	var diag bytes.Buffer
	lists.SetDiagnostics(&diag)

	if n := lists.GetNumComponents(); n != 0 {
		t.Errorf("GetNumComponents() = %d, want 0", n)
	}
	if n := lists.GetNumFans(); n != 0 {
		t.Errorf("GetNumFans() = %d, want 0", n)
	}
	if n := lists.GetNumPSUs(); n != 0 {
		t.Errorf("GetNumPSUs() = %d, want 0", n)
	}
	if n := lists.GetNumThermals(); n != 0 {
		t.Errorf("GetNumThermals() = %d, want 0", n)
	}
	if n := lists.GetNumSFPs(); n != 0 {
		t.Errorf("GetNumSFPs() = %d, want 0", n)
	}

	if devs := lists.GetAllComponents(); len(devs) != 0 {
		t.Errorf("GetAllComponents() returned %d devices, want 0", len(devs))
	}
	if devs := lists.GetAllFans(); len(devs) != 0 {
		t.Errorf("GetAllFans() returned %d devices, want 0", len(devs))
	}
	if devs := lists.GetAllPSUs(); len(devs) != 0 {
		t.Errorf("GetAllPSUs() returned %d devices, want 0", len(devs))
	}
	if devs := lists.GetAllThermals(); len(devs) != 0 {
		t.Errorf("GetAllThermals() returned %d devices, want 0", len(devs))
	}
	if devs := lists.GetAllSFPs(); len(devs) != 0 {
		t.Errorf("GetAllSFPs() returned %d devices, want 0", len(devs))
	}

	if diag.Len() != 0 {
		t.Errorf("unexpected diagnostics: %q", diag.String())
	}
}

func TestDeviceListsFanAccess(t *testing.T) {
	var lists DeviceLists
	var diag bytes.Buffer
	lists.SetDiagnostics(&diag)

	fans := []*fakeFan{
		{fakeDevice{name: "fan0"}},
		{fakeDevice{name: "fan1"}},
		{fakeDevice{name: "fan2"}},
	}
	for _, f := range fans {
		lists.AddFan(f)
	}

	if n := lists.GetNumFans(); n != 3 {
		t.Fatalf("GetNumFans() = %d, want 3", n)
	}

	// Every valid index must return the same element GetAllFans reports.
	all := lists.GetAllFans()
	for i := range fans {
		if got := lists.GetFan(i); got != all[i] {
			t.Errorf("GetFan(%d) = %v, want %v", i, got, all[i])
		}
	}

	if got := lists.GetFan(1); got.GetName() != "fan1" {
		t.Errorf("GetFan(1).GetName() = %q, want %q", got.GetName(), "fan1")
	}

	if diag.Len() != 0 {
		t.Fatalf("valid access produced diagnostics: %q", diag.String())
	}

	// Out-of-range access returns nil, emits exactly one diagnostic, and
	// must not panic.
	if got := lists.GetFan(3); got != nil {
		t.Errorf("GetFan(3) = %v, want nil", got)
	}
	want := "Fan index 3 out of range (0-2)\n"
	if diag.String() != want {
		t.Errorf("diagnostic = %q, want %q", diag.String(), want)
	}

	diag.Reset()
	if got := lists.GetFan(-1); got != nil {
		t.Errorf("GetFan(-1) = %v, want nil", got)
	}
	want = "Fan index -1 out of range (0-2)\n"
	if diag.String() != want {
		t.Errorf("diagnostic = %q, want %q", diag.String(), want)
	}
}

func TestDeviceListsOutOfRangeAllKinds(t *testing.T) {
	var lists DeviceLists
	var diag bytes.Buffer
	lists.SetDiagnostics(&diag)

	lists.AddComponent(&fakeComponent{fakeDevice{name: "bios"}})
	lists.AddFan(&fakeFan{fakeDevice{name: "fan0"}})
	lists.AddPSU(&fakePSU{fakeDevice{name: "psu0"}})
	lists.AddThermal(&fakeThermal{fakeDevice{name: "temp0"}})
	lists.AddSFP(&fakeSFP{fakeDevice{name: "sfp0"}})

	checks := []struct {
		kind   string
		access func(i int) any
	}{
		{"Component", func(i int) any { return lists.GetComponent(i) }},
		{"Fan", func(i int) any { return lists.GetFan(i) }},
		{"PSU", func(i int) any { return lists.GetPSU(i) }},
		{"THERMAL", func(i int) any { return lists.GetThermal(i) }},
		{"SFP", func(i int) any { return lists.GetSFP(i) }},
	}

	for _, check := range checks {
		diag.Reset()
		if got := check.access(1); got != nil {
			t.Errorf("%s out-of-range access returned %v, want nil", check.kind, got)
		}
		want := fmt.Sprintf("%s index 1 out of range (0-0)\n", check.kind)
		if diag.String() != want {
			t.Errorf("%s diagnostic = %q, want %q", check.kind, diag.String(), want)
		}
		if count := strings.Count(diag.String(), "\n"); count != 1 {
			t.Errorf("%s produced %d diagnostics, want 1", check.kind, count)
		}
	}
}

func TestDeviceListsThermalDiagnosticCasing(t *testing.T) {
	var lists DeviceLists
	var diag bytes.Buffer
	lists.SetDiagnostics(&diag)

	// Thermal is the one kind whose diagnostic spells the kind in caps.
	if got := lists.GetThermal(0); got != nil {
		t.Errorf("GetThermal(0) = %v, want nil", got)
	}
	want := "THERMAL index 0 out of range (0--1)\n"
	if diag.String() != want {
		t.Errorf("diagnostic = %q, want %q", diag.String(), want)
	}
}

func TestDeviceListsLiveBackingSlice(t *testing.T) {
	var lists DeviceLists

	lists.AddSFP(&fakeSFP{fakeDevice{name: "sfp0"}})
	before := lists.GetAllSFPs()
	if len(before) != 1 {
		t.Fatalf("GetAllSFPs() returned %d devices, want 1", len(before))
	}

	lists.AddSFP(&fakeSFP{fakeDevice{name: "sfp1"}})
	after := lists.GetAllSFPs()
	if len(after) != 2 {
		t.Fatalf("GetAllSFPs() returned %d devices, want 2", len(after))
	}
	if after[0].GetName() != "sfp0" || after[1].GetName() != "sfp1" {
		t.Errorf("GetAllSFPs() order changed: %q, %q", after[0].GetName(), after[1].GetName())
	}
}
