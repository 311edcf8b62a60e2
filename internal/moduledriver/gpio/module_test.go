package gpio

import (
	"testing"

	"github.com/chassiskit/chassisd/internal/platform"
)

func TestRebootRefusedWhenAdminDown(t *testing.T) {
	m := &Module{}
	accepted, err := m.Reboot()
	if err != nil {
		t.Fatalf("Reboot() failed: %v", err)
	}
	if accepted {
		t.Error("Reboot() accepted while administratively down")
	}
}

func TestRebootRefusedWithoutPowerLine(t *testing.T) {
	m := &Module{adminUp: true}
	accepted, err := m.Reboot()
	if err != nil {
		t.Fatalf("Reboot() failed: %v", err)
	}
	if accepted {
		t.Error("Reboot() accepted with no power-enable line wired")
	}
}

func TestStatusDuringReboot(t *testing.T) {
	m := &Module{adminUp: true}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			m.Reboot() //nolint:errcheck
		}
	}()

	for i := 0; i < 100; i++ {
		status, err := m.GetStatus()
		if err != nil {
			t.Fatalf("GetStatus() failed: %v", err)
		}
		if status != platform.StatusOnline {
			t.Fatalf("GetStatus() = %q, want %q", status, platform.StatusOnline)
		}
	}
	<-done
}
