// Package modulectl implements the chassis module inspection tool.
package modulectl

import (
	"errors"
	"fmt"
	"io"
	"log"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chassiskit/chassisd/internal/eeprom"
	"github.com/chassiskit/chassisd/internal/moduledriver"
	"github.com/chassiskit/chassisd/internal/platform"
)

// App holds the module handles modulectl operates on.
type App struct {
	modules []platform.Module
	stdout  io.Writer
}

// NewApp creates all configured modules through the driver registry.
func NewApp(cfg *Config, stdout io.Writer) (*App, error) {
	if len(cfg.Modules) == 0 {
		return nil, ErrNoModules
	}

	app := &App{stdout: stdout}
	for i, mc := range cfg.Modules {
		module, err := moduledriver.CreateModule(mc.Driver, mc.Config)
		if err != nil {
			app.Close() //nolint:errcheck
			return nil, fmt.Errorf("module %d (%s): %w", i, mc.Driver, err)
		}
		app.modules = append(app.modules, module)
	}
	return app, nil
}

// Close releases every module handle.
func (a *App) Close() error {
	var errs []error
	for _, m := range a.modules {
		if err := m.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// orUnavailable renders an identity value, folding ErrNotImplemented into a
// placeholder instead of failing the whole listing.
func orUnavailable[T any](value T, err error) string {
	if errors.Is(err, platform.ErrNotImplemented) {
		return "(unavailable)"
	}
	if err != nil {
		return fmt.Sprintf("(error: %v)", err)
	}
	return fmt.Sprint(value)
}

// Show prints the identity, status, and device inventory of every module.
func (a *App) Show() error {
	for i, m := range a.modules {
		if i > 0 {
			fmt.Fprintln(a.stdout)
		}

		fmt.Fprintf(a.stdout, "%s:\n", orUnavailable(m.GetName()))
		fmt.Fprintf(a.stdout, "  Type:        %s\n", orUnavailable(m.GetType()))
		fmt.Fprintf(a.stdout, "  Slot:        %s\n", orUnavailable(m.GetSlot()))
		fmt.Fprintf(a.stdout, "  Status:      %s\n", orUnavailable(m.GetStatus()))
		fmt.Fprintf(a.stdout, "  Description: %s\n", orUnavailable(m.GetDescription()))
		fmt.Fprintf(a.stdout, "  Base MAC:    %s\n", orUnavailable(m.GetBaseMAC()))
		fmt.Fprintf(a.stdout, "  Devices:     %d components, %d fans, %d psus, %d thermals, %d sfps\n",
			m.GetNumComponents(), m.GetNumFans(), m.GetNumPSUs(),
			m.GetNumThermals(), m.GetNumSFPs())

		info, err := m.GetSystemEEPROMInfo()
		if errors.Is(err, platform.ErrNotImplemented) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read EEPROM: %w", err)
		}
		fmt.Fprintln(a.stdout, "  EEPROM:")
		keys := make([]string, 0, len(info))
		for key := range info {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			name := "Unknown"
			if typ, err := strconv.ParseUint(strings.TrimPrefix(key, "0x"), 16, 8); err == nil {
				name = eeprom.TypeName(byte(typ))
			}
			fmt.Fprintf(a.stdout, "    %s %-17s %s\n", key, name, info[key])
		}
	}
	return nil
}

type namedEvents struct {
	name   string
	events platform.ChangeEventMap
}

// Watch polls every module for change events and logs them as they arrive.
// It runs until the process is terminated, or until every module's poll loop
// has failed.
func (a *App) Watch(timeout time.Duration) error {
	eventChan := make(chan namedEvents)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var pollErrs []error

	for _, m := range a.modules {
		name := orUnavailable(m.GetName())
		wg.Add(1)
		go func(m platform.Module) {
			defer wg.Done()
			for {
				events, err := m.GetChangeEvent(timeout)
				if err != nil {
					log.Printf("%s: change event poll failed: %v", name, err)
					mu.Lock()
					pollErrs = append(pollErrs, fmt.Errorf("%s: %w", name, err))
					mu.Unlock()
					return
				}
				if len(events) > 0 {
					eventChan <- namedEvents{name: name, events: events}
				}
			}
		}(m)
	}

	// Closing the channel once the last poller exits lets the print loop
	// finish instead of blocking with no producers left.
	go func() {
		wg.Wait()
		close(eventChan)
	}()

	for ne := range eventChan {
		for devType, devs := range ne.events {
			for id, event := range devs {
				action := "removed"
				if event == platform.DeviceInserted {
					action = "inserted"
				}
				fmt.Fprintf(a.stdout, "%s: %s %s %s\n", ne.name, devType, id, action)
			}
		}
	}
	return errors.Join(pollErrs...)
}
