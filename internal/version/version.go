// Package version reports build version information for chassisd binaries.
package version

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
)

// BuildVersion is overridden at link time via
// -ldflags "-X .../internal/version.BuildVersion=v1.2.3".
var BuildVersion = ""

// String returns the version baked in at link time, falling back to the Go
// module version when built with module support.
func String() string {
	if BuildVersion != "" {
		return BuildVersion
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(unknown)"
}

// ShowVersion prints the program name and version to stdout.
func ShowVersion() {
	fmt.Printf("%s %s\n", filepath.Base(os.Args[0]), String())
}
