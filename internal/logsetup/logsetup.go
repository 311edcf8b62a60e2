// Package logsetup configures the standard logger for chassisd binaries.
// Import it for side effects:
//
//	import _ "github.com/chassiskit/chassisd/internal/logsetup"
package logsetup

import (
	"log"
	"os"
	"path/filepath"
)

func init() {
	log.SetFlags(log.LstdFlags | log.Lmsgprefix)
	log.SetPrefix(filepath.Base(os.Args[0]) + ": ")
}
