package modulectl

import "errors"

var (
	ErrNoModules = errors.New("no modules configured")
)
