package gpio

import "errors"

// Configuration errors
var (
	ErrNoChip        = errors.New("no GPIO chip configured")
	ErrBadLineConfig = errors.New("invalid line configuration")
	ErrNoEEPROMAddr  = errors.New("eeprom-bus set without eeprom-addr")
)

// Hardware access errors
var (
	ErrChipOpen    = errors.New("failed to open GPIO chip")
	ErrLineRequest = errors.New("failed to request GPIO line")
	ErrLineRead    = errors.New("failed to read GPIO line")
	ErrLineWrite   = errors.New("failed to write GPIO line")
)
