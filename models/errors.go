package models

import (
	"github.com/pkg/errors"
)

// Analysis failures. These are never transient: each indicates a binary version the locators don't
// understand, or a structure that isn't there. Compare with errors.Cause().
var (
	ErrSymbolNotFound   = errors.New("symbol not found")
	ErrCallSiteNotFound = errors.New("call site not found")
	ErrEmulation        = errors.New("emulation failed")
	ErrUnstableArgument = errors.New("call argument not set by call site")
)
