package primitives

import "errors"

// ErrInvalidData is the sentinel wrapped by every primitive Validate failure.
// internal/chartengine re-exports this same value as its own ErrInvalidData;
// this package stays a leaf with no dependency back on the engine.
var ErrInvalidData = errors.New("invalid data")
