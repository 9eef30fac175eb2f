package chartengine

import (
	"errors"
	"fmt"

	"github.com/luhouxiang/chartcore/internal/primitives"
)

// ErrInvalidViewport is returned when a viewport's width or height is <= 0
// (spec §7).
var ErrInvalidViewport = errors.New("invalid viewport")

// ErrInvalidData is the engine-wide re-export of the leaf packages'
// validation sentinel, so callers can errors.Is against one name regardless
// of which internal package raised it (spec §7, "InvalidData").
var ErrInvalidData = primitives.ErrInvalidData

func invalidViewport(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidViewport, fmt.Sprintf(format, args...))
}
