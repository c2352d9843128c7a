package templates

import (
	"fmt"

	"golang.org/x/text/message"
)

// Localizer provides translated strings for components.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// T returns a translated string, or the formatted key if no localizer is
// available.
func T(loc Localizer, key message.Reference, args ...any) string {
	if loc == nil {
		keyString, ok := key.(string)
		if !ok {
			return ""
		}
		if len(args) == 0 {
			return keyString
		}
		return fmt.Sprintf(keyString, args...)
	}
	return loc.Sprintf(key, args...)
}
