package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a referenced business, template, strategy or
// output profile does not exist in the registry.
var ErrNotFound = errors.New("not found")

// ConfigInvalidError reports every invariant violation found during Validate.
// A registry with a non-empty violation list refuses to activate.
type ConfigInvalidError struct {
	Violations []string
}

func (e *ConfigInvalidError) Error() string {
	return fmt.Sprintf("invalid catalog: %d violation(s):\n- %s",
		len(e.Violations), strings.Join(e.Violations, "\n- "))
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}
