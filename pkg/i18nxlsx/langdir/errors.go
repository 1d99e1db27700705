package langdir

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat indicates an unknown translation file format.
var ErrUnsupportedFormat = errors.New("unsupported translation format")

// LoadError reports a language whose translation files could not be loaded.
type LoadError struct {
	Language string
	Path     string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load language %q from %s: %v", e.Language, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
