package bundleconfig

import (
	"errors"
	"fmt"
)

var (
	// ErrPackageNotFound indicates a required npm package is not installed
	ErrPackageNotFound = errors.New("package not found")
	// ErrValidation indicates the config contains an invalid rule
	ErrValidation = errors.New("invalid bundler config")
	// ErrUnknownEnvironment indicates an environment other than production or development
	ErrUnknownEnvironment = errors.New("unknown environment")
	// ErrNilConfig indicates the update hook returned no config
	ErrNilConfig = errors.New("update hook returned a nil config")
)

// PackageResolutionError is returned when a package manifest cannot be located.
type PackageResolutionError struct {
	Package string
	Root    string
}

func (e *PackageResolutionError) Error() string {
	return fmt.Sprintf("%s: %q (searched node_modules from %s)", ErrPackageNotFound, e.Package, e.Root)
}

func (e *PackageResolutionError) Unwrap() error {
	return ErrPackageNotFound
}

// ValidationError names the rule that failed validation.
type ValidationError struct {
	Test   Pattern
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s for %s rule", ErrValidation, e.Reason, e.Test)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
