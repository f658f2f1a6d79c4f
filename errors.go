package particlefx

import (
	"errors"
	"fmt"
)

// ErrUnknownEffectType is wrapped with the offending name when a type is not registered.
var ErrUnknownEffectType = errors.New("unknown effect type")

// ErrNotInitialized is returned by host operations that need Init first.
var ErrNotInitialized = errors.New("host not initialized")

type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Reason)
}

// ResourceDisposalError reports a resource whose release failed. Disposal
// continues with the remaining resources.
type ResourceDisposalError struct {
	Resource string
	Err      error
}

func (e *ResourceDisposalError) Error() string {
	return fmt.Sprintf("release %s: %v", e.Resource, e.Err)
}

func (e *ResourceDisposalError) Unwrap() error {
	return e.Err
}

// UpdateFault is reported when an effect panics inside Update or Dispose.
type UpdateFault struct {
	Effect EffectType
	Value  any
}

func (e *UpdateFault) Error() string {
	return fmt.Sprintf("effect %s faulted: %v", e.Effect, e.Value)
}

// ErrAlreadyInitialized is returned by Init on a host that was not destroyed.
var ErrAlreadyInitialized = errors.New("host already initialized")
