// Copyright 2026 The Saturn Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License
// file.

package saturation

import "github.com/pkg/errors"

// Kind classifies a saturation error per spec §7.
type Kind int

const (
	// ConfigKind: invalid option combination, detected at construction
	// before any clause flows.
	ConfigKind Kind = iota
	// UserKind: bad input (unsupported theory, undeclared symbol).
	UserKind
	// InternalKind: invariant violation (store mismatch, index/container
	// disagreement).
	InternalKind
	// ResourceKind: memory or time exhaustion.
	ResourceKind
)

func (k Kind) String() string {
	switch k {
	case ConfigKind:
		return "Config"
	case UserKind:
		return "User"
	case InternalKind:
		return "Internal"
	case ResourceKind:
		return "Resource"
	default:
		return "?"
	}
}

// Error is a saturation-level error carrying a Kind and, for Internal
// errors, the offending invariant's name.
type Error struct {
	Kind      Kind
	Invariant string
	cause     error
}

func (e *Error) Error() string {
	if e.Invariant != "" {
		return e.Kind.String() + ": " + e.Invariant + ": " + e.cause.Error()
	}
	return e.Kind.String() + ": " + e.cause.Error()
}

func (e *Error) Unwrap() error { return e.cause }

// NewConfigError wraps msg as a Config-kind error.
func NewConfigError(msg string) error {
	return &Error{Kind: ConfigKind, cause: errors.New(msg)}
}

// NewUserError wraps err as a User-kind error with added context.
func NewUserError(err error, msg string) error {
	return &Error{Kind: UserKind, cause: errors.Wrap(err, msg)}
}

// NewInternalError reports an invariant violation named by invariant.
func NewInternalError(invariant string, err error) error {
	return &Error{Kind: InternalKind, Invariant: invariant, cause: errors.WithStack(err)}
}

// NewResourceError wraps err (a time/memory exhaustion condition) as a
// Resource-kind error.
func NewResourceError(err error) error {
	return &Error{Kind: ResourceKind, cause: err}
}
