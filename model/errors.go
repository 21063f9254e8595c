// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package model

import (
	"errors"
	"fmt"
)

// ErrSinkClosed is returned by PushSink operations after Close, or before
// the sink has been initialized.
var ErrSinkClosed = errors.New("push sink is closed")

// ErrPushCancelled is returned by a Producer to acknowledge cancellation.
// PushSink.Close treats it as a normal exit.
var ErrPushCancelled = errors.New("push cancelled")

// ConfigurationError reports malformed customization input: conflicting
// nullability aliases, an unresolvable namespace, an invalid store_as
// value. It is surfaced synchronously and is never retried.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration: " + e.Reason
}

func configErrorf(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

// PatternError reports a constraint pattern that failed to compile. It is
// raised at assignment time, not deferred to validation time.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}
