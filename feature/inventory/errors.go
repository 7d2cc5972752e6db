package inventory

import "errors"

// Error taxonomy for the sync engine.
//
// ErrPrecondition: required identity/context missing, call fails before any
// local state changes. ErrNotFound: referenced item/size absent from the
// local cache, call fails. Remote failures are wrapped gorm/minio errors;
// callers detect them simply by err != nil after the optimistic apply and
// revert (or reload) accordingly. Transient follow-up lookup failures from
// push events are logged and swallowed, never surfaced.
var (
	ErrPrecondition = errors.New("precondition failed")
	ErrNotFound     = errors.New("not found in cache")
)
