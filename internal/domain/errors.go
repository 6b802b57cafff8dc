// Package domain defines the error taxonomy shared by the workflow services.
// Handlers surface these verbatim; anything else is masked outside development.
package domain

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindInvalidInput         Kind = "invalid_input"
	KindNoData               Kind = "no_data"
	KindCartConflict         Kind = "cart_conflict"
	KindInvalidOrder         Kind = "invalid_order"
	KindInvitation           Kind = "invitation"
	KindAuthorization        Kind = "authorization"
	KindNotificationDelivery Kind = "notification_delivery"
)

// Error is a domain failure the caller is expected to handle.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func InvalidInput(format string, args ...any) *Error {
	return newf(KindInvalidInput, format, args...)
}

func NoData(format string, args ...any) *Error {
	return newf(KindNoData, format, args...)
}

func CartConflict(format string, args ...any) *Error {
	return newf(KindCartConflict, format, args...)
}

func InvalidOrder(format string, args ...any) *Error {
	return newf(KindInvalidOrder, format, args...)
}

func Invitation(format string, args ...any) *Error {
	return newf(KindInvitation, format, args...)
}

func Authorization(format string, args ...any) *Error {
	return newf(KindAuthorization, format, args...)
}

// NotificationDelivery wraps a failed outbound notification. Non-fatal:
// callers report it but do not roll back the triggering mutation.
func NotificationDelivery(err error) *Error {
	return &Error{Kind: KindNotificationDelivery, Msg: "notification delivery failed", Err: err}
}

// KindOf returns the domain kind of err, or "" if err is not a domain error.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
