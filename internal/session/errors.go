package session

import "errors"

const (
	MsgLoginFailed  = "failed to log in"
	MsgSignupFailed = "failed to create an account"
	MsgBadMobile    = "mobile number must be 10 digits"
)

type Kind int

const (
	// KindAuth covers every provider-side failure: bad credentials, network
	// errors, rejections. They are deliberately not told apart.
	KindAuth Kind = iota + 1
	// KindValidation is a local input check that failed before any call to
	// the provider.
	KindValidation
)

// Error is what the controller hands back to the view. It carries only a
// user-facing message; provider detail is logged, never returned.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func IsValidation(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindValidation
}

func authError(msg string) error {
	return &Error{Kind: KindAuth, Msg: msg}
}

func validationError(msg string) error {
	return &Error{Kind: KindValidation, Msg: msg}
}
