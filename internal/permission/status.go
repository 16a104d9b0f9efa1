// Package permission models the user's consent state for a host resource
// such as the Bluetooth radio or the address book.
package permission

// Status is the authorization state reported by the host.
type Status int

const (
	NotDetermined Status = iota
	Restricted
	Denied
	Authorized
)

func (s Status) String() string {
	switch s {
	case Restricted:
		return "restricted"
	case Denied:
		return "denied"
	case Authorized:
		return "authorized"
	default:
		return "not determined"
	}
}

// IsDenied reports whether the status blocks access. NotDetermined is not
// denied: the user has simply not been asked yet.
func (s Status) IsDenied() bool {
	return s == Denied || s == Restricted
}

// Authorizer is a synchronous query of the current authorization status.
// Implementations must read the host state on every call.
type Authorizer interface {
	AuthorizationStatus() Status
}

// AuthorizerFunc adapts a plain function to Authorizer.
type AuthorizerFunc func() Status

func (f AuthorizerFunc) AuthorizationStatus() Status { return f() }

// Always returns an Authorizer that reports s forever.
func Always(s Status) Authorizer {
	return AuthorizerFunc(func() Status { return s })
}
