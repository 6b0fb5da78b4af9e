/*
Package errs provides custom error types and application-level error code constants.

These error codes identify specific client-side failures both internally and in
messages shown to the user.
*/
package errs

// 1xxx: Validation Errors (caught before any network call)
const (
	// ErrInvalidParams indicates that input validation failed.
	ErrInvalidParams = 1001

	// ErrQuantityBelowMin indicates an attempt to lower a purchase quantity below one.
	ErrQuantityBelowMin = 1101

	// ErrQuantityAboveStock indicates an attempt to raise a purchase quantity past the available stock.
	ErrQuantityAboveStock = 1102

	// ErrQuantityOutOfRange indicates a purchase quantity outside [1, stock] at submission time.
	ErrQuantityOutOfRange = 1103

	// ErrDraftIncomplete indicates an order draft missing its product, SKU, or merchant reference.
	ErrDraftIncomplete = 1104

	// ErrDraftNotFound indicates a lookup for a draft id that is not registered.
	ErrDraftNotFound = 1105
)

// 2xxx: Application Errors (non-zero remote envelope code)
const (
	// ErrRemoteRejected indicates that the remote service answered with a
	// non-zero envelope code; the server-supplied message is carried along.
	ErrRemoteRejected = 2001
)

// 3xxx: Identity Errors
const (
	// ErrNotAuthenticated indicates that no session token is stored.
	ErrNotAuthenticated = 3001

	// ErrTokenUndecodable indicates a stored token whose payload could not be decoded.
	ErrTokenUndecodable = 3002
)

// 4xxx: Transport Errors
const (
	// ErrTransport indicates a network-level failure reaching the remote service.
	ErrTransport = 4001
)

// 5xxx: Internal Errors
const (
	// ErrUnknown represents an unclassified client-side failure.
	ErrUnknown = 5000
)
