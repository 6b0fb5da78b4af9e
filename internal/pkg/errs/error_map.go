package errs

// errorMap associates every error code with its message template and kind.
// Messages containing formatting placeholders are filled in by NewError.
var errorMap = map[int]CustomError{
	ErrInvalidParams: {
		Code:    ErrInvalidParams,
		Message: "invalid parameters: %s",
		Kind:    KindValidation,
	},
	ErrQuantityBelowMin: {
		Code:    ErrQuantityBelowMin,
		Message: "purchase quantity cannot be lower than 1",
		Kind:    KindValidation,
	},
	ErrQuantityAboveStock: {
		Code:    ErrQuantityAboveStock,
		Message: "at most %d item(s) can be purchased",
		Kind:    KindValidation,
	},
	ErrQuantityOutOfRange: {
		Code:    ErrQuantityOutOfRange,
		Message: "purchase quantity must be between 1 and %d",
		Kind:    KindValidation,
	},
	ErrDraftIncomplete: {
		Code:    ErrDraftIncomplete,
		Message: "order draft is incomplete and cannot be submitted",
		Kind:    KindValidation,
	},
	ErrDraftNotFound: {
		Code:    ErrDraftNotFound,
		Message: "order draft %q does not exist",
		Kind:    KindValidation,
	},
	ErrRemoteRejected: {
		Code:    ErrRemoteRejected,
		Message: "request rejected: %s",
		Kind:    KindApplication,
	},
	ErrNotAuthenticated: {
		Code:    ErrNotAuthenticated,
		Message: "not logged in",
		Kind:    KindIdentity,
	},
	ErrTokenUndecodable: {
		Code:    ErrTokenUndecodable,
		Message: "session is no longer valid, please log in again",
		Kind:    KindIdentity,
	},
	ErrTransport: {
		Code:    ErrTransport,
		Message: "network error, please try again",
		Kind:    KindTransport,
	},
	ErrUnknown: {
		Code:    ErrUnknown,
		Message: "an unexpected error occurred",
		Kind:    KindInternal,
	},
}
