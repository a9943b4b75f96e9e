package domain

import "errors"

// Not-found sentinels, one per aggregate.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrLeadNotFound        = errors.New("lead not found")
	ErrTaskNotFound        = errors.New("task not found")
	ErrInteractionNotFound = errors.New("interaction not found")
)

// Authentication and authorization failures.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrForbidden          = errors.New("insufficient permissions")
	ErrSelfDelete         = errors.New("you cannot delete your own account")
)

// Persistence failures. ErrUserExists wraps ErrDuplicate so callers can
// match either one.
var (
	ErrDuplicate  = errors.New("duplicate entry")
	ErrUserExists = &wrapped{msg: "user with this email already exists", base: ErrDuplicate}
	ErrForeignKey = errors.New("referenced entity does not exist")
	ErrOutOfRange = errors.New("value does not fit the stored field")
	ErrDatabase   = errors.New("database error")
)

// Foreign key failures raised before a write.
var (
	ErrCustomerReference = &wrapped{msg: "referenced customer does not exist", base: ErrForeignKey}
	ErrUserReference     = &wrapped{msg: "referenced user does not exist", base: ErrForeignKey}
)

type wrapped struct {
	msg  string
	base error
}

func (w *wrapped) Error() string { return w.msg }
func (w *wrapped) Unwrap() error { return w.base }
