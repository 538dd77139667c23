package repo

import "errors"

var (
	// ErrItemNotFound is returned when an item is not found in the repository.
	ErrItemNotFound = errors.New("item not found")
	// ErrRequestNotFound is returned when a request is not found.
	ErrRequestNotFound = errors.New("request not found")
	// ErrLoanNotFound is returned when a loan is not found.
	ErrLoanNotFound = errors.New("loan not found")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrNotificationNotFound is returned when a notification is not found.
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrDuplicatedValueUnique is returned on unique-constraint violations.
	ErrDuplicatedValueUnique = errors.New("duplicated value for unique column")
	// ErrInvalidQuantityChange is returned when an adjustment would drive
	// an item's quantity negative.
	ErrInvalidQuantityChange = errors.New("quantity cannot become negative")
	// ErrInsufficientStock is returned when a borrow asks for more than the
	// item's available (quantity minus borrowed) units.
	ErrInsufficientStock = errors.New("insufficient stock available")
	// ErrAlreadyApproved is returned when approving a request that is
	// already approved; the stock deduction must never fire twice.
	ErrAlreadyApproved = errors.New("request already approved")
	// ErrRequestNotPending is returned when approving a request whose
	// status is neither pending nor approved.
	ErrRequestNotPending = errors.New("request is not pending")
	// ErrLoanAlreadyReturned is returned when returning a loan that is not
	// active anymore.
	ErrLoanAlreadyReturned = errors.New("loan already returned")
)
