package service

import "errors"

// Common service errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when there's a conflict (e.g., duplicate)
	ErrConflict = errors.New("resource conflict")

	// ErrUnauthorized is returned when the user is not authenticated
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidCredentials is returned when login email/password do not match
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrProfileDisabled is returned when a deactivated profile tries to log in
	ErrProfileDisabled = errors.New("profile is disabled")

	// ErrEmailTaken is returned when creating a profile with an email already in use
	ErrEmailTaken = errors.New("email already in use")

	// ErrInvalidStatus is returned on a disallowed status transition
	ErrInvalidStatus = errors.New("invalid status transition")

	// ErrCategoryHasProducts is returned when deleting a category that still has products
	ErrCategoryHasProducts = errors.New("category still has products")

	// ErrSheetNotCompleted is returned when quoting from a sheet that is still a draft
	ErrSheetNotCompleted = errors.New("spec sheet is not completed")

	// ErrNoItemsSelected is returned when a sheet is built from an empty item set
	ErrNoItemsSelected = errors.New("no measurement items selected")

	// ErrWarehouseUnavailable is returned when campaign actuals are requested
	// but the sales warehouse is not configured
	ErrWarehouseUnavailable = errors.New("sales warehouse unavailable")
)
