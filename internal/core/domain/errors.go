package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordPolicy     = errors.New("password must be at least 6 characters with upper, lower, digit, and symbol")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrForbidden          = errors.New("access forbidden")

	ErrInviteExists   = errors.New("a registration link has already been sent to this email")
	ErrInviteInvalid  = errors.New("invalid or expired registration link")
	ErrInviteNotFound = errors.New("registration token not found")

	ErrEmployeeNotFound      = errors.New("employee not found")
	ErrApplicationLocked     = errors.New("application is pending or already approved")
	ErrApplicationNotPending = errors.New("application is not pending review")
	ErrFeedbackRequired      = errors.New("feedback is required when rejecting")
	ErrInvalidSection        = errors.New("invalid personal info section")
	ErrInvalidPatch          = errors.New("invalid section payload")
	ErrSearchQueryRequired   = errors.New("search query is required")

	ErrInvalidDocumentType = errors.New("invalid document type")
	ErrDocumentExists      = errors.New("document of this type already exists")
	ErrDocumentNotFound    = errors.New("document not found")
	ErrDocumentNotRejected = errors.New("only rejected documents can be re-uploaded")
	ErrDocumentNotPending  = errors.New("document is not pending review")
	ErrFileRequired        = errors.New("file is required")

	ErrReminderThrottled = errors.New("a reminder was already sent recently")
)
