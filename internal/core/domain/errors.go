package domain

import "errors"

// Common domain errors. Validation and conflict errors map to 400/409,
// not-found to 404, auth errors to 401/403, everything else to 500.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInternalServer     = errors.New("internal server error")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// User errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrInvalidPassword   = errors.New("invalid password")
)

// Asset errors
var (
	ErrAssetNotFound         = errors.New("asset not found")
	ErrHoldingAssetNotFound  = errors.New("holding asset not found")
	ErrInvalidAssetType      = errors.New("invalid asset type")
	ErrInvalidAssetState     = errors.New("invalid asset state")
	ErrDuplicateAssetNumber  = errors.New("asset number already in use")
	ErrDuplicateSerialNumber = errors.New("serial number already in use")
	ErrLocationNotFound      = errors.New("location not found")
	ErrDepartmentNotFound    = errors.New("department not found")
)
