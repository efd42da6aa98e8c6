package domain

import "errors"

// Sentinel errors for the catalog domain. Use errors.Is() to check these.
var (
	// ErrCategoryNotFound indicates the requested category does not exist.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrItemNotFound indicates the requested item does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrNotItemOwner indicates the acting user does not own the item.
	// Surfaced to the browser as a flash + redirect, never a hard status.
	ErrNotItemOwner = errors.New("user is not the item owner")

	// ErrInvalidItemFields indicates a required item field is empty or too long.
	ErrInvalidItemFields = errors.New("invalid item fields")

	// ErrRowAnomaly indicates a primary-key lookup matched more than one row.
	// A precondition violation of the schema; always an internal error.
	ErrRowAnomaly = errors.New("primary-key lookup matched more than one row")
)
