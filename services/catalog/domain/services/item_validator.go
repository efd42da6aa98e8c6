// Package services contains stateless domain services for the catalog
// bounded context. They operate purely on domain types with no dependencies
// beyond stdlib and the domain layer.
package services

import (
	"fmt"
	"strings"
)

// maxFieldLength matches the varchar(250) columns of the persisted schema.
const maxFieldLength = 250

// ValidateItemFields enforces the item form contract: name and description
// must be non-empty and fit the schema columns. Runs BEFORE any stored
// record is touched, so a blanking update is rejected without mutation.
func ValidateItemFields(name, description string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("item name must not be empty")
	}
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("item description must not be empty")
	}
	if len(name) > maxFieldLength {
		return fmt.Errorf("item name must not exceed %d characters", maxFieldLength)
	}
	if len(description) > maxFieldLength {
		return fmt.Errorf("item description must not exceed %d characters", maxFieldLength)
	}
	return nil
}
