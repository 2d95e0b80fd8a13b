// Package catalog implements the mutation semantics of the pricing
// catalog on top of PocketBase records: validated create/update,
// soft deactivation, and the recompute-after-mutation rule that keeps
// derived price fields consistent with their inputs.
//
// Derived fields (material_cost, total_price, margin) are never accepted
// from callers; they are always written by the recompute paths in this
// package.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pocketbase/pocketbase/core"
)

var (
	// ErrCodeRequired is returned when an entity is created with a blank code.
	ErrCodeRequired = errors.New("code is required")

	// ErrDuplicateCode is returned when a code is already taken, active or not.
	ErrDuplicateCode = errors.New("code already in use")

	// ErrMissingReference is returned when a line or item points at an
	// entity that does not exist. References are validated here, at
	// creation time; the pricing engine itself skips dangling ones.
	ErrMissingReference = errors.New("referenced entity not found")
)

// codeInUse reports whether any record of the collection already carries
// the code. Inactive records count too: codes are never recycled.
func codeInUse(app core.App, collection, code, excludeID string) bool {
	records, _ := app.FindRecordsByFilter(collection,
		"code = {:code}", "", 1, 0, map[string]any{"code": code})
	return len(records) > 0 && records[0].Id != excludeID
}

// checkNewCode normalizes and validates a code for a new record.
func checkNewCode(app core.App, collection, code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", ErrCodeRequired
	}
	if codeInUse(app, collection, code, "") {
		return "", fmt.Errorf("%w: %s %q", ErrDuplicateCode, collection, code)
	}
	return code, nil
}

// deactivate flips the soft-delete flag. Records are never hard-deleted;
// history referencing them stays intact.
func deactivate(app core.App, collection, id string) error {
	record, err := app.FindRecordById(collection, id)
	if err != nil {
		return fmt.Errorf("%s %s not found: %w", collection, id, err)
	}
	record.Set("is_active", false)
	if err := app.Save(record); err != nil {
		return fmt.Errorf("deactivate %s %s: %w", collection, id, err)
	}
	return nil
}

// validateRate checks that a markup/waste rate is a decimal fraction in [0,1].
func validateRate(name string, v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("%s must be between 0 and 1, got %v", name, v)
	}
	return nil
}

// validatePrice checks that a monetary amount is non-negative.
func validatePrice(name string, v float64) error {
	if v < 0 {
		return fmt.Errorf("%s must not be negative, got %v", name, v)
	}
	return nil
}

// validateQuantity checks that a line/item quantity is strictly positive.
func validateQuantity(v float64) error {
	if v <= 0 {
		return fmt.Errorf("quantity must be positive, got %v", v)
	}
	return nil
}
