package enums

import "fmt"

// InventoryStatus describes the stock level advertised on a product listing.
type InventoryStatus string

const (
	InventoryStatusInStock    InventoryStatus = "IN_STOCK"
	InventoryStatusLowStock   InventoryStatus = "LOW_STOCK"
	InventoryStatusOutOfStock InventoryStatus = "OUT_OF_STOCK"
)

var validInventoryStatuses = []InventoryStatus{
	InventoryStatusInStock,
	InventoryStatusLowStock,
	InventoryStatusOutOfStock,
}

// String implements fmt.Stringer.
func (s InventoryStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known InventoryStatus.
func (s InventoryStatus) IsValid() bool {
	for _, candidate := range validInventoryStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseInventoryStatus converts raw input into an InventoryStatus.
func ParseInventoryStatus(value string) (InventoryStatus, error) {
	for _, candidate := range validInventoryStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid inventory status %q", value)
}
