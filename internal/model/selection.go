package model

import (
	"fmt"

	"github.com/calebward/fueltally/internal/common"
)

// Field names a mutable numeric field of a line item.
type Field string

// Mutable line item fields.
const (
	FieldQuantity  Field = "quantity"
	FieldHours     Field = "hours"
	FieldIdleHours Field = "idleHours"
)

// Selection is the mutable set of line items being assembled into the next
// round. Names are unique within a selection.
type Selection struct {
	Items []LineItem
}

// Add puts an equipment type into the selection. Re-adding a name already
// present increments its quantity instead of duplicating the entry, and
// invalidates its estimate either way.
func (s *Selection) Add(eq Equipment) *LineItem {
	for i := range s.Items {
		if s.Items[i].Name == eq.Name {
			s.Items[i].Quantity++
			s.Items[i].ClearEstimate()
			return &s.Items[i]
		}
	}
	s.Items = append(s.Items, NewLineItem(eq))
	return &s.Items[len(s.Items)-1]
}

// Update sets one numeric field on the line item with the given ID. Values
// are clamped to zero from below, and the item's estimate is invalidated.
func (s *Selection) Update(id string, field Field, value float64) error {
	for i := range s.Items {
		if s.Items[i].ID != id {
			continue
		}
		if value < 0 {
			value = 0
		}
		switch field {
		case FieldQuantity:
			s.Items[i].Quantity = int(value)
		case FieldHours:
			s.Items[i].Hours = value
		case FieldIdleHours:
			s.Items[i].IdleHours = value
		default:
			return fmt.Errorf("unknown field %q", field)
		}
		s.Items[i].ClearEstimate()
		return nil
	}
	return fmt.Errorf("line item %s: %w", id, common.ErrNotFound)
}

// Remove deletes the line item with the given ID.
func (s *Selection) Remove(id string) error {
	for i := range s.Items {
		if s.Items[i].ID == id {
			s.Items = append(s.Items[:i], s.Items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("line item %s: %w", id, common.ErrNotFound)
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.Items = nil
}

// Snapshot returns a deep, independent copy of the selection's items.
// Recorded rounds hold snapshots, so later edits to the live selection
// never reach them.
func (s *Selection) Snapshot() []LineItem {
	return CloneItems(s.Items)
}

// Estimated reports whether every item in a non-empty selection carries
// fuel figures from a classification pass.
func (s *Selection) Estimated() bool {
	if len(s.Items) == 0 {
		return false
	}
	for i := range s.Items {
		if !s.Items[i].Estimated() {
			return false
		}
	}
	return true
}
