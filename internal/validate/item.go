// Package validate checks API input before it reaches the list store.
// The store trusts its inputs, so everything user-supplied passes
// through here first.
package validate

import (
	"encoding/json"
	"strings"

	"github.com/Franklivania/go-to-market/internal/liststore"
	"github.com/Franklivania/go-to-market/internal/model"
)

const maxNameLength = 120

// ItemInput is the wire shape for creating an item. Numbers arrive as
// json.Number so "2" and 2 both work and bad values produce a field
// error instead of a decode failure.
type ItemInput struct {
	Name     string      `json:"name"`
	Category string      `json:"category"`
	Quantity json.Number `json:"quantity"`
	Unit     string      `json:"unit"`
	Price    json.Number `json:"price"`
	Notes    string      `json:"notes"`
}

// Item validates the input and returns the store-ready fields. On
// failure the map holds one message per offending field.
func Item(in ItemInput) (liststore.ItemFields, map[string]string) {
	errs := make(map[string]string)
	var fields liststore.ItemFields

	fields.Name = strings.TrimSpace(in.Name)
	if fields.Name == "" {
		errs["name"] = "name is required"
	} else if len(fields.Name) > maxNameLength {
		errs["name"] = "name is too long"
	}

	fields.Category = model.ItemCategory(in.Category)
	if !fields.Category.Valid() {
		errs["category"] = "unknown category"
	}

	fields.Unit = model.MeasurementUnit(in.Unit)
	if !fields.Unit.Valid() {
		errs["unit"] = "unknown unit"
	}

	if in.Quantity == "" {
		errs["quantity"] = "quantity is required"
	} else if q, err := in.Quantity.Float64(); err != nil {
		errs["quantity"] = "quantity must be a number"
	} else if q <= 0 {
		errs["quantity"] = "quantity must be greater than zero"
	} else {
		fields.Quantity = q
	}

	if in.Price != "" {
		if p, err := in.Price.Float64(); err != nil {
			errs["price"] = "price must be a number"
		} else if p < 0 {
			errs["price"] = "price cannot be negative"
		} else {
			fields.Price = &p
		}
	}

	fields.Notes = strings.TrimSpace(in.Notes)

	if len(errs) > 0 {
		return liststore.ItemFields{}, errs
	}
	return fields, nil
}

// ItemChangesInput is the wire shape for a partial item update. Absent
// fields stay untouched.
type ItemChangesInput struct {
	Name     *string      `json:"name"`
	Category *string      `json:"category"`
	Quantity *json.Number `json:"quantity"`
	Unit     *string      `json:"unit"`
	Price    *json.Number `json:"price"`
	Notes    *string      `json:"notes"`
}

// ItemChanges validates a partial update against the same rules as Item,
// field by field.
func ItemChanges(in ItemChangesInput) (liststore.ItemChanges, map[string]string) {
	errs := make(map[string]string)
	var changes liststore.ItemChanges

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			errs["name"] = "name is required"
		} else if len(name) > maxNameLength {
			errs["name"] = "name is too long"
		} else {
			changes.Name = &name
		}
	}

	if in.Category != nil {
		cat := model.ItemCategory(*in.Category)
		if !cat.Valid() {
			errs["category"] = "unknown category"
		} else {
			changes.Category = &cat
		}
	}

	if in.Unit != nil {
		unit := model.MeasurementUnit(*in.Unit)
		if !unit.Valid() {
			errs["unit"] = "unknown unit"
		} else {
			changes.Unit = &unit
		}
	}

	if in.Quantity != nil {
		if q, err := in.Quantity.Float64(); err != nil {
			errs["quantity"] = "quantity must be a number"
		} else if q <= 0 {
			errs["quantity"] = "quantity must be greater than zero"
		} else {
			changes.Quantity = &q
		}
	}

	if in.Price != nil {
		if p, err := in.Price.Float64(); err != nil {
			errs["price"] = "price must be a number"
		} else if p < 0 {
			errs["price"] = "price cannot be negative"
		} else {
			changes.Price = &p
		}
	}

	if in.Notes != nil {
		notes := strings.TrimSpace(*in.Notes)
		changes.Notes = &notes
	}

	if len(errs) > 0 {
		return liststore.ItemChanges{}, errs
	}
	return changes, nil
}
