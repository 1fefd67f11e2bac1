package validate

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestItemValid(t *testing.T) {
	fields, errs := Item(ItemInput{
		Name:     "  Basmati rice  ",
		Category: "grains",
		Quantity: json.Number("2"),
		Unit:     "bag",
		Price:    json.Number("45000.50"),
		Notes:    " long grain ",
	})
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if fields.Name != "Basmati rice" {
		t.Errorf("name = %q, want trimmed", fields.Name)
	}
	if fields.Quantity != 2 {
		t.Errorf("quantity = %v, want 2", fields.Quantity)
	}
	if fields.Price == nil || *fields.Price != 45000.50 {
		t.Errorf("price = %v, want 45000.50", fields.Price)
	}
	if fields.Notes != "long grain" {
		t.Errorf("notes = %q, want trimmed", fields.Notes)
	}
}

func TestItemOptionalPrice(t *testing.T) {
	fields, errs := Item(ItemInput{
		Name:     "Yam",
		Category: "tubers",
		Quantity: json.Number("5"),
		Unit:     "pcs",
	})
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if fields.Price != nil {
		t.Errorf("price = %v, want nil when omitted", fields.Price)
	}
}

func TestItemErrors(t *testing.T) {
	tests := []struct {
		name  string
		in    ItemInput
		field string
	}{
		{"missing name", ItemInput{Category: "fruit", Quantity: "1", Unit: "kg"}, "name"},
		{"long name", ItemInput{Name: strings.Repeat("x", 121), Category: "fruit", Quantity: "1", Unit: "kg"}, "name"},
		{"bad category", ItemInput{Name: "A", Category: "gadgets", Quantity: "1", Unit: "kg"}, "category"},
		{"bad unit", ItemInput{Name: "A", Category: "fruit", Quantity: "1", Unit: "litres"}, "unit"},
		{"missing quantity", ItemInput{Name: "A", Category: "fruit", Unit: "kg"}, "quantity"},
		{"zero quantity", ItemInput{Name: "A", Category: "fruit", Quantity: "0", Unit: "kg"}, "quantity"},
		{"negative quantity", ItemInput{Name: "A", Category: "fruit", Quantity: "-2", Unit: "kg"}, "quantity"},
		{"non-numeric quantity", ItemInput{Name: "A", Category: "fruit", Quantity: "two", Unit: "kg"}, "quantity"},
		{"negative price", ItemInput{Name: "A", Category: "fruit", Quantity: "1", Unit: "kg", Price: "-5"}, "price"},
		{"non-numeric price", ItemInput{Name: "A", Category: "fruit", Quantity: "1", Unit: "kg", Price: "cheap"}, "price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := Item(tt.in)
			if errs == nil {
				t.Fatal("want validation errors, got none")
			}
			if _, ok := errs[tt.field]; !ok {
				t.Errorf("errors = %v, want entry for %q", errs, tt.field)
			}
		})
	}
}

func TestItemChangesPartial(t *testing.T) {
	name := " Tilapia "
	qty := json.Number("3")
	changes, errs := ItemChanges(ItemChangesInput{Name: &name, Quantity: &qty})
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if changes.Name == nil || *changes.Name != "Tilapia" {
		t.Errorf("name = %v, want Tilapia", changes.Name)
	}
	if changes.Quantity == nil || *changes.Quantity != 3 {
		t.Errorf("quantity = %v, want 3", changes.Quantity)
	}
	if changes.Category != nil || changes.Unit != nil || changes.Price != nil || changes.Notes != nil {
		t.Errorf("untouched fields set: %+v", changes)
	}
}

func TestItemChangesRejectsBadFields(t *testing.T) {
	empty := "   "
	badCat := "gadgets"
	_, errs := ItemChanges(ItemChangesInput{Name: &empty, Category: &badCat})
	if errs == nil {
		t.Fatal("want validation errors, got none")
	}
	if _, ok := errs["name"]; !ok {
		t.Errorf("errors = %v, want name entry", errs)
	}
	if _, ok := errs["category"]; !ok {
		t.Errorf("errors = %v, want category entry", errs)
	}
}
