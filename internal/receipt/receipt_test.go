package receipt

import (
	"strings"
	"testing"
	"time"

	"github.com/Franklivania/go-to-market/internal/model"
)

func ptr[T any](v T) *T { return &v }

func TestBuildAndRender(t *testing.T) {
	payment := &model.Payment{
		Reference:     "GTM-abc123",
		ReceiptNumber: "RCP-20260830-abc123",
		Amount:        57500.5,
		Currency:      "NGN",
		Status:        model.PaymentStatusSucceeded,
		ListIDs:       []string{"list_a", "list_gone"},
		CreatedAt:     time.Date(2026, 8, 30, 14, 30, 0, 0, time.UTC),
	}
	lists := map[string]model.MarketList{
		"list_a": {
			ID:    "list_a",
			Title: "Weekend market",
			Items: []model.ListItem{
				{Name: "Rice", Quantity: 2, Unit: model.UnitBag, Price: ptr(45000.0)},
				{Name: "Tomatoes", Quantity: 1, Unit: model.UnitCrates, Price: ptr(12500.5)},
			},
		},
	}

	data := Build(payment, lists)
	if len(data.Lists) != 2 {
		t.Fatalf("sections = %d, want 2", len(data.Lists))
	}
	if data.Lists[0].Title != "Weekend market" {
		t.Errorf("section title = %q", data.Lists[0].Title)
	}
	if data.Lists[0].Subtotal != "₦57,500.50" {
		t.Errorf("subtotal = %q, want ₦57,500.50", data.Lists[0].Subtotal)
	}
	if !strings.Contains(data.Lists[1].Title, "no longer available") {
		t.Errorf("missing-list section title = %q", data.Lists[1].Title)
	}
	if data.Total != "₦57,500.50" {
		t.Errorf("total = %q", data.Total)
	}

	var buf strings.Builder
	if err := Render(&buf, data); err != nil {
		t.Fatalf("Render: %v", err)
	}
	html := buf.String()
	for _, want := range []string{"Go To Market", "RCP-20260830-abc123", "GTM-abc123", "Rice", "₦45,000", "30 August 2026"} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered receipt missing %q", want)
		}
	}
}

func TestNumber(t *testing.T) {
	got := Number(time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), "x9k2f")
	want := "RCP-20260830-x9k2f"
	if got != want {
		t.Errorf("Number = %q, want %q", got, want)
	}
}
