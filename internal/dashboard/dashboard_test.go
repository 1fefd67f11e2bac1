package dashboard

import (
	"slices"
	"testing"
	"time"
)

func TestGreeting(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{5, "Good morning"},
		{11, "Good morning"},
		{12, "Good afternoon"},
		{16, "Good afternoon"},
		{17, "Good evening"},
		{20, "Good evening"},
		{21, "Shopping late?"},
		{2, "Shopping late?"},
	}
	for _, tt := range tests {
		if got := greeting(tt.hour); got != tt.want {
			t.Errorf("greeting(%d) = %q, want %q", tt.hour, got, tt.want)
		}
	}
}

func TestBuild(t *testing.T) {
	now := time.Date(2026, 8, 31, 9, 15, 0, 0, time.UTC)
	v := Build(now, State{})

	if v.Greeting != "Good morning" {
		t.Errorf("greeting = %q", v.Greeting)
	}
	if v.DateLine != "Monday, 9:15 AM" {
		t.Errorf("date line = %q, want Monday, 9:15 AM", v.DateLine)
	}
	if !slices.Contains(inspirations, v.Inspiration) {
		t.Errorf("inspiration %q not from the pool", v.Inspiration)
	}
}

func TestTipPools(t *testing.T) {
	if got := tip(State{}); got != firstTimeTips[0] {
		t.Errorf("first-time tip = %q, want the fixed opener", got)
	}
	if got := tip(State{HasLists: true}); !slices.Contains(returningTips, got) {
		t.Errorf("returning tip %q not from the pool", got)
	}
	if got := tip(State{HasLists: true, HasPlacedOrder: true}); !slices.Contains(orderPlacedTips, got) {
		t.Errorf("order tip %q not from the pool", got)
	}
}
