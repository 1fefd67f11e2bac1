// Package dashboard assembles the home screen greeting, date line and
// contextual tips.
package dashboard

import (
	"math/rand/v2"
	"time"
)

var inspirations = []string{
	"Plan it, price it, buy it.",
	"A good list is half the shopping done.",
	"Fresh finds start with a fresh list.",
	"Today's market favours the prepared.",
	"Small savings on every line add up.",
}

var firstTimeTips = []string{
	"Tap the plus button to start your first market list.",
	"Add prices as you plan to see your total before you shop.",
	"Group items by category to move through the market faster.",
}

var returningTips = []string{
	"Long-press an item to update its price or quantity.",
	"Clear a list to reuse it for your next market run.",
	"Swipe an item to remove it from the list.",
	"Your drafts are saved automatically as you type.",
}

var orderPlacedTips = []string{
	"View your receipt any time from your order history.",
	"Start a fresh list for your next trip from the home screen.",
	"Checked-out lists stay around so you can compare prices over time.",
}

// State describes what the visitor has done so far.
type State struct {
	HasLists       bool
	HasPlacedOrder bool
}

// View is the assembled home screen copy.
type View struct {
	Greeting    string `json:"greeting"`
	DateLine    string `json:"dateLine"`
	Inspiration string `json:"inspiration"`
	Tip         string `json:"tip"`
}

// Build assembles the view for the given moment and visitor state.
func Build(now time.Time, state State) View {
	return View{
		Greeting:    greeting(now.Hour()),
		DateLine:    now.Format("Monday, 3:04 PM"),
		Inspiration: inspirations[rand.IntN(len(inspirations))],
		Tip:         tip(state),
	}
}

func greeting(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "Good morning"
	case hour >= 12 && hour < 17:
		return "Good afternoon"
	case hour >= 17 && hour < 21:
		return "Good evening"
	default:
		return "Shopping late?"
	}
}

// tip picks copy for the visitor's situation. First-timers always see
// the same opening tip; the other pools rotate.
func tip(state State) string {
	switch {
	case !state.HasLists:
		return firstTimeTips[0]
	case state.HasPlacedOrder:
		return orderPlacedTips[rand.IntN(len(orderPlacedTips))]
	default:
		return returningTips[rand.IntN(len(returningTips))]
	}
}
