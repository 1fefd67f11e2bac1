package model

// ItemCategory tags a list item with one of the app's fixed categories.
type ItemCategory string

const (
	CategoryFruit      ItemCategory = "fruit"
	CategoryTubers     ItemCategory = "tubers"
	CategoryGrains     ItemCategory = "grains"
	CategoryVegetables ItemCategory = "vegetables"
	CategoryPackaged   ItemCategory = "packaged"
	CategoryProtein    ItemCategory = "protein"
	CategoryOther      ItemCategory = "other"
)

// ItemCategoryLabels maps categories to their display names.
var ItemCategoryLabels = map[ItemCategory]string{
	CategoryFruit:      "Fruit",
	CategoryTubers:     "Tubers",
	CategoryGrains:     "Grains",
	CategoryVegetables: "Vegetables",
	CategoryPackaged:   "Packaged Goods",
	CategoryProtein:    "Protein",
	CategoryOther:      "Other",
}

// Valid reports whether c is one of the known categories.
func (c ItemCategory) Valid() bool {
	_, ok := ItemCategoryLabels[c]
	return ok
}

// MeasurementUnit is the unit an item quantity is expressed in.
type MeasurementUnit string

const (
	UnitKilogram MeasurementUnit = "kg"
	UnitGram     MeasurementUnit = "g"
	UnitPieces   MeasurementUnit = "pcs"
	UnitBag      MeasurementUnit = "bag"
	UnitCrates   MeasurementUnit = "crates"
	UnitOther    MeasurementUnit = "other"
)

var measurementUnits = map[MeasurementUnit]struct{}{
	UnitKilogram: {},
	UnitGram:     {},
	UnitPieces:   {},
	UnitBag:      {},
	UnitCrates:   {},
	UnitOther:    {},
}

// Valid reports whether u is one of the known units.
func (u MeasurementUnit) Valid() bool {
	_, ok := measurementUnits[u]
	return ok
}

// ListItem is a single entry on a market list. Timestamps are Unix
// milliseconds. Price is optional; a nil price counts as zero in totals.
type ListItem struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Category  ItemCategory    `json:"category"`
	Quantity  float64         `json:"quantity"`
	Unit      MeasurementUnit `json:"unit"`
	Price     *float64        `json:"price,omitempty"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt int64           `json:"createdAt"`
	UpdatedAt int64           `json:"updatedAt"`
}

// PriceOrZero returns the item price, treating an absent price as zero.
func (it ListItem) PriceOrZero() float64 {
	if it.Price == nil {
		return 0
	}
	return *it.Price
}

// MarketList is a shopping list. IsDraft stays true from creation until an
// explicit checkout; checked-out lists double as order history.
type MarketList struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Items     []ListItem `json:"items"`
	CreatedAt int64      `json:"createdAt"`
	UpdatedAt int64      `json:"updatedAt"`
	IsDraft   bool       `json:"isDraft"`
}

// TotalPrice sums the item prices, treating absent prices as zero.
func (l MarketList) TotalPrice() float64 {
	var sum float64
	for _, it := range l.Items {
		sum += it.PriceOrZero()
	}
	return sum
}
