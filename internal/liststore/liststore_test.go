package liststore

import (
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/Franklivania/go-to-market/internal/model"
)

type memStorage struct {
	docs map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{docs: make(map[string][]byte)}
}

func (m *memStorage) Load(key string) ([]byte, bool, error) {
	v, ok := m.docs[key]
	return v, ok, nil
}

func (m *memStorage) Save(key string, value []byte) error {
	m.docs[key] = value
	return nil
}

func newTestStore(t *testing.T) (*Store, *memStorage) {
	t.Helper()
	mem := newMemStorage()
	s, err := New(mem, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, mem
}

func ptr[T any](v T) *T { return &v }

func TestTotalPriceSumsPresentPrices(t *testing.T) {
	s, _ := newTestStore(t)

	s.AddItem(ItemFields{Name: "Rice", Category: model.CategoryGrains, Quantity: 2, Unit: model.UnitBag, Price: ptr(45000.0)})
	s.AddItem(ItemFields{Name: "Tomatoes", Category: model.CategoryVegetables, Quantity: 1, Unit: model.UnitCrates, Price: ptr(12500.5)})
	s.AddItem(ItemFields{Name: "Yam", Category: model.CategoryTubers, Quantity: 5, Unit: model.UnitPieces})

	got := s.TotalPrice("")
	want := 57500.5
	if got != want {
		t.Errorf("TotalPrice = %v, want %v", got, want)
	}
}

func TestTotalPriceEmptyAndUnknownList(t *testing.T) {
	s, _ := newTestStore(t)

	if got := s.TotalPrice(""); got != 0 {
		t.Errorf("TotalPrice with no current list = %v, want 0", got)
	}

	s.CreateOrUseDraft("")
	if got := s.TotalPrice(""); got != 0 {
		t.Errorf("TotalPrice of empty list = %v, want 0", got)
	}
	if got := s.TotalPrice("list_nope"); got != 0 {
		t.Errorf("TotalPrice of unknown list = %v, want 0", got)
	}
}

func TestCreateOrUseDraftReusesCurrentDraft(t *testing.T) {
	s, _ := newTestStore(t)

	first := s.CreateOrUseDraft("Weekend run")
	second := s.CreateOrUseDraft("Another title")

	if first != second {
		t.Errorf("CreateOrUseDraft created a new draft %q while draft %q was current", second, first)
	}
	if got := len(s.Lists()); got != 1 {
		t.Errorf("list count = %d, want 1", got)
	}
}

func TestCreateOrUseDraftAfterCheckout(t *testing.T) {
	s, _ := newTestStore(t)

	first := s.CreateOrUseDraft("")
	s.Checkout()
	second := s.CreateOrUseDraft("")

	if first == second {
		t.Error("CreateOrUseDraft reused a checked-out list")
	}
	l, ok := s.List(first)
	if !ok {
		t.Fatal("checked-out list missing")
	}
	if l.IsDraft {
		t.Error("checked-out list still flagged as draft")
	}
}

func TestStartFreshDraftAlwaysCreates(t *testing.T) {
	s, _ := newTestStore(t)

	first := s.StartFreshDraft("")
	second := s.StartFreshDraft("")

	if first == second {
		t.Error("StartFreshDraft reused the existing draft")
	}
	cur := s.CurrentList()
	if cur == nil || cur.ID != second {
		t.Errorf("current list = %+v, want id %q", cur, second)
	}
}

func TestDraftTitleDefaults(t *testing.T) {
	s, _ := newTestStore(t)

	id := s.CreateOrUseDraft("   ")
	l, _ := s.List(id)
	if l.Title != DefaultListTitle {
		t.Errorf("blank title draft = %q, want %q", l.Title, DefaultListTitle)
	}

	id2 := s.StartFreshDraft("  Market day  ")
	l2, _ := s.List(id2)
	if l2.Title != "Market day" {
		t.Errorf("trimmed title = %q, want %q", l2.Title, "Market day")
	}
}

func TestAddItemAutoTitlesOnce(t *testing.T) {
	s, _ := newTestStore(t)
	s.now = func() time.Time { return time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC) }

	s.AddItem(ItemFields{Name: "Beans", Category: model.CategoryGrains, Quantity: 1, Unit: model.UnitKilogram})

	cur := s.CurrentList()
	if cur.Title != "List 2026-03-14" {
		t.Errorf("auto title = %q, want %q", cur.Title, "List 2026-03-14")
	}

	// Second add must leave the derived title alone.
	s.now = func() time.Time { return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC) }
	s.AddItem(ItemFields{Name: "Garri", Category: model.CategoryGrains, Quantity: 1, Unit: model.UnitBag})
	if got := s.CurrentList().Title; got != "List 2026-03-14" {
		t.Errorf("title after second add = %q, want %q", got, "List 2026-03-14")
	}
}

func TestAddItemKeepsCustomTitle(t *testing.T) {
	s, _ := newTestStore(t)

	s.CreateOrUseDraft("Birthday party")
	s.AddItem(ItemFields{Name: "Cake flour", Category: model.CategoryPackaged, Quantity: 2, Unit: model.UnitKilogram})

	if got := s.CurrentList().Title; got != "Birthday party" {
		t.Errorf("title = %q, want %q", got, "Birthday party")
	}
}

func TestAddItemNoAutoTitleWhenItemsPresent(t *testing.T) {
	s, _ := newTestStore(t)

	s.AddItem(ItemFields{Name: "Salt", Category: model.CategoryPackaged, Quantity: 1, Unit: model.UnitPieces})
	// Explicitly set the title back to the default while items remain.
	s.SetTitle(DefaultListTitle)
	s.AddItem(ItemFields{Name: "Pepper", Category: model.CategoryVegetables, Quantity: 1, Unit: model.UnitPieces})

	if got := s.CurrentList().Title; got != DefaultListTitle {
		t.Errorf("title = %q, want default to survive when items exist", got)
	}
}

func TestAddItemCreatesDraftWhenNoneCurrent(t *testing.T) {
	s, _ := newTestStore(t)

	itemID := s.AddItem(ItemFields{Name: "Eggs", Category: model.CategoryProtein, Quantity: 12, Unit: model.UnitPieces})

	cur := s.CurrentList()
	if cur == nil {
		t.Fatal("no current list after AddItem")
	}
	if !cur.IsDraft {
		t.Error("implicit list is not a draft")
	}
	if len(cur.Items) != 1 || cur.Items[0].ID != itemID {
		t.Errorf("items = %+v, want single item %q", cur.Items, itemID)
	}
}

func TestUpdateItemPartial(t *testing.T) {
	s, _ := newTestStore(t)

	id := s.AddItem(ItemFields{Name: "Milk", Category: model.CategoryPackaged, Quantity: 1, Unit: model.UnitPieces, Notes: "tin"})
	s.UpdateItem(id, ItemChanges{Quantity: ptr(3.0), Price: ptr(1800.0)})

	it := s.CurrentList().Items[0]
	if it.Quantity != 3 {
		t.Errorf("quantity = %v, want 3", it.Quantity)
	}
	if it.Price == nil || *it.Price != 1800 {
		t.Errorf("price = %v, want 1800", it.Price)
	}
	if it.Name != "Milk" || it.Notes != "tin" {
		t.Errorf("untouched fields changed: %+v", it)
	}
}

func TestUpdateItemUnknownIDIsNoOp(t *testing.T) {
	s, _ := newTestStore(t)

	s.AddItem(ItemFields{Name: "Milk", Category: model.CategoryPackaged, Quantity: 1, Unit: model.UnitPieces})
	before := s.CurrentList()
	s.UpdateItem("item_missing", ItemChanges{Name: ptr("Changed")})
	after := s.CurrentList()

	if after.Items[0].Name != before.Items[0].Name {
		t.Error("UpdateItem with unknown id mutated an item")
	}
}

func TestRemoveItem(t *testing.T) {
	s, _ := newTestStore(t)

	keep := s.AddItem(ItemFields{Name: "Onions", Category: model.CategoryVegetables, Quantity: 1, Unit: model.UnitKilogram})
	drop := s.AddItem(ItemFields{Name: "Fish", Category: model.CategoryProtein, Quantity: 2, Unit: model.UnitKilogram})
	s.RemoveItem(drop)

	items := s.CurrentList().Items
	if len(items) != 1 || items[0].ID != keep {
		t.Errorf("items = %+v, want only %q", items, keep)
	}

	// Removing a missing id leaves the list intact.
	s.RemoveItem("item_gone")
	if got := len(s.CurrentList().Items); got != 1 {
		t.Errorf("item count after missing remove = %d, want 1", got)
	}
}

func TestClearItemsResetsTitle(t *testing.T) {
	s, _ := newTestStore(t)

	s.CreateOrUseDraft("Ileya shopping")
	s.AddItem(ItemFields{Name: "Ram", Category: model.CategoryProtein, Quantity: 1, Unit: model.UnitPieces})
	s.ClearItems()

	cur := s.CurrentList()
	if len(cur.Items) != 0 {
		t.Errorf("items = %+v, want empty", cur.Items)
	}
	if cur.Title != DefaultListTitle {
		t.Errorf("title = %q, want %q", cur.Title, DefaultListTitle)
	}
}

func TestClearThenAddRetriggersAutoTitle(t *testing.T) {
	s, _ := newTestStore(t)
	s.now = func() time.Time { return time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC) }

	s.AddItem(ItemFields{Name: "Bread", Category: model.CategoryPackaged, Quantity: 1, Unit: model.UnitPieces})
	s.ClearItems()
	s.AddItem(ItemFields{Name: "Butter", Category: model.CategoryPackaged, Quantity: 1, Unit: model.UnitPieces})

	if got := s.CurrentList().Title; got != "List 2026-05-01" {
		t.Errorf("title = %q, want auto title after clear", got)
	}
}

func TestDeleteList(t *testing.T) {
	s, _ := newTestStore(t)

	first := s.StartFreshDraft("A")
	second := s.StartFreshDraft("B")

	s.DeleteList(first)
	if _, ok := s.List(first); ok {
		t.Error("deleted list still present")
	}
	if cur := s.CurrentList(); cur == nil || cur.ID != second {
		t.Errorf("current = %+v, want %q untouched", cur, second)
	}

	s.DeleteList(second)
	if cur := s.CurrentList(); cur != nil {
		t.Errorf("current = %+v, want nil after deleting current list", cur)
	}

	// Unknown id is a no-op.
	s.DeleteList("list_missing")
}

func TestSetCurrentListDangling(t *testing.T) {
	s, _ := newTestStore(t)

	s.SetCurrentList("list_ghost")
	if cur := s.CurrentList(); cur != nil {
		t.Errorf("CurrentList = %+v, want nil for dangling pointer", cur)
	}
}

func TestSetTitleAllowsEmpty(t *testing.T) {
	s, _ := newTestStore(t)

	s.CreateOrUseDraft("Something")
	s.SetTitle("")
	if got := s.CurrentList().Title; got != "" {
		t.Errorf("title = %q, want empty string preserved", got)
	}
}

func TestResetWipesEverything(t *testing.T) {
	s, _ := newTestStore(t)

	s.AddItem(ItemFields{Name: "Maggi", Category: model.CategoryPackaged, Quantity: 1, Unit: model.UnitPieces})
	s.ExpandBottomSheet(true)
	s.Reset()

	if got := len(s.Lists()); got != 0 {
		t.Errorf("list count after reset = %d, want 0", got)
	}
	if s.CurrentList() != nil {
		t.Error("current list survives reset")
	}
	if s.UI().IsBottomSheetExpanded {
		t.Error("UI state survives reset")
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	mem := newMemStorage()
	logger := slog.New(slog.DiscardHandler)

	s, err := New(mem, logger)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.CreateOrUseDraft("Sunday market")
	s.AddItem(ItemFields{Name: "Plantain", Category: model.CategoryFruit, Quantity: 6, Unit: model.UnitPieces, Price: ptr(3000.0)})
	s.ExpandBottomSheet(true)
	want := s.CurrentList()

	reloaded, err := New(mem, logger)
	if err != nil {
		t.Fatalf("New after restart: %v", err)
	}

	got := reloaded.CurrentList()
	if got == nil {
		t.Fatal("current list lost across restart")
	}
	if got.ID != want.ID || got.Title != want.Title || len(got.Items) != 1 {
		t.Errorf("reloaded list = %+v, want %+v", got, want)
	}
	if got.Items[0].Name != "Plantain" {
		t.Errorf("reloaded item = %+v", got.Items[0])
	}
	if !reloaded.UI().IsBottomSheetExpanded {
		t.Error("UI state lost across restart")
	}
	if reloaded.TotalPrice("") != 3000 {
		t.Errorf("reloaded total = %v, want 3000", reloaded.TotalPrice(""))
	}
}

func TestPersistedDocumentShape(t *testing.T) {
	s, mem := newTestStore(t)
	s.CreateOrUseDraft("")

	raw, ok := mem.docs[StorageKey]
	if !ok {
		t.Fatalf("no document under %q", StorageKey)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal document: %v", err)
	}
	for _, field := range []string{"version", "lists", "currentListId", "ui"} {
		if _, ok := doc[field]; !ok {
			t.Errorf("document missing %q field", field)
		}
	}

	var version int
	if err := json.Unmarshal(doc["version"], &version); err != nil || version != 1 {
		t.Errorf("version = %d (%v), want 1", version, err)
	}
}

func TestMigrateOldVersion(t *testing.T) {
	mem := newMemStorage()
	mem.docs[StorageKey] = []byte(`{"version":0,"lists":{},"currentListId":null,"ui":{"isBottomSheetExpanded":false}}`)

	s, err := New(mem, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("New with old document: %v", err)
	}
	if got := len(s.Lists()); got != 0 {
		t.Errorf("list count = %d, want 0", got)
	}
}

func TestListsSortedByUpdatedAt(t *testing.T) {
	s, _ := newTestStore(t)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }
	old := s.StartFreshDraft("Old")
	s.now = func() time.Time { return base.Add(time.Hour) }
	recent := s.StartFreshDraft("Recent")

	lists := s.Lists()
	if len(lists) != 2 {
		t.Fatalf("list count = %d, want 2", len(lists))
	}
	if lists[0].ID != recent || lists[1].ID != old {
		t.Errorf("order = [%s, %s], want newest first", lists[0].ID, lists[1].ID)
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	s, _ := newTestStore(t)

	s.AddItem(ItemFields{Name: "Ugu", Category: model.CategoryVegetables, Quantity: 1, Unit: model.UnitPieces})
	cur := s.CurrentList()
	cur.Items[0].Name = "tampered"
	cur.Title = "tampered"

	if got := s.CurrentList().Items[0].Name; got != "Ugu" {
		t.Errorf("item name = %q, internal state mutated through accessor copy", got)
	}
}
