// Package liststore owns the authoritative in-process collection of
// market lists. Every mutation is written through to durable storage as
// one versioned JSON document, mirroring what the mobile client keeps in
// its local store, so a restart rehydrates the exact same state.
package liststore

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Franklivania/go-to-market/internal/model"
)

// StorageKey is the versioned key the state document lives under.
const StorageKey = "gtm:list-store:v1"

// DefaultListTitle is the placeholder title a new draft starts with.
const DefaultListTitle = "New list"

const schemaVersion = 1

// Storage persists the state document. Implemented by
// store.DocumentStore; tests use an in-memory stand-in.
type Storage interface {
	Load(key string) (value []byte, ok bool, err error)
	Save(key string, value []byte) error
}

// UIState is the slice of UI state persisted alongside the lists.
type UIState struct {
	IsBottomSheetExpanded bool `json:"isBottomSheetExpanded"`
}

// document is the persisted shape of the whole store.
type document struct {
	Version       int                          `json:"version"`
	Lists         map[string]*model.MarketList `json:"lists"`
	CurrentListID *string                      `json:"currentListId"`
	UI            UIState                      `json:"ui"`
}

// ItemFields are the caller-supplied fields of a new item. Inputs are
// validated before they get here; the store trusts them.
type ItemFields struct {
	Name     string
	Category model.ItemCategory
	Quantity float64
	Unit     model.MeasurementUnit
	Price    *float64
	Notes    string
}

// ItemChanges is a partial update; nil fields are left untouched.
type ItemChanges struct {
	Name     *string
	Category *model.ItemCategory
	Quantity *float64
	Unit     *model.MeasurementUnit
	Price    *float64
	Notes    *string
}

// Store holds every market list, the current-list pointer, and the
// persisted UI toggle. All operations take the mutex, so the single-writer
// discipline of the original client holds under concurrent HTTP handlers.
type Store struct {
	mu      sync.Mutex
	storage Storage
	logger  *slog.Logger

	lists     map[string]*model.MarketList
	currentID string
	ui        UIState

	now func() time.Time
}

// New creates a Store backed by storage, loading any persisted state.
// A version mismatch in the persisted document runs it through the
// migration hook before adoption.
func New(storage Storage, logger *slog.Logger) (*Store, error) {
	s := &Store{
		storage: storage,
		logger:  logger,
		lists:   make(map[string]*model.MarketList),
		now:     time.Now,
	}

	raw, ok, err := storage.Load(StorageKey)
	if err != nil {
		return nil, fmt.Errorf("load list store: %w", err)
	}
	if !ok {
		return s, nil
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode list store: %w", err)
	}
	if doc.Version != schemaVersion {
		doc = migrate(doc)
	}

	if doc.Lists != nil {
		s.lists = doc.Lists
	}
	if doc.CurrentListID != nil {
		s.currentID = *doc.CurrentListID
	}
	s.ui = doc.UI
	return s, nil
}

// migrate transforms a document from an older schema version. Currently
// an identity transform; future versions hook in here.
func migrate(doc document) document {
	doc.Version = schemaVersion
	return doc
}

// CurrentList returns a copy of the list the current pointer references,
// or nil when the pointer is unset or dangling.
func (s *Store) CurrentList() *model.MarketList {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneList(s.current())
}

// List returns a copy of the list with the given id.
func (s *Store) List(id string) (model.MarketList, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.lists[id]
	if !ok {
		return model.MarketList{}, false
	}
	return *cloneList(l), true
}

// Lists returns copies of every list, most recently updated first.
func (s *Store) Lists() []model.MarketList {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.MarketList, 0, len(s.lists))
	for _, l := range s.lists {
		out = append(out, *cloneList(l))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UpdatedAt != out[j].UpdatedAt {
			return out[i].UpdatedAt > out[j].UpdatedAt
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// TotalPrice sums item prices over the given list, or the current list
// when listID is empty. Absent prices count as zero; an unresolvable
// list yields zero.
func (s *Store) TotalPrice(listID string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := listID
	if id == "" {
		id = s.currentID
	}
	l, ok := s.lists[id]
	if !ok {
		return 0
	}
	return l.TotalPrice()
}

// UI returns the persisted UI toggle state.
func (s *Store) UI() UIState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ui
}

// CreateOrUseDraft returns the current list's id if it is still a draft;
// otherwise it creates a new draft with the given title (trimmed, or the
// default placeholder) and makes it current.
func (s *Store) CreateOrUseDraft(title string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createOrUseDraft(title)
}

func (s *Store) createOrUseDraft(title string) string {
	if cur := s.current(); cur != nil && cur.IsDraft {
		return cur.ID
	}
	return s.newDraft(title)
}

// StartFreshDraft unconditionally creates a new draft and makes it
// current, abandoning any in-progress draft context.
func (s *Store) StartFreshDraft(title string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.newDraft(title)
}

func (s *Store) newDraft(title string) string {
	id := s.generateID("list")
	now := s.nowMillis()
	s.lists[id] = &model.MarketList{
		ID:        id,
		Title:     titleOrDefault(title),
		Items:     []model.ListItem{},
		CreatedAt: now,
		UpdatedAt: now,
		IsDraft:   true,
	}
	s.currentID = id
	s.persist()
	return id
}

// SetCurrentList moves the current pointer without validating that the
// id resolves; CurrentList handles dangling pointers.
func (s *Store) SetCurrentList(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentID = id
	s.persist()
}

// SetTitle sets the current list's title verbatim, empty string
// included, so the title may be blank mid-edit. No-op without a current
// list.
func (s *Store) SetTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.current()
	if l == nil {
		return
	}
	l.Title = title
	l.UpdatedAt = s.nowMillis()
	s.persist()
}

// AddItem appends a new item to the current draft, creating one if
// needed, and returns the item id. Adding the first item while the title
// is still the default placeholder (or blank) replaces it with a
// date-derived title.
func (s *Store) AddItem(fields ItemFields) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	listID := s.createOrUseDraft("")
	l := s.lists[listID]

	now := s.nowMillis()
	id := s.generateID("item")
	item := model.ListItem{
		ID:        id,
		Name:      fields.Name,
		Category:  fields.Category,
		Quantity:  fields.Quantity,
		Unit:      fields.Unit,
		Price:     fields.Price,
		Notes:     fields.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if isDefaultTitle(l.Title) && len(l.Items) == 0 {
		l.Title = s.autoTitle()
	}

	l.Items = append(l.Items, item)
	l.UpdatedAt = now
	l.IsDraft = true
	s.persist()
	return id
}

// UpdateItem merges changes into the item with the given id on the
// current list. No-op when there is no current list or the item is not
// on it.
func (s *Store) UpdateItem(itemID string, changes ItemChanges) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.current()
	if l == nil {
		return
	}

	now := s.nowMillis()
	for i := range l.Items {
		if l.Items[i].ID != itemID {
			continue
		}
		it := &l.Items[i]
		if changes.Name != nil {
			it.Name = *changes.Name
		}
		if changes.Category != nil {
			it.Category = *changes.Category
		}
		if changes.Quantity != nil {
			it.Quantity = *changes.Quantity
		}
		if changes.Unit != nil {
			it.Unit = *changes.Unit
		}
		if changes.Price != nil {
			it.Price = changes.Price
		}
		if changes.Notes != nil {
			it.Notes = *changes.Notes
		}
		it.UpdatedAt = now
		l.UpdatedAt = now
		s.persist()
		return
	}
}

// RemoveItem deletes the item with the given id from the current list.
// Missing ids are not an error; the list's UpdatedAt still refreshes.
func (s *Store) RemoveItem(itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.current()
	if l == nil {
		return
	}

	items := l.Items[:0]
	for _, it := range l.Items {
		if it.ID != itemID {
			items = append(items, it)
		}
	}
	l.Items = items
	l.UpdatedAt = s.nowMillis()
	s.persist()
}

// ClearItems empties the current list and resets its title to the
// default placeholder.
func (s *Store) ClearItems() {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.current()
	if l == nil {
		return
	}
	l.Title = DefaultListTitle
	l.Items = []model.ListItem{}
	l.UpdatedAt = s.nowMillis()
	s.persist()
}

// DeleteList removes a list entirely. Deleting the current list clears
// the current pointer; unknown ids are a no-op.
func (s *Store) DeleteList(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lists[id]; !ok {
		return
	}
	delete(s.lists, id)
	if s.currentID == id {
		s.currentID = ""
	}
	s.persist()
}

// ExpandBottomSheet records the bottom sheet toggle.
func (s *Store) ExpandBottomSheet(expanded bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ui.IsBottomSheetExpanded = expanded
	s.persist()
}

// Checkout marks the current list as no longer a draft. This is the only
// place the draft flag transitions; checked-out lists stay around as
// order history.
func (s *Store) Checkout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.current()
	if l == nil {
		return
	}
	l.IsDraft = false
	l.UpdatedAt = s.nowMillis()
	s.persist()
}

// Reset wipes the whole collection, the current pointer, and the UI
// toggle.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lists = make(map[string]*model.MarketList)
	s.currentID = ""
	s.ui = UIState{}
	s.persist()
}

// current resolves the current pointer. Callers hold the mutex.
func (s *Store) current() *model.MarketList {
	if s.currentID == "" {
		return nil
	}
	return s.lists[s.currentID]
}

// persist writes the state document through to storage. Callers hold the
// mutex. Write failures are logged, not returned: the in-memory state is
// authoritative and the next mutation writes the full document again.
func (s *Store) persist() {
	doc := document{
		Version: schemaVersion,
		Lists:   s.lists,
		UI:      s.ui,
	}
	if s.currentID != "" {
		doc.CurrentListID = &s.currentID
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		s.logger.Error("encode list store", "error", err)
		return
	}
	if err := s.storage.Save(StorageKey, raw); err != nil {
		s.logger.Error("persist list store", "error", err)
	}
}

func (s *Store) nowMillis() int64 {
	return s.now().UnixMilli()
}

// generateID builds a readable client-style id: prefix, random base36,
// millisecond timestamp base36.
func (s *Store) generateID(prefix string) string {
	n := rand.Int64N(1 << 62)
	return prefix + "_" + strconv.FormatInt(n, 36) + "_" + strconv.FormatInt(s.nowMillis(), 36)
}

// autoTitle derives a title from the current date.
func (s *Store) autoTitle() string {
	return "List " + s.now().Format("2006-01-02")
}

func titleOrDefault(title string) string {
	if t := strings.TrimSpace(title); t != "" {
		return t
	}
	return DefaultListTitle
}

func isDefaultTitle(title string) bool {
	t := strings.TrimSpace(title)
	return t == DefaultListTitle || t == ""
}

func cloneList(l *model.MarketList) *model.MarketList {
	if l == nil {
		return nil
	}
	out := *l
	out.Items = make([]model.ListItem, len(l.Items))
	copy(out.Items, l.Items)
	return &out
}
