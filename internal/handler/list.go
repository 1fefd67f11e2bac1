package handler

import (
	"net/http"
	"strings"

	"github.com/Franklivania/go-to-market/internal/liststore"
	"github.com/Franklivania/go-to-market/internal/model"
	"github.com/Franklivania/go-to-market/internal/validate"
	"github.com/Franklivania/go-to-market/internal/websocket"
)

type ListHandler struct {
	store *liststore.Store
	hub   *websocket.Hub
}

func NewListHandler(store *liststore.Store, hub *websocket.Hub) *ListHandler {
	return &ListHandler{store: store, hub: hub}
}

type createListRequest struct {
	Title string `json:"title"`
	Fresh bool   `json:"fresh"`
}

type titleRequest struct {
	Title string `json:"title"`
}

type currentRequest struct {
	ID string `json:"id"`
}

type bottomSheetRequest struct {
	Expanded bool `json:"expanded"`
}

// Lists returns every list, most recently updated first.
func (h *ListHandler) Lists(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Lists())
}

// Get returns one list by id.
func (h *ListHandler) Get(w http.ResponseWriter, r *http.Request) {
	l, ok := h.store.List(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "list not found")
		return
	}
	writeJSON(w, http.StatusOK, l)
}

// Current returns the current list, or null when none is selected.
func (h *ListHandler) Current(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.CurrentList())
}

// Create makes a draft current. By default an existing current draft is
// reused; fresh forces a new one.
func (h *ListHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createListRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	var id string
	if req.Fresh {
		id = h.store.StartFreshDraft(req.Title)
	} else {
		id = h.store.CreateOrUseDraft(req.Title)
	}

	h.hub.Broadcast(websocket.NewMessage("list", "created", id, nil))
	l, _ := h.store.List(id)
	writeJSON(w, http.StatusCreated, l)
}

// SetCurrent moves the current-list pointer.
func (h *ListHandler) SetCurrent(w http.ResponseWriter, r *http.Request) {
	var req currentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	h.store.SetCurrentList(req.ID)
	writeJSON(w, http.StatusOK, h.store.CurrentList())
}

// SetTitle renames the current list. An empty title is allowed mid-edit.
func (h *ListHandler) SetTitle(w http.ResponseWriter, r *http.Request) {
	var req titleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	cur := h.store.CurrentList()
	if cur == nil {
		writeError(w, http.StatusConflict, "no current list")
		return
	}

	h.store.SetTitle(req.Title)
	h.hub.Broadcast(websocket.NewMessage("list", "updated", cur.ID, nil))
	writeJSON(w, http.StatusOK, h.store.CurrentList())
}

// Delete removes a list.
func (h *ListHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := h.store.List(id); !ok {
		writeError(w, http.StatusNotFound, "list not found")
		return
	}

	h.store.DeleteList(id)
	h.hub.Broadcast(websocket.NewMessage("list", "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}

// AddItem appends an item to the current draft, creating one if needed.
func (h *ListHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req validate.ItemInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	fields, errs := validate.Item(req)
	if errs != nil {
		writeFieldErrors(w, errs)
		return
	}

	itemID := h.store.AddItem(fields)
	cur := h.store.CurrentList()
	h.hub.Broadcast(websocket.NewMessage("item", "created", itemID, map[string]any{"listId": cur.ID}))
	writeJSON(w, http.StatusCreated, cur)
}

// UpdateItem merges a partial update into an item on the current list.
func (h *ListHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID := r.PathValue("id")

	cur := h.store.CurrentList()
	if cur == nil {
		writeError(w, http.StatusConflict, "no current list")
		return
	}
	if !hasItem(cur.Items, itemID) {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}

	var req validate.ItemChangesInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	changes, errs := validate.ItemChanges(req)
	if errs != nil {
		writeFieldErrors(w, errs)
		return
	}

	h.store.UpdateItem(itemID, changes)
	h.hub.Broadcast(websocket.NewMessage("item", "updated", itemID, map[string]any{"listId": cur.ID}))
	writeJSON(w, http.StatusOK, h.store.CurrentList())
}

// RemoveItem deletes an item from the current list.
func (h *ListHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID := r.PathValue("id")

	cur := h.store.CurrentList()
	if cur == nil {
		writeError(w, http.StatusConflict, "no current list")
		return
	}
	if !hasItem(cur.Items, itemID) {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}

	h.store.RemoveItem(itemID)
	h.hub.Broadcast(websocket.NewMessage("item", "deleted", itemID, map[string]any{"listId": cur.ID}))
	writeJSON(w, http.StatusOK, h.store.CurrentList())
}

// ClearItems empties the current list and resets its title.
func (h *ListHandler) ClearItems(w http.ResponseWriter, r *http.Request) {
	cur := h.store.CurrentList()
	if cur == nil {
		writeError(w, http.StatusConflict, "no current list")
		return
	}

	h.store.ClearItems()
	h.hub.Broadcast(websocket.NewMessage("list", "cleared", cur.ID, nil))
	writeJSON(w, http.StatusOK, h.store.CurrentList())
}

// Total returns the priced total of a list; the current list when no id
// is given.
func (h *ListHandler) Total(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.URL.Query().Get("listId"))
	writeJSON(w, http.StatusOK, map[string]float64{"total": h.store.TotalPrice(id)})
}

// BottomSheet persists the bottom sheet toggle.
func (h *ListHandler) BottomSheet(w http.ResponseWriter, r *http.Request) {
	var req bottomSheetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	h.store.ExpandBottomSheet(req.Expanded)
	writeJSON(w, http.StatusOK, h.store.UI())
}

// Reset wipes all lists and UI state.
func (h *ListHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.store.Reset()
	h.hub.Broadcast(websocket.NewMessage("store", "reset", "", nil))
	w.WriteHeader(http.StatusNoContent)
}

func hasItem(items []model.ListItem, id string) bool {
	for _, it := range items {
		if it.ID == id {
			return true
		}
	}
	return false
}
