package services

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/tidwall/gjson"

	"fuel-explorer/models"
	"fuel-explorer/storage"
	"fuel-explorer/utils"
)

// DefaultFavoritesKey is the storage key favorites are kept under.
const DefaultFavoritesKey = "fuel-economy-favorites"

// FavoritesStore is the identity-keyed favorites selection. Every mutation
// overwrites the persisted list with the in-memory one. It expects a single
// caller at a time.
type FavoritesStore struct {
	kv     storage.KeyValueStore
	key    string
	logger *utils.Logger
	now    func() time.Time

	items       []models.FavoriteEntry
	lastAddedAt int64
}

// NewFavoritesStore loads the persisted favorites under key. A missing,
// unreadable or corrupted value yields an empty list.
func NewFavoritesStore(kv storage.KeyValueStore, key string, logger *utils.Logger) *FavoritesStore {
	if key == "" {
		key = DefaultFavoritesKey
	}
	s := &FavoritesStore{kv: kv, key: key, logger: logger, now: time.Now}
	s.load()
	return s
}

func (s *FavoritesStore) load() {
	s.items = []models.FavoriteEntry{}

	raw, ok, err := s.kv.Get(s.key)
	if err != nil {
		s.logger.Warn("[favorites] Failed to read %q, starting empty: %v", s.key, err)
		return
	}
	if !ok || raw == "" {
		return
	}

	if !gjson.Valid(raw) {
		s.logger.Warn("[favorites] Stored value under %q is not JSON, starting empty", s.key)
		return
	}
	parsed := gjson.Parse(raw)
	if !parsed.IsArray() {
		s.logger.Warn("[favorites] Stored value under %q is not a list, starting empty", s.key)
		return
	}

	seen := utils.NewKeySet()
	dropped := 0
	parsed.ForEach(func(_, item gjson.Result) bool {
		entry, ok := decodeEntry(item)
		if !ok || !seen.Add(entry.ID) {
			dropped++
			return true
		}
		s.items = append(s.items, entry)
		s.lastAddedAt = max(s.lastAddedAt, entry.AddedAt)
		return true
	})

	if dropped > 0 {
		s.logger.Debug("[favorites] Dropped %d malformed or duplicate entries", dropped)
	}
	s.logger.Info("[favorites] Loaded %d favorites", len(s.items))
}

// decodeEntry accepts an entry only if every required field has the right type.
func decodeEntry(item gjson.Result) (models.FavoriteEntry, bool) {
	if !item.IsObject() {
		return models.FavoriteEntry{}, false
	}
	id, name := item.Get("id"), item.Get("name")
	year, mpg, addedAt := item.Get("year"), item.Get("mpg"), item.Get("addedAt")

	if id.Type != gjson.String || id.Str == "" || name.Type != gjson.String ||
		year.Type != gjson.Number || mpg.Type != gjson.Number || addedAt.Type != gjson.Number {
		return models.FavoriteEntry{}, false
	}
	return models.FavoriteEntry{
		ID:      id.Str,
		Name:    name.Str,
		Year:    int(year.Int()),
		MPG:     mpg.Float(),
		AddedAt: addedAt.Int(),
	}, true
}

// Toggle removes v from favorites if present, otherwise appends it with a
// fresh timestamp.
func (s *FavoritesStore) Toggle(v *models.Vehicle) error {
	if v == nil || v.Name == "" {
		return fmt.Errorf("favorites: toggle: missing vehicle data: %w", ErrInvalidArgument)
	}

	id := strconv.Itoa(v.ID)
	if i := s.indexOf(id); i >= 0 {
		s.items = slices.Delete(s.items, i, i+1)
		s.logger.Debug("[favorites] Removed %s (%s)", id, v.Name)
	} else {
		s.items = append(s.items, models.FavoriteEntry{
			ID:      id,
			Name:    v.Name,
			Year:    v.ModelYear,
			MPG:     v.MPG,
			AddedAt: s.nextTimestamp(),
		})
		s.logger.Debug("[favorites] Added %s (%s)", id, v.Name)
	}
	return s.persist()
}

// Remove deletes the favorite with the given id. Removing an absent id leaves
// the list unchanged.
func (s *FavoritesStore) Remove(id string) error {
	if i := s.indexOf(id); i >= 0 {
		s.items = slices.Delete(s.items, i, i+1)
	}
	return s.persist()
}

// Clear drops every favorite.
func (s *FavoritesStore) Clear() error {
	s.items = []models.FavoriteEntry{}
	return s.persist()
}

// IsFavorite reports whether id is in the selection.
func (s *FavoritesStore) IsFavorite(id string) bool {
	return s.indexOf(id) >= 0
}

// List returns a copy of the favorites in insertion order.
func (s *FavoritesStore) List() []models.FavoriteEntry {
	return slices.Clone(s.items)
}

// Len returns the number of favorites.
func (s *FavoritesStore) Len() int {
	return len(s.items)
}

func (s *FavoritesStore) indexOf(id string) int {
	return slices.IndexFunc(s.items, func(e models.FavoriteEntry) bool { return e.ID == id })
}

// nextTimestamp returns wall-clock milliseconds, bumped when needed so that
// timestamps strictly increase.
func (s *FavoritesStore) nextTimestamp() int64 {
	ts := s.now().UnixMilli()
	if ts <= s.lastAddedAt {
		ts = s.lastAddedAt + 1
	}
	s.lastAddedAt = ts
	return ts
}

func (s *FavoritesStore) persist() error {
	body, err := json.Marshal(s.items)
	if err != nil {
		return fmt.Errorf("favorites: encode: %w", err)
	}
	if err := s.kv.Set(s.key, string(body)); err != nil {
		s.logger.Error("[favorites] Failed to save %d favorites: %v", len(s.items), err)
		return fmt.Errorf("favorites: save: %w", err)
	}
	return nil
}
