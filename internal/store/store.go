package store

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/cinecraze/catman/internal/catalog"
)

const (
	keyContentItems  = "content_items"
	keyServerConfigs = "server_configs"
)

// Store holds the in-memory catalog and flushes it to the KV layer after
// every mutating call. A single mutex serializes all access: bulk
// operations may call in from several workers and the upsert lookup must
// stay atomic with its replace/append.
//
// Persistence failures are logged and swallowed; the in-memory state is
// kept, so callers never see a save error. That mirrors the durability
// contract of the storage layer this replaces.
type Store struct {
	mu      sync.Mutex
	kv      *KV
	log     *slog.Logger
	items   []*catalog.Item
	configs []catalog.ServerConfig
	lastID  int64
}

// Open loads the persisted catalog into memory. Corrupt or missing blobs
// yield an empty collection rather than an error. When no provider
// configurations have ever been saved, the default seed list is installed.
func Open(kv *KV, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{kv: kv, log: logger.With("component", "store")}
	s.loadItems()
	s.loadConfigs()
	return s
}

func (s *Store) loadItems() {
	raw, ok, err := s.kv.Get(keyContentItems)
	if err != nil {
		s.log.Error("load content items", "error", err)
		return
	}
	if !ok {
		return
	}
	var items []*catalog.Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.log.Error("decode content items", "error", err)
		return
	}
	s.items = items
	for _, it := range items {
		if it.ID > s.lastID {
			s.lastID = it.ID
		}
	}
}

func (s *Store) loadConfigs() {
	raw, ok, err := s.kv.Get(keyServerConfigs)
	if err != nil {
		s.log.Error("load server configs", "error", err)
		return
	}
	if ok {
		var configs []catalog.ServerConfig
		if err := json.Unmarshal([]byte(raw), &configs); err != nil {
			s.log.Error("decode server configs", "error", err)
			return
		}
		s.configs = configs
		return
	}
	s.configs = catalog.DefaultServerConfigs()
	s.saveConfigs()
}

// saveItems flushes the item list. Callers hold s.mu.
func (s *Store) saveItems() {
	data, err := json.Marshal(s.items)
	if err != nil {
		s.log.Error("encode content items", "error", err)
		return
	}
	if err := s.kv.Put(keyContentItems, string(data)); err != nil {
		s.log.Error("persist content items", "error", err)
	}
}

// saveConfigs flushes the provider configs. Callers hold s.mu.
func (s *Store) saveConfigs() {
	data, err := json.Marshal(s.configs)
	if err != nil {
		s.log.Error("encode server configs", "error", err)
		return
	}
	if err := s.kv.Put(keyServerConfigs, string(data)); err != nil {
		s.log.Error("persist server configs", "error", err)
	}
}

// AddContent appends one item and persists. Unpersisted items (ID 0) are
// assigned the next local identifier.
func (s *Store) AddContent(item *catalog.Item) {
	if item == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.append(item)
	s.saveItems()
}

// AddContentBatch appends several items under one flush.
func (s *Store) AddContentBatch(items []*catalog.Item) {
	if len(items) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range items {
		if it != nil {
			s.append(it)
		}
	}
	s.saveItems()
}

// append clones the item in and assigns an ID. Callers hold s.mu.
func (s *Store) append(item *catalog.Item) {
	cp := item.Clone()
	if cp.ID == 0 {
		s.lastID++
		cp.ID = s.lastID
	} else if cp.ID > s.lastID {
		s.lastID = cp.ID
	}
	s.items = append(s.items, cp)
	item.ID = cp.ID
}

// AllContent returns a deep copy of the catalog; mutations to the result
// do not touch the store until an update call.
func (s *Store) AllContent() []*catalog.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*catalog.Item, len(s.items))
	for i, it := range s.items {
		out[i] = it.Clone()
	}
	return out
}

// ContentByType returns copies of the items of one category.
func (s *Store) ContentByType(typ catalog.ContentType) []*catalog.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*catalog.Item
	for _, it := range s.items {
		if it.Type == typ {
			out = append(out, it.Clone())
		}
	}
	return out
}

// Len reports the number of stored items.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// UpdateContent replaces an existing item found by, in order: non-zero ID,
// entity equality, then partial agreement of whichever identity fields are
// populated on both sides. When nothing matches, the item is appended:
// the operation is an upsert, and a failed update never drops data or
// reports an error.
func (s *Store) UpdateContent(item *catalog.Item) {
	if item == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.ID != 0 {
		for i, existing := range s.items {
			if existing.ID == item.ID {
				s.replace(i, item)
				s.saveItems()
				return
			}
		}
	}
	for i, existing := range s.items {
		if existing.Equal(item) {
			s.replace(i, item)
			s.saveItems()
			return
		}
	}
	for i, existing := range s.items {
		if partialIdentityMatch(item, existing) {
			s.replace(i, item)
			s.saveItems()
			return
		}
	}
	s.append(item)
	s.saveItems()
}

// replace swaps in a clone at index i, keeping the slot's identifier when
// the incoming item has none. Callers hold s.mu.
func (s *Store) replace(i int, item *catalog.Item) {
	cp := item.Clone()
	if cp.ID == 0 {
		cp.ID = s.items[i].ID
	}
	s.items[i] = cp
	item.ID = cp.ID
}

// partialIdentityMatch requires agreement on every identity field that is
// populated on both sides; fields absent on either side are ignored.
func partialIdentityMatch(a, b *catalog.Item) bool {
	if a.TMDBID != nil && b.TMDBID != nil && *a.TMDBID != *b.TMDBID {
		return false
	}
	if a.Season != nil && b.Season != nil && *a.Season != *b.Season {
		return false
	}
	if a.Episode != nil && b.Episode != nil && *a.Episode != *b.Episode {
		return false
	}
	if a.Type != "" && b.Type != "" && a.Type != b.Type {
		return false
	}
	if a.SeriesTitle != "" && b.SeriesTitle != "" && a.SeriesTitle != b.SeriesTitle {
		return false
	}
	return true
}

// RemoveContent deletes the first item equal to the argument. No-op when
// absent.
func (s *Store) RemoveContent(item *catalog.Item) {
	if item == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.items {
		if existing.Equal(item) {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.saveItems()
			return
		}
	}
}

// ClearContent drops every item.
func (s *Store) ClearContent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.saveItems()
}

// ClearAll drops items and provider configurations.
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.configs = nil
	s.saveItems()
	s.saveConfigs()
}

// ServerConfigs returns a copy of all provider configurations.
func (s *Store) ServerConfigs() []catalog.ServerConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]catalog.ServerConfig, len(s.configs))
	copy(out, s.configs)
	return out
}

// EnabledServerConfigs returns copies of the enabled providers.
func (s *Store) EnabledServerConfigs() []catalog.ServerConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []catalog.ServerConfig
	for _, c := range s.configs {
		if c.Enabled {
			out = append(out, c)
		}
	}
	return out
}

// SaveServerConfigs replaces the provider list wholesale.
func (s *Store) SaveServerConfigs(configs []catalog.ServerConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.configs = make([]catalog.ServerConfig, len(configs))
	copy(s.configs, configs)
	s.saveConfigs()
}

// UpdateServerConfig replaces the config with the same name; providers are
// identified by name alone. Unknown names are ignored.
func (s *Store) UpdateServerConfig(config catalog.ServerConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.configs {
		if c.Name == config.Name {
			s.configs[i] = config
			break
		}
	}
	s.saveConfigs()
}
