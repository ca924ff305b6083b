package stockboard

import (
	"encoding/json"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Cache holds the last decoded portfolio mapping. Every Store built on the same
// Cache shares that mapping, the way several widgets share one portfolio.
//
// The mapping is trusted while the cache is clean. Save marks it dirty, so the
// next access decodes the persisted blob again. A writer that changes the blob
// behind the stores' back must call MarkDirty, otherwise readers keep seeing
// the mapping decoded before that write.
type Cache struct {
	mu      sync.Mutex
	records map[string]Record
	dirty   bool
	gen     uint64 // bumped on every change of records
}

// NewCache returns a dirty, empty cache.
func NewCache() *Cache { return &Cache{dirty: true} }

// MarkDirty forces the next access to decode the persisted portfolio.
func (c *Cache) MarkDirty() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dirty = true
}

// Store gives access to the portfolio records persisted in a Storage.
type Store struct {
	storage Storage
	cache   *Cache
	log     zerolog.Logger
}

// NewStore returns a Store persisting in storage and sharing cache.
func NewStore(storage Storage, cache *Cache, log zerolog.Logger) *Store {
	return &Store{
		storage: storage,
		cache:   cache,
		log:     log.With().Str("component", "portfolio").Logger(),
	}
}

// records returns the shared mapping, decoding the persisted blob if the cache
// is dirty. s.cache.mu must be held.
func (s *Store) records() map[string]Record {
	c := s.cache
	if !c.dirty && c.records != nil {
		return c.records
	}
	raw := s.storage.GetString(PortfolioKey, "")
	records, ok := parseRecords(raw)
	if !ok {
		if strings.TrimSpace(raw) != "" {
			s.log.Warn().Int("size", len(raw)).Msg("ignoring unreadable portfolio")
		}
		records = make(map[string]Record)
	}
	c.records = records
	c.dirty = false
	c.gen++
	return c.records
}

// Record returns the record for symbol, or a new empty one that is not stored.
func (s *Store) Record(symbol string) Record {
	s.cache.mu.Lock()
	defer s.cache.mu.Unlock()
	if r, ok := s.records()[symbol]; ok {
		return r
	}
	return Record{Symbol: symbol}
}

// Update replaces the record of symbol in memory. It is persisted by Save.
func (s *Store) Update(symbol string, r Record) {
	r.Symbol = symbol
	s.cache.mu.Lock()
	defer s.cache.mu.Unlock()
	s.records()[symbol] = r
	s.cache.gen++
}

// Track materializes an empty record for every symbol that has none yet.
func (s *Store) Track(symbols []string) {
	s.cache.mu.Lock()
	defer s.cache.mu.Unlock()
	m := s.records()
	for _, symbol := range symbols {
		if _, ok := m[symbol]; symbol != "" && !ok {
			m[symbol] = Record{Symbol: symbol}
			s.cache.gen++
		}
	}
}

// Save persists every non empty record and marks the cache dirty. Empty
// records are dropped from the blob, they vanish from memory on next decode.
func (s *Store) Save() error {
	s.cache.mu.Lock()
	defer s.cache.mu.Unlock()
	raw, err := encodeRecords(s.records())
	if err != nil {
		return err
	}
	s.storage.PutString(PortfolioKey, raw)
	err = s.storage.Apply()
	s.cache.dirty = true
	if err != nil {
		return err
	}
	s.log.Debug().Int("size", len(raw)).Msg("portfolio saved")
	return nil
}

// Raw returns the persisted portfolio blob, as last saved.
func (s *Store) Raw() string {
	s.cache.mu.Lock()
	defer s.cache.mu.Unlock()
	return s.storage.GetString(PortfolioKey, "")
}

// Prune removes the records without a buy price whose symbol is not in active.
// If another store changes the shared mapping meanwhile, pruning stops there
// and whatever was removed so far stays removed. It returns the number of
// removed records.
func (s *Store) Prune(active []string) int {
	keep := make(map[string]bool, len(active))
	for _, symbol := range active {
		keep[symbol] = true
	}

	c := s.cache
	c.mu.Lock()
	var stale []string
	for symbol, r := range s.records() {
		if !r.HasHolding() && !keep[symbol] {
			stale = append(stale, symbol)
		}
	}
	gen := c.gen
	c.mu.Unlock()

	removed := 0
	for _, symbol := range stale {
		c.mu.Lock()
		if c.gen != gen || c.dirty {
			c.mu.Unlock()
			s.log.Warn().Int("removed", removed).Int("stale", len(stale)).Msg("portfolio changed while pruning, keeping partial result")
			return removed
		}
		delete(c.records, symbol)
		c.gen++
		gen = c.gen
		c.mu.Unlock()
		removed++
	}
	if removed > 0 {
		s.log.Info().Int("removed", removed).Msg("pruned unused records")
	}
	return removed
}

// MergeFromBackup overwrites in-memory records with the ones in raw, a blob in
// the persisted format. Records absent from raw are kept. It returns false and
// changes nothing when raw cannot be read.
func (s *Store) MergeFromBackup(raw string) bool {
	parsed, ok := parseRecords(raw)
	if !ok {
		return false
	}
	s.cache.mu.Lock()
	defer s.cache.mu.Unlock()
	m := s.records()
	for symbol, r := range parsed {
		m[symbol] = r
	}
	s.cache.gen++
	return true
}

// SortedSymbols returns all known symbols, indices ('^' prefixed) first.
func (s *Store) SortedSymbols() []string {
	s.cache.mu.Lock()
	symbols := make([]string, 0, len(s.cache.records))
	for symbol := range s.records() {
		symbols = append(symbols, symbol)
	}
	s.cache.mu.Unlock()
	SortSymbols(symbols)
	return symbols
}

// RecordsFor returns the non empty records of the given symbols.
func (s *Store) RecordsFor(symbols []string) map[string]Record {
	s.cache.mu.Lock()
	defer s.cache.mu.Unlock()
	m := s.records()
	res := make(map[string]Record)
	for _, symbol := range symbols {
		if r, ok := m[symbol]; ok && !r.IsEmpty() {
			res[symbol] = r
		}
	}
	return res
}

// HasPortfolioData reports whether any of symbols has a non empty record. A
// record holding only limits or a name counts.
func (s *Store) HasPortfolioData(symbols []string) bool {
	return len(s.RecordsFor(symbols)) > 0
}

// SortSymbols sorts symbols in place, '^' prefixed symbols before the others
// and byte order within each group.
func SortSymbols(symbols []string) {
	slices.SortStableFunc(symbols, func(a, b string) int {
		ia, ib := strings.HasPrefix(a, "^"), strings.HasPrefix(b, "^")
		switch {
		case ia && !ib:
			return -1
		case !ia && ib:
			return 1
		}
		return strings.Compare(a, b)
	})
}

// parseRecords decodes the persisted format. ok is false if raw is not a JSON
// object. Entries that are not objects become empty records.
func parseRecords(raw string) (records map[string]Record, ok bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &obj); err != nil || obj == nil {
		return nil, false
	}
	records = make(map[string]Record, len(obj))
	for symbol, item := range obj {
		var r Record
		if err := json.Unmarshal(item, &r); err != nil {
			r = Record{}
		}
		r.Symbol = symbol
		records[symbol] = r
	}
	return records, true
}

// encodeRecords writes the non empty records in the persisted format, sorted by symbol.
func encodeRecords(m map[string]Record) (string, error) {
	symbols := make([]string, 0, len(m))
	for symbol, r := range m {
		if !r.IsEmpty() {
			symbols = append(symbols, symbol)
		}
	}
	SortSymbols(symbols)

	var w jsonObjectWriter
	for _, symbol := range symbols {
		w.Append(symbol, m[symbol])
	}
	b, err := w.MarshalJSON()
	if err != nil {
		return "", err
	}
	return string(b), nil
}
