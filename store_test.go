package stockboard

import (
	"context"
	"io/fs"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/etnz/stockboard/prefs"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Storage = prefs.NewMemory()

// newTestStore returns a store over a fresh memory storage and cache.
func newTestStore(t *testing.T) (*Store, *prefs.Prefs) {
	t.Helper()
	st := prefs.NewMemory()
	return NewStore(st, NewCache(), zerolog.Nop()), st
}

// memBlobs is an in memory Blobs.
type memBlobs struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func (m *memBlobs) Get(_ context.Context, name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.blobs[name]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return b, nil
}

func (m *memBlobs) Put(_ context.Context, name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.blobs == nil {
		m.blobs = make(map[string][]byte)
	}
	m.blobs[name] = data
	return nil
}

func (m *memBlobs) List(_ context.Context, prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var names []string
	for n := range m.blobs {
		if strings.HasPrefix(n, prefix) {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names, nil
}

func TestStoreRecordIsLazy(t *testing.T) {
	s, st := newTestStore(t)
	r := s.Record("AAPL")
	assert.Equal(t, Record{Symbol: "AAPL"}, r)
	assert.Empty(t, s.SortedSymbols(), "a lazily materialized record is not stored")
	assert.Equal(t, "", st.GetString(PortfolioKey, ""))
}

func TestStoreSaveDropsEmptyRecords(t *testing.T) {
	s, st := newTestStore(t)
	s.Update("AAPL", Record{BuyPrice: "100", Quantity: "10"})
	s.Update("MSFT", Record{})
	s.Update("^DJI", Record{HighLimit: "40000"})
	require.NoError(t, s.Save())

	raw := st.GetString(PortfolioKey, "")
	assert.Contains(t, raw, `"AAPL":{"PRICE":"100"`)
	assert.Contains(t, raw, `"^DJI"`)
	assert.NotContains(t, raw, "MSFT")
	assert.True(t, strings.Index(raw, "^DJI") < strings.Index(raw, "AAPL"))

	// the cache is dirty: the next read decodes the blob and the empty record is gone.
	assert.Equal(t, []string{"^DJI", "AAPL"}, s.SortedSymbols())
	assert.Equal(t, "10", s.Record("AAPL").Quantity)
}

func TestStoreMalformedBlob(t *testing.T) {
	s, st := newTestStore(t)
	st.PutString(PortfolioKey, "{not json")
	assert.Empty(t, s.SortedSymbols())
	assert.Equal(t, Record{Symbol: "AAPL"}, s.Record("AAPL"))
}

func TestStoreEmptyLiteral(t *testing.T) {
	s, st := newTestStore(t)
	st.PutString(PortfolioKey, `{"AAPL":{"PRICE":"100","DATE":"empty","QUANTITY":"empty","LIMIT_HIGH":"empty","LIMIT_LOW":"empty","CUSTOM_DISPLAY":"empty","SYMBOL_2":"empty"},"BAD":"x"}`)
	r := s.Record("AAPL")
	assert.Equal(t, "100", r.BuyPrice)
	assert.Equal(t, "", r.BuyDate)
	assert.Equal(t, "", r.SecondarySymbol)
	assert.Equal(t, Record{Symbol: "BAD"}, s.Record("BAD"))
}

func TestStoreRoundTrip(t *testing.T) {
	s, st := newTestStore(t)
	want := Record{Symbol: "AIR.PA", BuyPrice: "120.5", BuyDate: "2023-03-01", Quantity: "7", LowLimit: "90", CustomName: "Airbus"}
	s.Update(want.Symbol, want)
	require.NoError(t, s.Save())

	other := NewStore(st, NewCache(), zerolog.Nop())
	assert.Equal(t, want, other.Record("AIR.PA"))
}

func TestStoreSharedCacheStaleRead(t *testing.T) {
	st := prefs.NewMemory()
	cache := NewCache()
	a := NewStore(st, cache, zerolog.Nop())
	b := NewStore(st, cache, zerolog.Nop())

	a.Update("AAPL", Record{BuyPrice: "100"})
	assert.Equal(t, "100", b.Record("AAPL").BuyPrice, "stores on the same cache share records")

	require.NoError(t, a.Save())
	assert.Equal(t, "100", b.Record("AAPL").BuyPrice)

	// a write behind the cache's back is not seen until the cache is marked dirty.
	st.PutString(PortfolioKey, `{"AAPL":{"PRICE":"200"}}`)
	assert.Equal(t, "100", b.Record("AAPL").BuyPrice)
	cache.MarkDirty()
	assert.Equal(t, "200", b.Record("AAPL").BuyPrice)
}

func TestStorePrune(t *testing.T) {
	s, _ := newTestStore(t)
	s.Update("GONE", Record{HighLimit: "10"})
	s.Update("KEPT", Record{CustomName: "still on a widget"})
	s.Update("HELD", Record{BuyPrice: "1"})
	s.Track([]string{"NEW"})

	removed := s.Prune([]string{"KEPT", "NEW"})
	assert.Equal(t, 1, removed)
	assert.Equal(t, []string{"HELD", "KEPT", "NEW"}, s.SortedSymbols())
}

func TestStorePruneConcurrent(t *testing.T) {
	st := prefs.NewMemory()
	cache := NewCache()
	a := NewStore(st, cache, zerolog.Nop())
	b := NewStore(st, cache, zerolog.Nop())
	for _, symbol := range []string{"A", "B", "C", "D", "E", "F", "G", "H"} {
		a.Update(symbol, Record{})
	}
	a.Update("HELD", Record{BuyPrice: "1"})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		a.Prune(nil)
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			b.Update("X", Record{})
		}
	}()
	wg.Wait()

	// which empty records survived is not specified, the holding always does.
	assert.Equal(t, "1", a.Record("HELD").BuyPrice)
}

func TestStoreMergeFromBackup(t *testing.T) {
	s, _ := newTestStore(t)
	s.Update("AAPL", Record{BuyPrice: "100"})
	s.Update("MSFT", Record{BuyPrice: "300"})

	assert.False(t, s.MergeFromBackup(""))
	assert.False(t, s.MergeFromBackup("null"))
	assert.False(t, s.MergeFromBackup("[1,2]"))
	assert.Equal(t, "100", s.Record("AAPL").BuyPrice)

	assert.True(t, s.MergeFromBackup(`{"AAPL":{"PRICE":"90","QUANTITY":"5"},"^FTSE":{"LIMIT_LOW":"7000"}}`))
	assert.Equal(t, Record{Symbol: "AAPL", BuyPrice: "90", Quantity: "5"}, s.Record("AAPL"))
	assert.Equal(t, "300", s.Record("MSFT").BuyPrice)
	assert.Equal(t, []string{"^FTSE", "AAPL", "MSFT"}, s.SortedSymbols())
}

func TestSortSymbols(t *testing.T) {
	symbols := []string{"^GSPC", "AAPL", "^DJI", "MSFT"}
	SortSymbols(symbols)
	assert.Equal(t, []string{"^DJI", "^GSPC", "AAPL", "MSFT"}, symbols)
}

func TestStoreRecordsFor(t *testing.T) {
	s, _ := newTestStore(t)
	s.Update("AAPL", Record{BuyPrice: "100"})
	s.Update("^DJI", Record{HighLimit: "1"})
	s.Track([]string{"MSFT"})

	got := s.RecordsFor([]string{"AAPL", "^DJI", "MSFT", "NONE"})
	assert.Len(t, got, 2)
	assert.True(t, s.HasPortfolioData([]string{"AAPL", "MSFT"}))
	assert.True(t, s.HasPortfolioData([]string{"^DJI", "MSFT"}), "limits alone count")
	assert.False(t, s.HasPortfolioData([]string{"MSFT", "NONE"}), "tracked empty records do not")
}

func TestPortfolioBackupRestore(t *testing.T) {
	ctx := context.Background()
	blobs := &memBlobs{}
	s, _ := newTestStore(t)
	s.Update("AAPL", Record{BuyPrice: "100", Quantity: "10"})
	require.NoError(t, s.BackupPortfolio(ctx, blobs, "monday"))
	assert.Error(t, s.BackupPortfolio(ctx, blobs, ""))

	names, err := PortfolioBackups(ctx, blobs)
	require.NoError(t, err)
	assert.Equal(t, []string{"monday"}, names)

	other, st := newTestStore(t)
	other.Update("MSFT", Record{BuyPrice: "300"})
	ok, err := other.RestorePortfolio(ctx, blobs, "monday")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "10", other.Record("AAPL").Quantity)
	assert.Equal(t, "300", other.Record("MSFT").BuyPrice)
	assert.Contains(t, st.GetString(PortfolioKey, ""), "MSFT", "restore saves the merged portfolio")

	ok, err = other.RestorePortfolio(ctx, blobs, "tuesday")
	require.NoError(t, err)
	assert.False(t, ok)
}
