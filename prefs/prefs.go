// Package prefs provides key/value preference stores for stockboard.
//
// Every store keeps its committed values in memory and buffers writes until
// Apply, where they are handed to a backend: nothing (Memory), a JSON file
// (OpenFile) or a SQLite table (OpenSQLite).
package prefs

import (
	"io"
	"strconv"
	"sync"

	"github.com/rs/zerolog"
)

// backend persists committed changes.
type backend interface {
	commit(puts map[string]string, removes []string) error
}

// Prefs is a preference store. It is safe for concurrent use.
type Prefs struct {
	mu      sync.Mutex
	values  map[string]string
	puts    map[string]string
	removes map[string]bool
	backend backend
	log     zerolog.Logger
}

func newPrefs(values map[string]string, b backend, log zerolog.Logger) *Prefs {
	if values == nil {
		values = make(map[string]string)
	}
	return &Prefs{
		values:  values,
		puts:    make(map[string]string),
		removes: make(map[string]bool),
		backend: b,
		log:     log,
	}
}

// NewMemory returns a store that lives as long as the process.
func NewMemory() *Prefs { return newPrefs(nil, nil, zerolog.Nop()) }

// lookup returns the value of key as seen by readers, pending writes included.
func (p *Prefs) lookup(key string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if v, ok := p.puts[key]; ok {
		return v, true
	}
	if p.removes[key] {
		return "", false
	}
	v, ok := p.values[key]
	return v, ok
}

func (p *Prefs) put(key, value string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.removes, key)
	p.puts[key] = value
}

func (p *Prefs) GetString(key, def string) string {
	if v, ok := p.lookup(key); ok {
		return v
	}
	return def
}

func (p *Prefs) GetInt(key string, def int) int {
	v, ok := p.lookup(key)
	if !ok {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func (p *Prefs) GetBool(key string, def bool) bool {
	v, ok := p.lookup(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func (p *Prefs) PutString(key, value string)    { p.put(key, value) }
func (p *Prefs) PutInt(key string, value int)   { p.put(key, strconv.Itoa(value)) }
func (p *Prefs) PutBool(key string, value bool) { p.put(key, strconv.FormatBool(value)) }

func (p *Prefs) Remove(key string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.puts, key)
	p.removes[key] = true
}

// Keys returns every committed or pending key.
func (p *Prefs) Keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var keys []string
	for k := range p.values {
		if _, pending := p.puts[k]; !pending && !p.removes[k] {
			keys = append(keys, k)
		}
	}
	for k := range p.puts {
		keys = append(keys, k)
	}
	return keys
}

// Apply commits pending writes to the backend. On failure the pending writes
// are kept so that a later Apply can retry them.
func (p *Prefs) Apply() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.puts) == 0 && len(p.removes) == 0 {
		return nil
	}
	removes := make([]string, 0, len(p.removes))
	for k := range p.removes {
		removes = append(removes, k)
	}
	if p.backend != nil {
		if err := p.backend.commit(p.puts, removes); err != nil {
			return err
		}
	}
	for k, v := range p.puts {
		p.values[k] = v
	}
	for _, k := range removes {
		delete(p.values, k)
	}
	p.log.Debug().Int("puts", len(p.puts)).Int("removes", len(removes)).Msg("preferences committed")
	p.puts = make(map[string]string)
	p.removes = make(map[string]bool)
	return nil
}

// Close releases the backend, if it holds any resource.
func (p *Prefs) Close() error {
	if c, ok := p.backend.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
