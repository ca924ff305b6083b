package stockboard

// Storage keys owned by this package.
const (
	PortfolioKey     = "portfolioJson.txt" // the persisted portfolio records
	WidgetBackupsKey = "widgetJson"        // named widget snapshots
	WidgetIDsKey     = "widgetIds"         // comma separated list of widget ids
)

// Storage is a key/value preference store. Writes are buffered until Apply.
// Getters return def when the key is absent or holds a value of another type.
type Storage interface {
	GetString(key, def string) string
	PutString(key, value string)
	GetInt(key string, def int) int
	PutInt(key string, value int)
	GetBool(key string, def bool) bool
	PutBool(key string, value bool)
	Remove(key string)
	Apply() error
}

// Scope returns a view of s where every key is prefixed, giving each widget
// its own namespace in a single store.
func Scope(s Storage, prefix string) Storage {
	return &scoped{s: s, prefix: prefix}
}

type scoped struct {
	s      Storage
	prefix string
}

func (p *scoped) GetString(key, def string) string   { return p.s.GetString(p.prefix+key, def) }
func (p *scoped) PutString(key, value string)        { p.s.PutString(p.prefix+key, value) }
func (p *scoped) GetInt(key string, def int) int     { return p.s.GetInt(p.prefix+key, def) }
func (p *scoped) PutInt(key string, value int)       { p.s.PutInt(p.prefix+key, value) }
func (p *scoped) GetBool(key string, def bool) bool  { return p.s.GetBool(p.prefix+key, def) }
func (p *scoped) PutBool(key string, value bool)     { p.s.PutBool(p.prefix+key, value) }
func (p *scoped) Remove(key string)                  { p.s.Remove(p.prefix + key) }
func (p *scoped) Apply() error                       { return p.s.Apply() }
