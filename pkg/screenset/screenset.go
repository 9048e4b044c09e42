package screenset

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-go-golems/screenctl/pkg/api"
	"github.com/go-go-golems/screenctl/pkg/events"
	"github.com/go-go-golems/screenctl/pkg/i18n"
	"github.com/go-go-golems/screenctl/pkg/store"
	"github.com/pkg/errors"
)

var (
	ErrDuplicateScreenset = errors.New("screenset id already registered")
	ErrInvalidDescriptor  = errors.New("invalid screenset descriptor")
)

type Category string

const (
	CategoryDrafts     Category = "drafts"
	CategoryMockups    Category = "mockups"
	CategoryProduction Category = "production"
)

type MenuItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon,omitempty"`
}

// Screen is a bubbletea model hosted by the shell.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View() string
	WithSize(width, height int) Screen
}

// Context is what screens get when they are loaded.
type Context struct {
	Store *store.Store
	Bus   *events.Bus
	APIs  *api.Registry
	T     *i18n.Translator
	Icons *Icons
}

type ScreenLoader func(ctx Context) Screen

type MenuEntry struct {
	Item   MenuItem     `json:"menu_item"`
	Screen ScreenLoader `json:"-"`
}

// Descriptor describes one feature module. Its id namespaces the module's
// events, translation keys and API domains.
type Descriptor struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Category      Category    `json:"category"`
	DefaultScreen string      `json:"default_screen"`
	Localization  i18n.Loader `json:"-"`
	Menu          []MenuEntry `json:"menu"`
}

// Namespace is the translation namespace of the screenset.
func (d Descriptor) Namespace() string {
	return "screenset." + d.ID
}

func (d Descriptor) Entry(screenID string) (MenuEntry, bool) {
	for _, e := range d.Menu {
		if e.Item.ID == screenID {
			return e, true
		}
	}
	return MenuEntry{}, false
}

func (d Descriptor) validate() error {
	if d.ID == "" {
		return errors.Wrap(ErrInvalidDescriptor, "missing id")
	}
	if len(d.Menu) == 0 {
		return errors.Wrapf(ErrInvalidDescriptor, "%s: empty menu", d.ID)
	}
	seen := map[string]bool{}
	for _, e := range d.Menu {
		if e.Item.ID == "" || e.Screen == nil {
			return errors.Wrapf(ErrInvalidDescriptor, "%s: menu entry without id or screen", d.ID)
		}
		if seen[e.Item.ID] {
			return errors.Wrapf(ErrInvalidDescriptor, "%s: duplicate screen %s", d.ID, e.Item.ID)
		}
		seen[e.Item.ID] = true
	}
	if !seen[d.DefaultScreen] {
		return errors.Wrapf(ErrInvalidDescriptor, "%s: default screen %q not in menu", d.ID, d.DefaultScreen)
	}
	return nil
}

// Registry is an append-only list of screensets.
type Registry struct {
	mu    sync.RWMutex
	items []Descriptor
	byID  map[string]int
}

func NewRegistry() *Registry {
	return &Registry{byID: map[string]int{}}
}

// Register appends d. A second registration of the same id is a
// configuration error.
func (r *Registry) Register(d Descriptor) error {
	if err := d.validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[d.ID]; ok {
		return errors.Wrap(ErrDuplicateScreenset, d.ID)
	}
	r.byID[d.ID] = len(r.items)
	r.items = append(r.items, d)
	return nil
}

func (r *Registry) MustRegister(d Descriptor) {
	if err := r.Register(d); err != nil {
		panic(err)
	}
}

// List returns all screensets in registration order.
func (r *Registry) List() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Descriptor{}, r.items...)
}

func (r *Registry) Get(id string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.byID[id]
	if !ok {
		return Descriptor{}, false
	}
	return r.items[i], true
}
