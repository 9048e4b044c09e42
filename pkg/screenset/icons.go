package screenset

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
)

var ErrDuplicateIcon = errors.New("icon id already registered")

// Icons maps icon ids to the glyphs the terminal renders.
type Icons struct {
	mu     sync.RWMutex
	glyphs map[string]string
}

func NewIcons() *Icons {
	return &Icons{glyphs: map[string]string{}}
}

func (i *Icons) Register(glyphs map[string]string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	for id := range glyphs {
		if _, ok := i.glyphs[id]; ok {
			return errors.Wrap(ErrDuplicateIcon, id)
		}
	}
	for id, g := range glyphs {
		i.glyphs[id] = g
	}
	return nil
}

// Glyph returns the icon, or a bullet for unknown ids.
func (i *Icons) Glyph(id string) string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if g, ok := i.glyphs[id]; ok {
		return g
	}
	return "•"
}

func (i *Icons) IDs() []string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	out := make([]string, 0, len(i.glyphs))
	for id := range i.glyphs {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
