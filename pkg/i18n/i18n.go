// Package i18n loads per-namespace translation tables and resolves
// "namespace:dotted.key" lookups against the active language.
package i18n

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Loader returns the flat translation table of one namespace for a language.
type Loader interface {
	Languages() []language.Tag
	Load(tag language.Tag) (map[string]string, error)
}

// FSLoader reads <dir>/<tag>.yaml files from an fs.FS. Nested YAML maps are
// flattened into dotted keys.
type FSLoader struct {
	fsys fs.FS
	dir  string
	tags []language.Tag
}

func NewFSLoader(fsys fs.FS, dir string) (*FSLoader, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, errors.Wrapf(err, "read translations %s", dir)
	}
	l := &FSLoader{fsys: fsys, dir: dir}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || path.Ext(name) != ".yaml" {
			continue
		}
		tag, err := language.Parse(strings.TrimSuffix(name, ".yaml"))
		if err != nil {
			return nil, errors.Wrapf(err, "translation file %s", name)
		}
		l.tags = append(l.tags, tag)
	}
	if len(l.tags) == 0 {
		return nil, errors.Errorf("no translations in %s", dir)
	}
	sort.Slice(l.tags, func(i, j int) bool { return l.tags[i].String() < l.tags[j].String() })
	return l, nil
}

func (l *FSLoader) Languages() []language.Tag {
	return append([]language.Tag{}, l.tags...)
}

func (l *FSLoader) Load(tag language.Tag) (map[string]string, error) {
	b, err := fs.ReadFile(l.fsys, path.Join(l.dir, tag.String()+".yaml"))
	if err != nil {
		return nil, errors.Wrapf(err, "read %s translations", tag)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, errors.Wrapf(err, "parse %s translations", tag)
	}
	out := map[string]string{}
	flatten("", raw, out)
	return out, nil
}

func flatten(prefix string, v any, out map[string]string) {
	switch t := v.(type) {
	case map[string]any:
		for k, sub := range t {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			flatten(key, sub, out)
		}
	case nil:
	default:
		out[prefix] = fmt.Sprint(t)
	}
}

// Registry holds one loader per namespace and caches loaded tables.
type Registry struct {
	mu       sync.Mutex
	loaders  map[string]Loader
	cache    map[string]map[string]string
	fallback language.Tag
}

func NewRegistry() *Registry {
	return &Registry{
		loaders:  map[string]Loader{},
		cache:    map[string]map[string]string{},
		fallback: language.English,
	}
}

func (r *Registry) Register(namespace string, l Loader) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.loaders[namespace]; ok {
		return errors.Errorf("translations for %s already registered", namespace)
	}
	r.loaders[namespace] = l
	return nil
}

// Translator resolves keys for one language.
func (r *Registry) Translator(tag language.Tag) *Translator {
	return &Translator{reg: r, tag: tag}
}

func (r *Registry) table(namespace string, want language.Tag) (map[string]string, error) {
	r.mu.Lock()
	l, ok := r.loaders[namespace]
	r.mu.Unlock()
	if !ok {
		return nil, errors.Errorf("no translations for %s", namespace)
	}

	tags := l.Languages()
	matcher := language.NewMatcher(append([]language.Tag{r.fallback}, tags...))
	_, idx, conf := matcher.Match(want)
	tag := r.fallback
	if conf != language.No && idx > 0 {
		tag = tags[idx-1]
	}

	cacheKey := namespace + "|" + tag.String()
	r.mu.Lock()
	if t, ok := r.cache[cacheKey]; ok {
		r.mu.Unlock()
		return t, nil
	}
	r.mu.Unlock()

	t, err := l.Load(tag)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.cache[cacheKey] = t
	r.mu.Unlock()
	return t, nil
}

type Translator struct {
	reg *Registry
	tag language.Tag
}

func (t *Translator) Language() language.Tag {
	return t.tag
}

// T resolves "namespace:key". Unknown keys are returned unchanged; a key
// missing in the active language falls back to English. A nil Translator
// returns every key unchanged.
func (t *Translator) T(key string) string {
	ns, k, ok := strings.Cut(key, ":")
	if !ok || t == nil {
		return key
	}
	if tbl, err := t.reg.table(ns, t.tag); err == nil {
		if v, ok := tbl[k]; ok {
			return v
		}
	}
	if t.tag != t.reg.fallback {
		if tbl, err := t.reg.table(ns, t.reg.fallback); err == nil {
			if v, ok := tbl[k]; ok {
				return v
			}
		}
	}
	return key
}

// Scoped returns a lookup bound to a namespace and key prefix, e.g.
// Scoped("screenset.machine-monitoring", "screens.dashboard").
func (t *Translator) Scoped(namespace, prefix string) func(string) string {
	return func(k string) string {
		if prefix != "" {
			k = prefix + "." + k
		}
		return t.T(namespace + ":" + k)
	}
}
