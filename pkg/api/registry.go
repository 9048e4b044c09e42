package api

import (
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

var (
	ErrDuplicateDomain = errors.New("api domain already registered")
	ErrUnknownDomain   = errors.New("api domain not registered")
)

type Config struct {
	BaseURL     string        `yaml:"base_url" json:"base_url"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout"`
	UseMocks    bool          `yaml:"use_mocks" json:"use_mocks"`
	MockDelay   time.Duration `yaml:"mock_delay" json:"mock_delay"`
	MockScripts string        `yaml:"mock_scripts" json:"mock_scripts"`
}

func DefaultConfig() Config {
	return Config{
		BaseURL:  "http://localhost:8080",
		Timeout:  DefaultTimeout,
		UseMocks: true,
	}
}

// Env is what a service constructor receives.
type Env struct {
	Domain string
	Config Config
	Logger zerolog.Logger
	// Mocks returns the domain's current mock map.
	Mocks func() MockMap
}

// Protocol returns a REST protocol for a service mounted at basePath.
func (e Env) Protocol(basePath string) *RestProtocol {
	return NewRestProtocol(e.Config, basePath, e.Mocks, e.Logger.With().Str("domain", e.Domain).Logger())
}

type Constructor func(env Env) (any, error)

// Registry maps domain ids to services and their mock maps. Services are
// built on first use and shared afterwards.
type Registry struct {
	mu       sync.Mutex
	cfg      Config
	ctors    map[string]Constructor
	order    []string
	services map[string]any
	mocks    map[string]MockMap
	logger   zerolog.Logger
}

func NewRegistry(cfg Config, l zerolog.Logger) *Registry {
	return &Registry{
		cfg:      cfg,
		ctors:    map[string]Constructor{},
		services: map[string]any{},
		mocks:    map[string]MockMap{},
		logger:   l,
	}
}

func (r *Registry) Config() Config {
	return r.cfg
}

func (r *Registry) Register(domain string, ctor Constructor) error {
	if domain == "" {
		return errors.New("empty api domain")
	}
	if ctor == nil {
		return errors.Errorf("nil constructor for %s", domain)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ctors[domain]; ok {
		return errors.Wrap(ErrDuplicateDomain, domain)
	}
	r.ctors[domain] = ctor
	r.order = append(r.order, domain)
	return nil
}

// RegisterMocks merges m into the domain's mock map. Later entries replace
// earlier ones with the same key.
func (r *Registry) RegisterMocks(domain string, m MockMap) error {
	if domain == "" {
		return errors.New("empty api domain")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mocks[domain] = mergeMocks(r.mocks[domain], m)
	return nil
}

// MockMap returns a copy of the domain's mock map.
func (r *Registry) MockMap(domain string) MockMap {
	r.mu.Lock()
	defer r.mu.Unlock()
	return mergeMocks(nil, r.mocks[domain])
}

func (r *Registry) Service(domain string) (any, error) {
	r.mu.Lock()
	if svc, ok := r.services[domain]; ok {
		r.mu.Unlock()
		return svc, nil
	}
	ctor, ok := r.ctors[domain]
	r.mu.Unlock()
	if !ok {
		return nil, errors.Wrap(ErrUnknownDomain, domain)
	}

	svc, err := ctor(Env{
		Domain: domain,
		Config: r.cfg,
		Logger: r.logger,
		Mocks:  func() MockMap { return r.MockMap(domain) },
	})
	if err != nil {
		return nil, errors.Wrapf(err, "construct %s", domain)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.services[domain]; ok {
		return prev, nil
	}
	r.services[domain] = svc
	return svc, nil
}

// Domains returns registered domain ids in registration order.
func (r *Registry) Domains() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.order...)
}

// MockDomains returns every domain with mocks, sorted.
func (r *Registry) MockDomains() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.mocks))
	for d := range r.mocks {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// Service returns the domain's service as T.
func Service[T any](r *Registry, domain string) (T, error) {
	var zero T
	svc, err := r.Service(domain)
	if err != nil {
		return zero, err
	}
	t, ok := svc.(T)
	if !ok {
		return zero, errors.Errorf("service %s is %T, not %T", domain, svc, zero)
	}
	return t, nil
}
