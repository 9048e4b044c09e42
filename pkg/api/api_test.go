package api

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type machine struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func machineMocks() MockMap {
	return MockMap{
		"GET /machines":                  func() any { return []machine{{ID: "machine-1"}, {ID: "machine-2"}} },
		"GET /machines/:machineId":       func() any { return machine{ID: "machine-1", Name: "fixed"} },
		"GET /fleet/statistics":          func() any { return map[string]int{"total": 2} },
		"GET /fleet/:machineId":          func() any { return machine{ID: "fleet-1"} },
		"GET /machines/:machineId/stats": func() any { return "stats" },
	}
}

func TestMockMap_NoParamSubstitution(t *testing.T) {
	m := machineMocks()

	f42, key42, ok := m.Lookup("GET", "/machines/machine-42")
	require.True(t, ok)
	f7, key7, ok := m.Lookup("GET", "/machines/machine-7")
	require.True(t, ok)

	require.Equal(t, "GET /machines/:machineId", key42)
	require.Equal(t, key42, key7)
	require.Equal(t, f42(), f7())
	require.Equal(t, machine{ID: "machine-1", Name: "fixed"}, f42())
}

func TestMockMap_IgnoresQueryString(t *testing.T) {
	m := machineMocks()

	_, key, ok := m.Lookup("get", "/machines?status=online&page=2")
	require.True(t, ok)
	require.Equal(t, "GET /machines", key)

	_, key, ok = m.Lookup("GET", "/machines/m1/stats?range=1day")
	require.True(t, ok)
	require.Equal(t, "GET /machines/:machineId/stats", key)
}

func TestMockMap_ExactAndLiteralPrecedence(t *testing.T) {
	m := machineMocks()

	f, key, ok := m.Lookup("GET", "/fleet/statistics")
	require.True(t, ok)
	require.Equal(t, "GET /fleet/statistics", key)
	require.Equal(t, map[string]int{"total": 2}, f())

	m["GET /fleet/:machineId/disks"] = func() any { return "param" }
	m["GET /fleet/statistics/:field"] = func() any { return "literal" }
	f, _, ok = m.Lookup("GET", "/fleet/statistics/disks")
	require.True(t, ok)
	require.Equal(t, "literal", f())
}

func TestMockMap_Misses(t *testing.T) {
	m := machineMocks()

	_, _, ok := m.Lookup("POST", "/machines")
	require.False(t, ok)
	_, _, ok = m.Lookup("GET", "/machines/a/b/c")
	require.False(t, ok)
	_, _, ok = m.Lookup("GET", "/unknown")
	require.False(t, ok)
	require.Len(t, m.Keys(), 5)
}

func mockProtocol(m MockMap) *RestProtocol {
	cfg := DefaultConfig()
	return NewRestProtocol(cfg, "/api/monitoring", func() MockMap { return m }, zerolog.Nop())
}

func TestRestProtocol_MockDecode(t *testing.T) {
	p := mockProtocol(machineMocks())

	var got []machine
	require.NoError(t, p.Get(context.Background(), "/machines", &got))
	require.Equal(t, []machine{{ID: "machine-1"}, {ID: "machine-2"}}, got)

	var one machine
	require.NoError(t, p.Get(context.Background(), "/machines/anything", &one))
	require.Equal(t, "fixed", one.Name)
	require.Equal(t, DefaultTimeout, p.Timeout())
}

func TestRestProtocol_MockMissAndPanic(t *testing.T) {
	p := mockProtocol(MockMap{
		"GET /broken": func() any { panic("no data") },
	})

	err := p.Get(context.Background(), "/nope", nil)
	require.True(t, stderrors.Is(err, ErrNoMock))

	err = p.Get(context.Background(), "/broken", nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no data")
}

func TestRestProtocol_MockDelayHonoursContext(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MockDelay = time.Second
	p := NewRestProtocol(cfg, "/x", func() MockMap { return machineMocks() }, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := p.Get(ctx, "/machines", nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRestProtocol_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/monitoring/machines":
			require.Equal(t, "online", r.URL.Query().Get("status"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"id":"m1","name":"alpha"}]`))
		case "/api/monitoring/slow":
			time.Sleep(200 * time.Millisecond)
		default:
			http.Error(w, "nope", http.StatusNotFound)
		}
	}))
	defer srv.Close()

	cfg := Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond}
	p := NewRestProtocol(cfg, "api/monitoring/", nil, zerolog.Nop())

	var got []machine
	err := p.Do(context.Background(), Request{Path: "/machines", Query: url.Values{"status": {"online"}}}, &got)
	require.NoError(t, err)
	require.Equal(t, []machine{{ID: "m1", Name: "alpha"}}, got)

	err = p.Get(context.Background(), "/missing", nil)
	var herr *HTTPError
	require.True(t, stderrors.As(err, &herr))
	require.Equal(t, http.StatusNotFound, herr.Status)
	require.Contains(t, herr.Error(), "404 Not Found: nope")

	err = p.Get(context.Background(), "/slow", nil)
	require.Error(t, err)
	require.True(t, stderrors.Is(err, context.DeadlineExceeded))
}

type fakeService struct {
	proto *RestProtocol
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(DefaultConfig(), zerolog.Nop())

	built := 0
	ctor := func(env Env) (any, error) {
		built++
		require.Equal(t, "mon", env.Domain)
		return &fakeService{proto: env.Protocol("/api/monitoring")}, nil
	}
	require.NoError(t, r.Register("mon", ctor))
	require.True(t, stderrors.Is(r.Register("mon", ctor), ErrDuplicateDomain))

	_, err := r.Service("other")
	require.True(t, stderrors.Is(err, ErrUnknownDomain))

	svc, err := Service[*fakeService](r, "mon")
	require.NoError(t, err)
	again, err := Service[*fakeService](r, "mon")
	require.NoError(t, err)
	require.Same(t, svc, again)
	require.Equal(t, 1, built)

	_, err = Service[string](r, "mon")
	require.Error(t, err)

	// mocks registered after construction still apply
	require.NoError(t, r.RegisterMocks("mon", machineMocks()))
	var got machine
	require.NoError(t, svc.proto.Get(context.Background(), "/machines/zzz", &got))
	require.Equal(t, "fixed", got.Name)

	require.Equal(t, []string{"mon"}, r.Domains())
	require.Equal(t, []string{"mon"}, r.MockDomains())
}

func TestLoadScripts(t *testing.T) {
	src := `
mon:
  "GET /machines/:machineId": |
    ({ id: "scripted", name: "from-js", tags: [1, 2].map(function (x) { return x * 2 }) })
  "GET /broken": |
    undefinedFunction()
`
	scripts, err := LoadScripts(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, scripts["mon"], 2)

	r := NewRegistry(DefaultConfig(), zerolog.Nop())
	require.NoError(t, r.RegisterMocks("mon", machineMocks()))
	require.NoError(t, RegisterScripts(r, scripts))

	p := NewRestProtocol(r.Config(), "/", func() MockMap { return r.MockMap("mon") }, zerolog.Nop())

	var got struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Tags []int  `json:"tags"`
	}
	require.NoError(t, p.Get(context.Background(), "/machines/m-9", &got))
	require.Equal(t, "scripted", got.ID)
	require.Equal(t, []int{2, 4}, got.Tags)

	err = p.Get(context.Background(), "/broken", nil)
	require.Error(t, err)
}

func TestLoadScripts_CompileError(t *testing.T) {
	_, err := LoadScripts(strings.NewReader("mon:\n  \"GET /x\": \"({\"\n"))
	require.Error(t, err)

	scripts, err := LoadScripts(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, scripts)
}

func TestCallFactory(t *testing.T) {
	v, err := CallFactory(func() any { return 7 })
	require.NoError(t, err)
	require.Equal(t, 7, v)

	_, err = CallFactory(func() any { panic("boom") })
	require.Error(t, err)
	require.Contains(t, err.Error(), "boom")

	sentinel := stderrors.New("typed")
	_, err = CallFactory(func() any { panic(sentinel) })
	require.True(t, stderrors.Is(err, sentinel))
}
