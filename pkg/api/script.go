package api

import (
	"io"
	"os"
	"time"

	"github.com/dop251/goja"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// LoadScripts parses a scripted-mock file:
//
//	machine-monitoring:monitoring:
//	  "GET /machines/:machineId": |
//	    ({ id: "machine-1", name: "scripted" })
//
// Each value is a JavaScript expression evaluated in a fresh runtime per
// request; its exported value is the response body. Scripts see a now()
// function returning the current time in RFC 3339.
func LoadScripts(r io.Reader) (map[string]MockMap, error) {
	var raw map[string]map[string]string
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]MockMap{}, nil
		}
		return nil, errors.Wrap(err, "parse mock scripts")
	}

	out := make(map[string]MockMap, len(raw))
	for domain, entries := range raw {
		m := MockMap{}
		for key, src := range entries {
			prog, err := goja.Compile(domain+" "+key, src, true)
			if err != nil {
				return nil, errors.Wrapf(err, "compile mock %s %s", domain, key)
			}
			m[key] = scriptFactory(domain+" "+key, prog)
		}
		out[domain] = m
	}
	return out, nil
}

func LoadScriptFile(path string) (map[string]MockMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open mock scripts")
	}
	defer func() { _ = f.Close() }()
	return LoadScripts(f)
}

// RegisterScripts merges scripted mocks into the registry.
func RegisterScripts(r *Registry, scripts map[string]MockMap) error {
	for domain, m := range scripts {
		if err := r.RegisterMocks(domain, m); err != nil {
			return err
		}
	}
	return nil
}

func scriptFactory(name string, prog *goja.Program) MockFactory {
	return func() any {
		vm := goja.New()
		_ = vm.Set("now", func() string {
			return time.Now().UTC().Format(time.RFC3339)
		})
		v, err := vm.RunProgram(prog)
		if err != nil {
			panic(errors.Wrapf(err, "run mock %s", name))
		}
		return v.Export()
	}
}
