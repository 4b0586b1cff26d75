// Package export decides which defined symbols of a shared module get an
// externally visible NID entry.
package export

import (
	"fmt"
	"os"
	"sort"

	"github.com/ianlancetaylor/demangle"
	"github.com/ii64/psvlink/lib/nid"
	"github.com/ii64/psvlink/lib/obj"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// Predicate reports symbol visibility; *link.Spec implements it.
type Predicate interface {
	IsExported(name string) bool
}

type Entry struct {
	Name      string         `yaml:"name"`
	Demangled string         `yaml:"demangled,omitempty"`
	Kind      obj.SymbolKind `yaml:"kind"`
	NID       nid.Nid        `yaml:"nid"`
}

// Plan is the export table handed to the module image writer, each list
// sorted by NID.
type Plan struct {
	Module    string  `yaml:"module"`
	Functions []Entry `yaml:"functions,omitempty"`
	Variables []Entry `yaml:"variables,omitempty"`
	TLS       []Entry `yaml:"tls,omitempty"`
	Hidden    int     `yaml:"hidden"`
}

type CollisionError struct {
	NID         nid.Nid
	First, Then string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("export: NID %s shared by %q and %q", e.NID, e.First, e.Then)
}

func Build(module string, syms []obj.Symbol, vis Predicate) (*Plan, error) {
	exported := lo.Filter(syms, func(s obj.Symbol, _ int) bool {
		return vis.IsExported(s.Name)
	})
	p := &Plan{Module: module, Hidden: len(syms) - len(exported)}
	exported = lo.UniqBy(exported, func(s obj.Symbol) string { return s.Name })

	seen := map[nid.Nid]string{}
	for _, s := range exported {
		e := Entry{Name: s.Name, Kind: s.Kind, NID: nid.Of(s.Name)}
		if other, dup := seen[e.NID]; dup {
			return nil, &CollisionError{NID: e.NID, First: other, Then: s.Name}
		}
		seen[e.NID] = s.Name
		if d := demangle.Filter(s.Name, demangle.NoClones); d != s.Name {
			e.Demangled = d
		}
		switch s.Kind {
		case obj.Function:
			p.Functions = append(p.Functions, e)
		case obj.Variable:
			p.Variables = append(p.Variables, e)
		case obj.TLS:
			p.TLS = append(p.TLS, e)
		}
	}
	for _, list := range [][]Entry{p.Functions, p.Variables, p.TLS} {
		sort.Slice(list, func(i, j int) bool { return list[i].NID < list[j].NID })
	}
	return p, nil
}

func (p *Plan) Len() int { return len(p.Functions) + len(p.Variables) + len(p.TLS) }

func (p *Plan) WriteFile(path string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
