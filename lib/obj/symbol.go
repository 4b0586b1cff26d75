package obj

import (
	"debug/elf"
	"errors"
	"fmt"

	"github.com/golang/glog"
)

type SymbolKind uint8

const (
	Function SymbolKind = iota
	Variable
	TLS
)

func (k SymbolKind) String() string {
	switch k {
	case Function:
		return "function"
	case Variable:
		return "variable"
	case TLS:
		return "tls"
	}
	return fmt.Sprintf("SymbolKind(%d)", uint8(k))
}

func (k SymbolKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

type Symbol struct {
	Name  string
	Kind  SymbolKind
	Value uint64
	Size  uint64
}

// DefinedGlobals lists global and weak symbols defined in the object, in
// symbol table order. Symbols that are neither functions, data objects nor
// TLS are skipped.
func (o *Object) DefinedGlobals() (syms []Symbol, err error) {
	var all []elf.Symbol
	all, err = o.Elf.Symbols()
	if errors.Is(err, elf.ErrNoSymbols) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("obj: %s: %w", o.Path, err)
	}
	for _, s := range all {
		bind := elf.ST_BIND(s.Info)
		if bind != elf.STB_GLOBAL && bind != elf.STB_WEAK {
			continue
		}
		if s.Section == elf.SHN_UNDEF {
			continue
		}
		var kind SymbolKind
		switch typ := elf.ST_TYPE(s.Info); typ {
		case elf.STT_FUNC:
			kind = Function
		case elf.STT_OBJECT:
			kind = Variable
		case elf.STT_TLS:
			kind = TLS
		default:
			glog.V(2).Infof("obj: skipping %s symbol %q", typ, s.Name)
			continue
		}
		syms = append(syms, Symbol{
			Name:  s.Name,
			Kind:  kind,
			Value: s.Value,
			Size:  s.Size,
		})
	}
	return
}
