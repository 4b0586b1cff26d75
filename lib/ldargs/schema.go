package ldargs

import (
	"github.com/ii64/psvlink/lib/opts"
	"github.com/samber/lo"
)

type Schema = opts.Schema[Argument]

// NewSchema registers every spelling the linker understands. Bare tokens
// decode as InputFile.
func NewSchema() *Schema {
	s := opts.New(func(v string) (Argument, error) { return InputFile(v), nil })

	flag := func(produce func() Argument, names ...string) {
		lo.ForEach(names, func(name string, _ int) {
			s.MustRegisterFlag(name, produce)
		})
	}
	toggle := func(on, off string, produce func(bool) Argument) {
		flag(func() Argument { return produce(true) }, on)
		flag(func() Argument { return produce(false) }, off)
	}
	option := func(short, long string, parse opts.Parser[Argument]) {
		if short != "" {
			s.MustRegisterShort(short, parse)
		}
		if long != "" {
			s.MustRegisterLong(long, parse)
		}
	}

	toggle("--as-needed", "--no-as-needed", func(b bool) Argument { return AsNeeded(b) })
	flag(func() Argument { return BDynamic{} }, "-Bdynamic", "-dy", "-call_shared")
	flag(func() Argument { return BStatic{} }, "-Bstatic", "-dn", "-non_shared", "-static")
	flag(func() Argument { return EhFrameHdr{} }, "--eh-frame-hdr")
	toggle("--gc-sections", "--no-gc-sections", func(b bool) Argument { return GcSections(b) })
	flag(func() Argument { return PicExecutable{} }, "-pie", "--pic-executable")
	flag(func() Argument { return Shared{} }, "-shared", "-Bshareable")
	toggle("--whole-archive", "--no-whole-archive", func(b bool) Argument { return WholeArchive(b) })

	option("-l", "--library", func(v string) (Argument, error) {
		return ParseLibrary(v), nil
	})
	option("-L", "--library-path", func(v string) (Argument, error) {
		return LibraryPath(v), nil
	})
	option("-o", "--output", func(v string) (Argument, error) {
		return Output(v), nil
	})
	option("", "--version-script", func(v string) (Argument, error) {
		return VersionScript(v), nil
	})
	option("-z", "", func(v string) (Argument, error) {
		k, err := ParseZKeyword(v)
		if err != nil {
			return nil, err
		}
		return Z{Keyword: k}, nil
	})

	return s
}

// Parse decodes a whole argument vector.
func Parse(args []string) ([]Argument, error) {
	return NewSchema().Stream(args).Collect()
}
