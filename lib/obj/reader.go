// Package obj reads the merged ELF object handed back by the external ld.
package obj

import (
	"debug/elf"
	"fmt"
)

type Object struct {
	Path string
	Elf  *elf.File
}

func ReadFile(path string) (obj *Object, err error) {
	var e *elf.File
	e, err = elf.Open(path)
	if err != nil {
		return
	}
	obj = &Object{
		Path: path,
		Elf:  e,
	}
	return
}

func (o *Object) Close() error { return o.Elf.Close() }

// Header is the part of the ELF header the target loader checks.
type Header struct {
	OSABI   elf.OSABI
	Machine elf.Machine
	Version elf.Version
}

// Expected is the header of a valid PS Vita ARM object.
var Expected = Header{
	OSABI:   elf.ELFOSABI_NONE,
	Machine: elf.EM_ARM,
	Version: elf.EV_CURRENT,
}

type HeaderError struct {
	Got Header
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("obj: bad psvita elf header (got: %+v, expected: %+v)", e.Got, Expected)
}

func (o *Object) Header() Header {
	return Header{
		OSABI:   o.Elf.OSABI,
		Machine: o.Elf.Machine,
		Version: o.Elf.Version,
	}
}

func (o *Object) VerifyHeader() error {
	if got := o.Header(); got != Expected {
		return &HeaderError{Got: got}
	}
	return nil
}
