// Package nid computes the numeric identifiers the PS Vita module format
// uses in place of exported symbol names.
package nid

import (
	"crypto/sha1"
	"encoding/binary"
	"fmt"
)

type Nid uint32

func (n Nid) String() string { return fmt.Sprintf("0x%08X", uint32(n)) }

func (n Nid) MarshalText() ([]byte, error) { return []byte(n.String()), nil }

// Generate hashes name: the first four bytes of its SHA-1 digest, read
// little-endian.
func Generate(name string) Nid {
	sum := sha1.Sum([]byte(name))
	return Nid(binary.LittleEndian.Uint32(sum[:4]))
}

// Well-known module entry points and variables with fixed NIDs.
const (
	ModuleStart      Nid = 0x935CD196
	ModuleStop       Nid = 0x79F8E492
	ModuleExit       Nid = 0x913482A9
	ModuleBootstart  Nid = 0x5C424D40
	ModuleInfo       Nid = 0x6C2224BA
	ModuleProcParam  Nid = 0x70FBA1E7
	ModuleSdkVersion Nid = 0x936C8A78
)

var predefined = map[string]Nid{
	"module_start":       ModuleStart,
	"module_stop":        ModuleStop,
	"module_exit":        ModuleExit,
	"module_bootstart":   ModuleBootstart,
	"module_info":        ModuleInfo,
	"module_proc_param":  ModuleProcParam,
	"module_sdk_version": ModuleSdkVersion,
}

func Predefined(name string) (Nid, bool) {
	n, ok := predefined[name]
	return n, ok
}

// Of returns the predefined NID for name, or its generated hash.
func Of(name string) Nid {
	if n, ok := predefined[name]; ok {
		return n
	}
	return Generate(name)
}
