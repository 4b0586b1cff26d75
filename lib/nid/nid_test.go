package nid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	assert.Equal(t, Nid(0xEEDA2E54), Generate("sceDisplayGetFrameBuf"))
}

func TestString(t *testing.T) {
	assert.Equal(t, "0x000A2E54", Nid(0x000A2E54).String())
}

func TestOf(t *testing.T) {
	assert.Equal(t, ModuleStart, Of("module_start"))
	assert.Equal(t, Generate("sceDisplayGetFrameBuf"), Of("sceDisplayGetFrameBuf"))

	_, ok := Predefined("module_info")
	assert.True(t, ok)
	_, ok = Predefined("main")
	assert.False(t, ok)
}
