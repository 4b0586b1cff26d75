package main

import (
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

type otherSignal struct{}

func (otherSignal) String() string { return "other" }
func (otherSignal) Signal()        {}

func TestSignalExitCode(t *testing.T) {
	assert.Equal(t, 130, signalExitCode(os.Interrupt))
	assert.Equal(t, 143, signalExitCode(syscall.SIGTERM))
	assert.Equal(t, 1, signalExitCode(otherSignal{}))
}
