package hwhint

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveReturnsRequestedWhenPositive(t *testing.T) {
	assert.Equal(t, 7, Resolve(7, 2.0))
}

func TestResolveDerivesFromNumCPU(t *testing.T) {
	got := Resolve(0, 1.0)
	assert.Equal(t, runtime.NumCPU(), got)
}

func TestResolveFloorsAtOne(t *testing.T) {
	assert.Equal(t, 1, Resolve(0, 0))
}
