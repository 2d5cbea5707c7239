package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github/fluxshare/go-fluxshare/internal/util"
)

type components struct {
	Name    string
	Handler *int
	Skipped *int `wire:"-"`
}

func TestIsStructInitialized(t *testing.T) {
	n := 1

	assert.NoError(t, util.IsStructInitialized(&components{Name: "x", Handler: &n}))
	assert.Error(t, util.IsStructInitialized(&components{Name: "x"}))
	assert.Error(t, util.IsStructInitialized(42))
}
