package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNote_ShortID(t *testing.T) {
	n := Note{ID: "0f8b2c4e-1111-2222-3333-444455556666"}
	assert.Equal(t, "0f8b2c4e", n.ShortID())

	short := Note{ID: "abc"}
	assert.Equal(t, "abc", short.ShortID())
}

func TestHasText(t *testing.T) {
	assert.True(t, HasText("Buy milk"))
	assert.True(t, HasText("  x  "))
	assert.False(t, HasText(""))
	assert.False(t, HasText(" \t\n "))
}

func TestPalette_Resolve(t *testing.T) {
	assert.Equal(t, ColorPink, MultiPalette.Resolve(ColorPink))
	assert.Equal(t, ColorYellow, MultiPalette.Resolve(""))
	assert.Equal(t, ColorYellow, MultiPalette.Resolve("bg-orange-300"))
	assert.Equal(t, ColorYellow, Palette{}.Default())
}

func TestColor_IsValid(t *testing.T) {
	for _, c := range MultiPalette {
		assert.True(t, c.IsValid(), string(c))
	}
	assert.False(t, Color("").IsValid())
	assert.False(t, Color("red").IsValid())
}
