package model_test

import (
	"strings"
	"testing"

	"brieftube/model"

	"github.com/stretchr/testify/assert"
)

func TestClampTitle(t *testing.T) {
	t.Run("short title untouched", func(t *testing.T) {
		assert.Equal(t, "Some Video", model.ClampTitle("Some Video"))
	})

	t.Run("long title truncated", func(t *testing.T) {
		long := strings.Repeat("x", 250)
		clamped := model.ClampTitle(long)
		assert.Len(t, []rune(clamped), model.TitleMaxLen)
	})

	t.Run("multibyte runes counted as one", func(t *testing.T) {
		long := strings.Repeat("世", 250)
		clamped := model.ClampTitle(long)
		assert.Len(t, []rune(clamped), model.TitleMaxLen)
	})
}
