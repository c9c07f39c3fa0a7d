package shop

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCompositeSKU(t *testing.T) {
	t.Run("simple SKU is not composite", func(t *testing.T) {
		assert.False(t, IsCompositeSKU("CUP-01"))
	})

	t.Run("delimited SKU is composite", func(t *testing.T) {
		assert.True(t, IsCompositeSKU("CUP-01|LID-01"))
	})

	t.Run("empty SKU is not composite", func(t *testing.T) {
		assert.False(t, IsCompositeSKU(""))
	})
}

func TestSplitSKU(t *testing.T) {
	t.Run("simple SKU yields itself", func(t *testing.T) {
		assert.Equal(t, []string{"CUP-01"}, SplitSKU("CUP-01"))
	})

	t.Run("composite SKU yields components", func(t *testing.T) {
		assert.Equal(t, []string{"CUP-01", "LID-01", "STRAW-01"}, SplitSKU("CUP-01|LID-01|STRAW-01"))
	})

	t.Run("components are trimmed", func(t *testing.T) {
		assert.Equal(t, []string{"CUP-01", "LID-01"}, SplitSKU(" CUP-01 | LID-01 "))
	})

	t.Run("empty components are dropped", func(t *testing.T) {
		assert.Equal(t, []string{"CUP-01"}, SplitSKU("CUP-01||"))
		assert.Equal(t, []string{"LID-01"}, SplitSKU("|LID-01"))
	})

	t.Run("empty SKU yields nothing", func(t *testing.T) {
		assert.Empty(t, SplitSKU(""))
		assert.Empty(t, SplitSKU("|"))
	})
}
