package tool

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireField(t *testing.T) {
	assert.NoError(t, RequireField("name", "value"))
	err := RequireField("objective", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'objective' is required")
}

func TestValidateRange(t *testing.T) {
	assert.NoError(t, ValidateRange("n", 1, 1, 20))
	assert.NoError(t, ValidateRange("n", 20, 1, 20))
	assert.Error(t, ValidateRange("n", 0, 1, 20))
	assert.Error(t, ValidateRange("n", 21, 1, 20))

	err := ValidateRange("max_results", 50, 1, 20)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_results must be 1-20")
}

func TestValidateSliceLen(t *testing.T) {
	assert.NoError(t, ValidateSliceLen("queries", []string{"a"}, 1, 5))
	assert.NoError(t, ValidateSliceLen("queries", []string{"a", "b", "c", "d", "e"}, 1, 5))
	assert.Error(t, ValidateSliceLen("queries", []string{}, 1, 5))
	assert.Error(t, ValidateSliceLen("queries", []string(nil), 1, 5))
	assert.Error(t, ValidateSliceLen("queries", []string{"a", "b", "c", "d", "e", "f"}, 1, 5))

	err := ValidateSliceLen("queries", []int{}, 1, 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "queries must have 1-5 entries")
}

func TestValidateAll_AllNil(t *testing.T) {
	assert.NoError(t, ValidateAll(nil, nil, nil))
}

func TestValidateAll_Empty(t *testing.T) {
	assert.NoError(t, ValidateAll())
}

func TestValidateAll_ReturnsFirst(t *testing.T) {
	first := fmt.Errorf("first")
	second := fmt.Errorf("second")
	assert.Equal(t, first, ValidateAll(nil, first, second))
}
