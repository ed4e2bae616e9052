package errors

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorBuilderBasic(t *testing.T) {
	t.Parallel()

	err := Newf("buffer is empty").
		Component("myaudio").
		Category(CategoryBuffer).
		Context("operation", "snapshot").
		Build()

	require.Error(t, err)
	assert.Equal(t, "buffer is empty", err.Error())
	assert.Equal(t, "myaudio", err.GetComponent())
	assert.Equal(t, string(CategoryBuffer), err.GetCategory())
	assert.Equal(t, "snapshot", err.GetContext()["operation"])
	assert.False(t, err.Timestamp.IsZero())
}

func TestErrorBuilderDefaultCategory(t *testing.T) {
	t.Parallel()

	err := Newf("something went wrong").Build()
	assert.Equal(t, CategoryGeneric, err.Category)
}

func TestEnhancedErrorUnwrap(t *testing.T) {
	t.Parallel()

	err := New(io.ErrUnexpectedEOF).
		Category(CategoryFileIO).
		Build()

	assert.True(t, Is(err, io.ErrUnexpectedEOF))
	assert.Equal(t, io.ErrUnexpectedEOF, Unwrap(err))
}

func TestIsMatchesCategory(t *testing.T) {
	t.Parallel()

	sentinel := Newf("capture already running").Category(CategoryState).Build()
	err := Newf("capture already running").Category(CategoryState).Build()

	assert.True(t, Is(err, sentinel))
	assert.True(t, IsCategory(err, CategoryState))
	assert.False(t, IsCategory(err, CategoryBuffer))
}

func TestGetContextReturnsCopy(t *testing.T) {
	t.Parallel()

	err := Newf("oops").Context("key", "value").Build()
	ctx := err.GetContext()
	ctx["key"] = "mutated"
	assert.Equal(t, "value", err.GetContext()["key"])
}
