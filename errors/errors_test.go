package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilderMarks(t *testing.T) {
	err := NewError("no such file").
		WithHint("No such file: values.yml").
		Mark(ErrUsage)

	assert.True(t, IsUsage(err))
	assert.False(t, IsValidation(err))
	assert.False(t, IsParse(err))
	assert.Equal(t, "No such file: values.yml", GetHint(err))
}

func TestMarkSurvivesWrapping(t *testing.T) {
	err := WithError(fmt.Errorf("line 3: bad indent")).
		WithMessage("failed to parse template").
		Mark(ErrParse)

	wrapped := fmt.Errorf("billdate 2024-06-15: %w", err)

	assert.True(t, IsParse(wrapped))
	assert.Contains(t, wrapped.Error(), "failed to parse template")
	assert.Contains(t, wrapped.Error(), "bad indent")
}

func TestGetHintEmpty(t *testing.T) {
	assert.Equal(t, "", GetHint(fmt.Errorf("plain")))
}

func TestJoin(t *testing.T) {
	a := NewError("a").Mark(ErrValidation)
	b := NewError("b").Mark(ErrValidation)

	joined := Join(a, nil, b)
	assert.True(t, IsValidation(joined))
	assert.Contains(t, joined.Error(), "a")
	assert.Contains(t, joined.Error(), "b")
	assert.Nil(t, Join())
}

func TestSystemErrorWithMessage(t *testing.T) {
	err := WithError(fmt.Errorf("disk full")).
		WithHint("failed to write invoice_Jun302024.pdf").
		Mark(ErrSystem)

	err = WithError(err).
		WithMessagef("failed to render invoice %v", "Jun302024").
		Mark(ErrSystem)

	assert.True(t, IsSystem(err))
	assert.False(t, IsUsage(err))
	assert.Equal(t, "failed to write invoice_Jun302024.pdf", GetHint(err))
	assert.Equal(t, "failed to render invoice Jun302024: disk full", err.Error())
}
