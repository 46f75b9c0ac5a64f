package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_Distinct(t *testing.T) {
	all := []error{
		ErrNotFound,
		ErrInvalidInput,
		ErrUnsupportedType,
		ErrUnknownFormat,
		ErrAcquisition,
		ErrCatalogUnavailable,
		ErrLLMUnavailable,
		ErrStoreUnavailable,
	}

	for i, a := range all {
		assert.NotEmpty(t, a.Error())
		for j, b := range all {
			if i != j {
				assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
			}
		}
	}
}

func TestErrors_Wrapped(t *testing.T) {
	err := fmt.Errorf("read rfq.pdf: %w", ErrAcquisition)

	assert.True(t, errors.Is(err, ErrAcquisition))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "read rfq.pdf: document acquisition failed", err.Error())
}
