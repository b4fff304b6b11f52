package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinels_AreDistinct(t *testing.T) {
	all := []error{
		ErrorNotFound, ErrorAlreadyExists, ErrorInternal, ErrorUnauthorized,
		ErrorForbidden, ErrorValidation, ErrInvalidToken, ErrNoLocations,
		ErrLoadInProgress, ErrSourceNotFound, ErrImport,
	}
	for i, a := range all {
		for j, b := range all {
			if i != j {
				assert.False(t, errors.Is(a, b), "%v must not match %v", a, b)
			}
		}
	}
}

func TestSentinels_SurviveWrapping(t *testing.T) {
	err := fmt.Errorf("user %q: %w", "JUPEGAAB", ErrorNotFound)
	assert.ErrorIs(t, err, ErrorNotFound)
	assert.Contains(t, err.Error(), "JUPEGAAB")
}
