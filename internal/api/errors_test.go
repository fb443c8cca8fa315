package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"testing"

	"storefront/internal/service"

	"github.com/stretchr/testify/assert"
)

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func TestStatusFor(t *testing.T) {
	cases := map[error]int{
		service.ErrUnauthorized:        http.StatusUnauthorized,
		service.ErrInvalidCredentials:  http.StatusUnauthorized,
		service.ErrItemNotFound:        http.StatusNotFound,
		service.ErrCartLineNotFound:    http.StatusNotFound,
		service.ErrDuplicateEmail:      http.StatusBadRequest,
		service.ErrAdminExists:         http.StatusBadRequest,
		service.ErrInvalidResetCode:    http.StatusBadRequest,
		service.ErrInvalidQuantity:     http.StatusBadRequest,
		service.ErrInvalidRating:       http.StatusBadRequest,
		service.ErrEmptyOrder:          http.StatusBadRequest,
		errors.New("connection reset"): http.StatusInternalServerError,
	}
	for err, want := range cases {
		assert.Equal(t, want, statusFor(err), err.Error())
	}
	assert.Equal(t, http.StatusNotFound, statusFor(fmt.Errorf("lookup: %w", service.ErrItemNotFound)))
}
