package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sipac-estoque/internal/application/dto"
	"github.com/jhoicas/sipac-estoque/internal/domain"
)

func TestWriteError_Mapeo(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("x: %w", domain.ErrNotFound), fiber.StatusNotFound, "NOT_FOUND"},
		{fmt.Errorf("x: %w", domain.ErrInvalidInput), fiber.StatusBadRequest, "VALIDATION"},
		{fmt.Errorf("x: %w", domain.ErrInvalidOperation), fiber.StatusConflict, "INVALID_OPERATION"},
		{fmt.Errorf("x: %w", domain.ErrDuplicate), fiber.StatusConflict, "DUPLICATE"},
		{fmt.Errorf("%w: timeout", domain.ErrPersistence), fiber.StatusServiceUnavailable, "PERSISTENCE"},
		{errors.New("otro"), fiber.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		app := fiber.New()
		app.Get("/", func(c *fiber.Ctx) error { return writeError(c, tc.err) })
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, tc.status, resp.StatusCode, tc.code)
		var body dto.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, tc.code, body.Code)
	}
}

func TestSplitListYParseYears(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, splitList(" a, b,,c "))
	assert.Nil(t, splitList(""))

	years, err := parseYears("2023, 2024")
	require.NoError(t, err)
	assert.Equal(t, []int{2023, 2024}, years)

	_, err = parseYears("2023,x")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
