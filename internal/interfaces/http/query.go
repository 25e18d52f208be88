package http

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/sipac-estoque/internal/application/analytics"
	"github.com/jhoicas/sipac-estoque/internal/domain"
)

// hasQuery distingue "?anos=" (conjunto vacío) de la ausencia del parámetro (default).
func hasQuery(c *fiber.Ctx, key string) bool {
	return c.Context().QueryArgs().Has(key)
}

// splitList "a, b,,c" -> [a b c].
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseYears(s string) ([]int, error) {
	parts := splitList(s)
	years := make([]int, 0, len(parts))
	for _, p := range parts {
		y, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("%w: ano %q", domain.ErrInvalidInput, p)
		}
		years = append(years, y)
	}
	return years, nil
}

// applyFilterQuery aplica anos, categorias, precoMax, busca y sort sobre un filtro en estado por defecto.
func applyFilterQuery(c *fiber.Ctx, f *analytics.FilterState) error {
	if hasQuery(c, "anos") {
		years, err := parseYears(c.Query("anos"))
		if err != nil {
			return err
		}
		f.SetYears(years)
	}
	if hasQuery(c, "categorias") {
		f.SetCategories(splitList(c.Query("categorias")))
	}
	if s := strings.TrimSpace(c.Query("precoMax")); s != "" {
		p, err := decimal.NewFromString(s)
		if err != nil || p.IsNegative() {
			return fmt.Errorf("%w: precoMax %q", domain.ErrInvalidInput, s)
		}
		f.SetPriceMax(p)
	}
	f.SetSearch(c.Query("busca"))
	if s := strings.TrimSpace(c.Query("sort")); s != "" {
		k, err := analytics.ParseSortKey(s)
		if err != nil {
			return err
		}
		f.SetSort(k)
	}
	return nil
}
