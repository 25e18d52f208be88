package report_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sipac-estoque/internal/application/dto"
	"github.com/jhoicas/sipac-estoque/internal/application/report"
	"github.com/jhoicas/sipac-estoque/internal/domain/entity"
	"github.com/jhoicas/sipac-estoque/internal/infrastructure/memory"
)

var at = time.Date(2025, 2, 3, 14, 5, 9, 0, time.UTC)

type stubRenderer struct {
	got *dto.ReportDTO
	err error
}

func (s *stubRenderer) Render(_ context.Context, r *dto.ReportDTO) ([]byte, error) {
	s.got = r
	return []byte("ok"), s.err
}
func (s *stubRenderer) ContentType() string { return "text/plain" }
func (s *stubRenderer) Extension() string   { return "txt" }

func items() []*entity.Item {
	return []*entity.Item{
		{Tag: "001", Name: "Camiseta", Category: "Camisetas", Price: decimal.RequireFromString("89.9"), Quantity: 21, Inbound: 22, Outbound: 1, InStock: true},
		{Tag: "005", Name: "Boné", Category: "Acessórios", Price: decimal.RequireFromString("79.9"), Quantity: 0, Inbound: 4, Outbound: 4, InStock: false},
	}
}

func TestBuild_SaldoYTotales(t *testing.T) {
	r := report.Build(items(), "", "SIPAC", at)
	require.Len(t, r.Linhas, 2)
	assert.Equal(t, 21, r.Linhas[0].Saldo)
	assert.Equal(t, 0, r.Linhas[1].Saldo, "sin movimentação el saldo es 0")
	assert.Equal(t, 26, r.Totais.TotalEntradas)
	assert.Equal(t, 5, r.Totais.TotalSaidas)
	assert.Equal(t, 21, r.Totais.TotalSaldo)
	assert.True(t, r.Totais.ValorTotal.Equal(decimal.RequireFromString("1887.9")))

	acc := report.Build(items(), "Acessórios", "SIPAC", at)
	require.Len(t, acc.Linhas, 1)
	assert.Equal(t, "005", acc.Linhas[0].Tag)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "relatorio-estoque-2025-02-03_14-05-09.pdf", report.FileName(at, "pdf"))
}

func TestExport(t *testing.T) {
	db := memory.NewDB()
	for _, it := range items() {
		_, err := db.Items().Create(context.Background(), it)
		require.NoError(t, err)
	}
	uc := report.NewUseCase(db.Items(), "SIPAC").WithClock(func() time.Time { return at })

	r := &stubRenderer{}
	f, err := uc.Export(context.Background(), "Camisetas", r)
	require.NoError(t, err)
	assert.Equal(t, "relatorio-estoque-2025-02-03_14-05-09.txt", f.Name)
	assert.Equal(t, "text/plain", f.ContentType)
	assert.Len(t, r.got.Linhas, 1)

	_, err = uc.Export(context.Background(), "", &stubRenderer{err: errors.New("boom")})
	assert.Error(t, err)
}
