package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/sipac-estoque/internal/application/report"
	infrapdf "github.com/jhoicas/sipac-estoque/internal/infrastructure/pdf"
	infraxlsx "github.com/jhoicas/sipac-estoque/internal/infrastructure/xlsx"
	"github.com/jhoicas/sipac-estoque/pkg/config"
)

type relatorioCmd struct {
	formato   string
	categoria string
	out       string
}

func (*relatorioCmd) Name() string     { return "relatorio" }
func (*relatorioCmd) Synopsis() string { return "exporta el relatorio de estoque (pdf, xlsx o json)" }
func (*relatorioCmd) Usage() string {
	return `sipacctl relatorio [-formato pdf|xlsx|json] [-categoria <cat>] [-o <archivo>]

  Sin -o el archivo toma el nombre relatorio-estoque-<fecha>.<ext> en el directorio actual.
  El formato json se escribe en stdout.
`
}

func (c *relatorioCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.formato, "formato", "pdf", "pdf, xlsx o json")
	f.StringVar(&c.categoria, "categoria", "", "limita el relatorio a una categoría")
	f.StringVar(&c.out, "o", "", "ruta de salida")
}

func (c *relatorioCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.formato != "json" {
		if _, err := rendererFor(c.formato, config.ReportConfig{}); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	uc := report.NewUseCase(a.prov.Items, a.cfg.Report.Title)

	if c.formato == "json" {
		r, err := uc.Generate(ctx, c.categoria)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generando relatorio: %v\n", err)
			return subcommands.ExitFailure
		}
		decimal.MarshalJSONWithoutQuotes = true
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	renderer, _ := rendererFor(c.formato, a.cfg.Report)
	file, err := uc.Export(ctx, c.categoria, renderer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error exportando relatorio: %v\n", err)
		return subcommands.ExitFailure
	}
	path := c.out
	if path == "" {
		path = file.Name
	}
	if err := os.WriteFile(path, file.Content, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error escribiendo %s: %v\n", path, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("relatorio escrito en %s (%d bytes)\n", path, len(file.Content))
	return subcommands.ExitSuccess
}

// rendererFor elige el exportador por formato.
func rendererFor(formato string, cfg config.ReportConfig) (report.Renderer, error) {
	switch formato {
	case "pdf":
		return infrapdf.NewReportRenderer(cfg.CompanyLine), nil
	case "xlsx":
		return infraxlsx.NewReportWriter(), nil
	}
	return nil, fmt.Errorf("formato desconocido %q (pdf, xlsx o json)", formato)
}
