package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"

	appanalytics "github.com/jhoicas/sipac-estoque/internal/application/analytics"
)

type auditarCmd struct{}

func (*auditarCmd) Name() string     { return "auditar" }
func (*auditarCmd) Synopsis() string { return "compara el ledger con los contadores de cada item" }
func (*auditarCmd) Usage() string {
	return `sipacctl auditar

  Lista los tags cuyo ledger no cuadra con entrada/saida. Sale con código 1 si hay divergencias.
`
}

func (*auditarCmd) SetFlags(*flag.FlagSet) {}

func (*auditarCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	uc := appanalytics.NewDashboardUseCase(a.store, a.prov.Movements, appanalytics.FilterDefaults{})
	res, err := uc.Audit(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error auditando: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("%d itens verificados, %d divergências\n", res.ItensVerificados, len(res.Divergencias))
	if len(res.Divergencias) == 0 {
		return subcommands.ExitSuccess
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TAG\tENTRADA ITEM\tENTRADA LEDGER\tSAIDA ITEM\tSAIDA LEDGER\t")
	for _, d := range res.Divergencias {
		tag := d.Tag
		if d.SemItem {
			tag += " (removido)"
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t\n", tag, d.EntradaItem, d.EntradaLedger, d.SaidaItem, d.SaidaLedger)
	}
	w.Flush()
	return subcommands.ExitFailure
}
