package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/jhoicas/sipac-estoque/internal/application/inventory"
)

type seedCmd struct{}

func (*seedCmd) Name() string     { return "seed" }
func (*seedCmd) Synopsis() string { return "carga el catálogo demo (tags 001 a 007)" }
func (*seedCmd) Usage() string {
	return `sipacctl seed

  Crea las piezas demo que aún no existen. Las que ya existen (por tag) se conservan.
`
}

func (*seedCmd) SetFlags(*flag.FlagSet) {}

func (*seedCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	n, err := a.mutations.Seed(ctx, inventory.DemoCatalog())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error cargando catálogo: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("%d itens criados, %d no total\n", n, a.store.Len())
	return subcommands.ExitSuccess
}
