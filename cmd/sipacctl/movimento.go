package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/jhoicas/sipac-estoque/internal/domain/entity"
)

type movimentoCmd struct {
	tag  string
	tipo string
	qtd  int
}

func (*movimentoCmd) Name() string     { return "movimento" }
func (*movimentoCmd) Synopsis() string { return "registra una entrada o saída de una pieza" }
func (*movimentoCmd) Usage() string {
	return `sipacctl movimento -tag <tag> -tipo entrada|saida [-qtd <n>]

  Aplica el movimiento como lo haría una lectura de la arara. Una saída mayor
  que el estoque se recorta a las unidades disponibles.
`
}

func (c *movimentoCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.tag, "tag", "", "tag de la pieza")
	f.StringVar(&c.tipo, "tipo", entity.MovementTypeOut, "entrada o saida")
	f.IntVar(&c.qtd, "qtd", 1, "unidades")
}

func (c *movimentoCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.tag == "" {
		fmt.Fprintln(os.Stderr, "Error: -tag es obligatorio")
		return subcommands.ExitUsageError
	}
	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	it, err := a.mutations.ApplyDelta(ctx, c.tag, c.tipo, c.qtd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("%s %s: quantidade=%d entrada=%d saida=%d\n", it.Tag, it.Nome, it.Quantidade, it.Entrada, it.Saida)
	return subcommands.ExitSuccess
}
