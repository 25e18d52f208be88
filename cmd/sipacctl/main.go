// sipacctl herramienta de operador: carga el catálogo demo, registra movimientos,
// exporta el relatorio y audita el ledger contra el proveedor configurado por entorno.
//
// Uso: sipacctl <comando> [flags]
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	commander.Register(&seedCmd{}, "estoque")
	commander.Register(&movimentoCmd{}, "estoque")
	commander.Register(&relatorioCmd{}, "relatorios")
	commander.Register(&auditarCmd{}, "relatorios")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
