package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "parceirosctl",
		Short: "Ferramentas de operação do programa de parceiros",
		Long: `Utilitários de operação da API de parceiros Tillit.

Subcomandos:
  migrate        - aplica o schema no banco apontado por DATABASE_URL
  hash-password  - gera o hash bcrypt para ADMIN_PASSWORD_HASH
  bonus          - mostra a faixa e o bônus para um número de conversões`,
		SilenceUsage: true,
	}
	root.AddCommand(newMigrateCmd(), newHashPasswordCmd(), newBonusCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
