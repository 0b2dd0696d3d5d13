package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/xavierca1/tillit-parceiros/internal/auth"
	"github.com/xavierca1/tillit-parceiros/internal/entity"
	"github.com/xavierca1/tillit-parceiros/internal/infra/database"
)

func newMigrateCmd() *cobra.Command {
	var dsn string
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Aplica o schema (idempotente)",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			if dsn == "" {
				dsn = os.Getenv("DATABASE_URL")
			}
			if dsn == "" {
				return fmt.Errorf("DATABASE_URL não definido")
			}

			db, err := database.NewDBConnection(dsn)
			if err != nil {
				return err
			}
			defer db.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			if err := database.Migrate(ctx, db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema aplicado")
			return nil
		},
	}
	cmd.Flags().StringVar(&dsn, "dsn", "", "string de conexão (padrão: DATABASE_URL)")
	return cmd
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <senha>",
		Short: "Gera o hash bcrypt de uma senha",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := auth.HashPassword(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

func newBonusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bonus <conversoes>",
		Short: "Mostra a faixa e o bônus da próxima indicação",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 0 {
				return fmt.Errorf("conversões inválidas: %q", args[0])
			}

			p := entity.ProgressFor(n)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "faixa: %s\n", p.Tier.Name)
			fmt.Fprintf(out, "bônus: R$ %s\n", entity.BonusForConversionCount(n).StringFixed(2))
			if p.NextTier != nil {
				fmt.Fprintf(out, "próxima faixa: %s (faltam %d)\n", p.NextTier.Name, p.RemainingToNext)
			}
			return nil
		},
	}
}
