// seed carga el catálogo de demostración en PostgreSQL. Es idempotente.
//
// Uso: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/Tienda-api/internal/bootstrap"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/seed"
	"github.com/jhoicas/Tienda-api/pkg/config"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	backend, err := bootstrap.NewPostgresBackend(ctx, pool, postgres.Options{
		InvoiceBase: cfg.Ledger.InvoiceBase,
		POBase:      cfg.Ledger.POBase,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("alinear secuencias de numeración")
	}
	if err := seed.Load(ctx, backend.SeedTargets(), cfg.Ledger.SeedPassword, log.Component("seed")); err != nil {
		log.Fatal().Err(err).Msg("cargar catálogo demo")
	}
}
