// seed_admin crea el vendedor administrador inicial (roles ADMIN y USER) a partir
// de ADMIN_NAME, ADMIN_EMAIL y ADMIN_PASSWORD. Si el email ya existe no hace nada.
//
// Uso: go run ./cmd/seed_admin [email] [password]
// Los argumentos, si se pasan, tienen prioridad sobre las variables de entorno.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gestorventas/deposito-api/internal/application/dto"
	"github.com/gestorventas/deposito-api/internal/application/usecase"
	"github.com/gestorventas/deposito-api/internal/infrastructure/postgres"
	"github.com/gestorventas/deposito-api/pkg/config"
	"github.com/gestorventas/deposito-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	admin := cfg.Admin
	if len(os.Args) > 1 {
		admin.Email = os.Args[1]
	}
	if len(os.Args) > 2 {
		admin.Password = os.Args[2]
	}
	if admin.Email == "" || admin.Password == "" {
		fmt.Fprintln(os.Stderr, "ADMIN_EMAIL y ADMIN_PASSWORD son obligatorios")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migración del esquema")
	}

	uc := usecase.NewVendorUseCase(postgres.NewVendorRepository(pool))
	out, err := uc.CreateAdmin(ctx, dto.CreateVendorRequest{
		Name:     admin.Name,
		Email:    admin.Email,
		Password: admin.Password,
	})
	if err != nil {
		log.Fatal().Err(err).Str("email", admin.Email).Msg("crear administrador")
	}
	log.Info().Str("id", out.ID).Str("email", out.Email).Strs("roles", out.Roles).Msg("administrador listo")
}
