package postgres

import (
	"context"
	_ "embed"
	"fmt"
)

// Schema DDL idempotente de la base de datos.
//
//go:embed schema.sql
var Schema string

// Migrate aplica Schema. Se puede ejecutar en cada arranque.
func Migrate(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("aplicar schema: %w", err)
	}
	return nil
}
