package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool { return pgErrCode(err) == "23505" }

// isFKViolation verifica si un error es una violación de foreign key (23503).
func isFKViolation(err error) bool { return pgErrCode(err) == "23503" }
