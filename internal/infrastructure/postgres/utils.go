package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Código de clase 23 (integrity constraint violation) que Postgres devuelve
// cuando un INSERT o UPDATE choca contra un índice único.
const uniqueViolationCode = "23505"

// isUniqueViolation detecta choques contra índices únicos (SKU de producto,
// nombre de almacén, email de usuario) para que los repositorios los
// traduzcan a domain.ErrDuplicate en lugar de propagar el error crudo.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
