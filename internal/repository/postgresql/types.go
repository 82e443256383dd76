package postgresql

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/nominalab/asistencia-backend/internal/pkg/dateparse"
)

const microsPerMinute = 60_000_000

// timeColumn maps an optional minute-of-day onto a nullable TIME column.
func timeColumn(t *dateparse.TimeOfDay) pgtype.Time {
	if t == nil {
		return pgtype.Time{}
	}
	return pgtype.Time{Microseconds: int64(t.Minutes()) * microsPerMinute, Valid: true}
}

func timeOfDay(t pgtype.Time) *dateparse.TimeOfDay {
	if !t.Valid {
		return nil
	}
	v := dateparse.TimeOfDay(t.Microseconds / microsPerMinute)
	return &v
}

// isUniqueViolation reports a Postgres 23505 error, used to translate
// constraint hits into domain sentinels.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
