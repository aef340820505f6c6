package postgres

import "github.com/jackc/pgx/v5/pgtype"

// textPtr converts an optional string into a nullable parameter, so partial
// updates can COALESCE untouched columns.
func textPtr(value *string) pgtype.Text {
	if value == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *value, Valid: true}
}
