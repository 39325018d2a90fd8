package store

import (
	"database/sql"
	"time"
)

func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func unixOrNow(t time.Time, now time.Time) int64 {
	if t.IsZero() {
		return now.UTC().Unix()
	}
	return t.UTC().Unix()
}

func fromUnix(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}
