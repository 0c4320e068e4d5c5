package cache

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const entriesSchema = `
	CREATE TABLE IF NOT EXISTS cache_entries (
		category VARCHAR NOT NULL,
		key VARCHAR NOT NULL,
		payload BLOB,
		source VARCHAR,
		written_at TIMESTAMP NOT NULL,
		PRIMARY KEY (category, key)
	);
`

var bootQueries = []string{
	entriesSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
