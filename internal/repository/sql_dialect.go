package repository

import (
	"fmt"

	"github.com/arkamaya/projectflow/internal/config"
)

// placeholder returns the correct bind variable for the given index based on
// DB type. Postgres uses $1, $2... while MySQL and SQLite use ?
func placeholder(i int) string {
	db := config.GetSystemSettingString(config.DATABASE_TYPE)
	if db == config.DATABASE_TYPE_POSTGRES {
		return fmt.Sprintf("$%d", i)
	}
	return "?"
}

// supportsOnConflict reports whether the configured database accepts the
// ON CONFLICT upsert syntax. MySQL needs ON DUPLICATE KEY UPDATE instead.
func supportsOnConflict() bool {
	db := config.GetSystemSettingString(config.DATABASE_TYPE)
	return db == config.DATABASE_TYPE_POSTGRES || db == config.DATABASE_TYPE_SQLLITE
}
