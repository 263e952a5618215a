package gen

import (
	"fmt"

	"github.com/syssam/relgen/dialect"
	"github.com/syssam/relgen/dialect/mssql"
	"github.com/syssam/relgen/dialect/mysql"
	"github.com/syssam/relgen/dialect/pgsql"
	"github.com/syssam/relgen/dialect/sqlite"
)

// NewDescriptor returns a fresh descriptor for the named dialect. It fails
// if the name is not one of the supported dialects.
func NewDescriptor(name dialect.Name) (*dialect.Descriptor, error) {
	switch name {
	case dialect.MSSQL:
		return mssql.Descriptor(), nil
	case dialect.MySQL:
		return mysql.Descriptor(), nil
	case dialect.Postgres:
		return pgsql.Descriptor(), nil
	case dialect.SQLite:
		return sqlite.Descriptor(), nil
	}
	return nil, fmt.Errorf("relgen/gen: invalid dialect %q", name)
}
