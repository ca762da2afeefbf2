package postgres

import "fmt"

// TableNames holds dynamically prefixed table names so dev, test and prod
// environments can share one database.
type TableNames struct {
	Items string
}

// NewTableNames creates table names with the given prefix.
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Items: fmt.Sprintf("%sitems", prefix),
	}
}
