package db

import (
	"fmt"
	"strings"
	"sync"

	"gorm.io/gorm/schema"
)

// DescribeEntities renders an SQL comment block naming the table and columns
// each entity maps to. It is used to pre-fill generated migrations; the
// statements themselves are written by hand.
func DescribeEntities(entities ...any) (string, error) {
	cache := &sync.Map{}
	var b strings.Builder
	b.WriteString("-- Mapped entities at generation time:\n")
	for _, e := range entities {
		s, err := schema.Parse(e, cache, schema.NamingStrategy{})
		if err != nil {
			return "", fmt.Errorf("parse entity %T: %w", e, err)
		}
		fmt.Fprintf(&b, "--   %s (%s)\n", s.Table, strings.Join(s.DBNames, ", "))
	}
	return b.String(), nil
}
