package repositories

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// isDuplicate reports whether err is a MySQL duplicate-key violation (1062).
func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

// statusFilter builds an `AND status IN (...)` fragment for the given
// values. Empty input yields an empty fragment.
func statusFilter(statuses []string) (string, []any) {
	if len(statuses) == 0 {
		return "", nil
	}
	args := make([]any, len(statuses))
	for i, s := range statuses {
		args[i] = s
	}
	return " AND status IN (?" + strings.Repeat(",?", len(statuses)-1) + ")", args
}
