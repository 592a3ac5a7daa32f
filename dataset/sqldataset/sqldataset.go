/*
Package sqldataset provides a dataset backend that stores rows in a table of
an SQL database, with a column per feature. Database specifics are
abstracted behind an Adapter, with implementations for SQLite3 and PostgreSQL
in the sqlite3adapter and pgadapter subpackages.
*/
package sqldataset

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pbanos/impurity/feature"
	"github.com/pbanos/impurity/value"
)

/*
MaxRowInsertionsPerStatement is the maximum number of rows inserted with a
single statement by the Write method of a Table. Writing more rows results
in several insert statements within the same transaction.
*/
const MaxRowInsertionsPerStatement = 10

/*
Adapter is an interface providing the database specifics needed to
implement a Table over a database/sql driver.
*/
type Adapter interface {
	// DB returns the database handle
	DB() *sql.DB
	// QuoteIdentifier returns the given table or column name quoted to be
	// used on a statement, or an error if the name cannot be used
	QuoteIdentifier(string) (string, error)
	// Placeholder returns the placeholder for the i-th (starting at 1)
	// parameter of a statement
	Placeholder(i int) string
	// ColumnType returns the column type used to store values for
	// the given feature
	ColumnType(feature.Feature) (string, error)
	// Columns returns the names of the columns of the given (unquoted)
	// table, or none if the table does not exist
	Columns(ctx context.Context, table string) ([]string, error)
}

/*
Table is a dataset.Reader and dataset.ClassCounter backed by a database
table to which rows can also be written.
*/
type Table struct {
	adapter  Adapter
	name     string
	features []feature.Feature
	columns  []string
}

/*
Open takes a context, an Adapter, a table name and a slice of features and
returns a Table to read rows for those features from the given table, or an
error if the table does not exist or lacks a column for any feature.
*/
func Open(ctx context.Context, adapter Adapter, table string, features []feature.Feature) (*Table, error) {
	t, err := newTable(adapter, table, features)
	if err != nil {
		return nil, err
	}
	columns, err := adapter.Columns(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("opening table %s: %v", table, err)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("opening table %s: table does not exist", table)
	}
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}
	for _, f := range features {
		if !present[f.Name()] {
			return nil, fmt.Errorf("opening table %s: no column for feature %s", table, f.Name())
		}
	}
	return t, nil
}

/*
Create takes a context, an Adapter, a table name and a slice of features and
ensures a table with that name and a column per feature exists on the
database, returning a Table on it or an error.
*/
func Create(ctx context.Context, adapter Adapter, table string, features []feature.Feature) (*Table, error) {
	t, err := newTable(adapter, table, features)
	if err != nil {
		return nil, err
	}
	var createStmtBuf bytes.Buffer
	createStmtBuf.WriteString(fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (", t.name))
	for i, f := range features {
		columnType, err := adapter.ColumnType(f)
		if err != nil {
			return nil, err
		}
		if i > 0 {
			createStmtBuf.WriteString(", ")
		}
		createStmtBuf.WriteString(fmt.Sprintf("%s %s NULL", t.columns[i], columnType))
	}
	createStmtBuf.WriteString(")")
	_, err = adapter.DB().ExecContext(ctx, createStmtBuf.String())
	if err != nil {
		return nil, fmt.Errorf("ensuring table %s exists: %v", table, err)
	}
	return t, nil
}

func newTable(adapter Adapter, table string, features []feature.Feature) (*Table, error) {
	if len(features) == 0 {
		return nil, fmt.Errorf("table %s: no features given", table)
	}
	name, err := adapter.QuoteIdentifier(table)
	if err != nil {
		return nil, err
	}
	columns := make([]string, 0, len(features))
	for _, f := range features {
		c, err := adapter.QuoteIdentifier(f.Name())
		if err != nil {
			return nil, err
		}
		columns = append(columns, c)
	}
	return &Table{adapter, name, features, columns}, nil
}

/*
Write takes a context and a slice of rows and inserts them on the table in
a single transaction. It returns the number of rows inserted and an error if
not all of them could be.
*/
func (t *Table) Write(ctx context.Context, rows [][]value.Value) (int, error) {
	tx, err := t.adapter.DB().BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %v", err)
	}
	for start := 0; start < len(rows); start += MaxRowInsertionsPerStatement {
		end := start + MaxRowInsertionsPerStatement
		if end > len(rows) {
			end = len(rows)
		}
		query, args, err := t.insertStatement(rows[start:end])
		if err != nil {
			tx.Rollback()
			return 0, err
		}
		_, err = tx.ExecContext(ctx, query, args...)
		if err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("inserting rows %d to %d: %v", start, end, err)
		}
	}
	err = tx.Commit()
	if err != nil {
		return 0, fmt.Errorf("committing transaction: %v", err)
	}
	return len(rows), nil
}

func (t *Table) insertStatement(rows [][]value.Value) (string, []interface{}, error) {
	var buf bytes.Buffer
	args := make([]interface{}, 0, len(rows)*len(t.columns))
	buf.WriteString(fmt.Sprintf("INSERT INTO %s (%s) VALUES ", t.name, strings.Join(t.columns, ", ")))
	for i, row := range rows {
		if len(row) != len(t.features) {
			return "", nil, fmt.Errorf("expected %d values, got %d", len(t.features), len(row))
		}
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString("(")
		for j, v := range row {
			if j > 0 {
				buf.WriteString(", ")
			}
			args = append(args, v.Interface())
			buf.WriteString(t.adapter.Placeholder(len(args)))
		}
		buf.WriteString(")")
	}
	return buf.String(), args, nil
}

/*
Read implements dataset.Reader, streaming the rows of the table.
*/
func (t *Table) Read(ctx context.Context) (<-chan value.Row, <-chan error) {
	out := make(chan value.Row)
	errs := make(chan error, 1)
	go func() {
		defer close(errs)
		defer close(out)
		err := t.iterate(ctx, func(row value.Row) bool {
			select {
			case <-ctx.Done():
				return false
			case out <- row:
			}
			return true
		})
		if err == nil {
			err = ctx.Err()
		}
		if err != nil {
			errs <- err
		}
	}()
	return out, errs
}

func (t *Table) iterate(ctx context.Context, lambda func(value.Row) bool) error {
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(t.columns, ", "), t.name)
	rows, err := t.adapter.DB().QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("querying table %s: %v", t.name, err)
	}
	defer rows.Close()
	for rows.Next() {
		dest := make([]interface{}, len(t.features))
		for i, f := range t.features {
			dest[i] = newScanner(f)
		}
		if err = rows.Scan(dest...); err != nil {
			return fmt.Errorf("scanning row from table %s: %v", t.name, err)
		}
		row := make(value.Row, len(t.features))
		for i := range dest {
			if row[i], err = scannedValue(dest[i]); err != nil {
				return fmt.Errorf("reading %s from table %s: %v", t.features[i].Name(), t.name, err)
			}
		}
		if !lambda(row) {
			return nil
		}
	}
	return rows.Err()
}

/*
CountClasses implements dataset.ClassCounter, counting the rows taking each
value for the given feature with a GROUP BY query. NULL values are counted as
undefined values. Values the feature does not accept result in an error, as
they would when loading the rows.
*/
func (t *Table) CountClasses(ctx context.Context, f feature.Feature) (map[value.Value]int, error) {
	var column string
	for i, tf := range t.features {
		if tf.Name() == f.Name() {
			column = t.columns[i]
		}
	}
	if column == "" {
		return nil, fmt.Errorf("table %s has no column for feature %s", t.name, f.Name())
	}
	query := fmt.Sprintf("SELECT %s, COUNT(*) FROM %s GROUP BY %s", column, t.name, column)
	rows, err := t.adapter.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("counting values of %s on table %s: %v", f.Name(), t.name, err)
	}
	defer rows.Close()
	result := make(map[value.Value]int)
	for rows.Next() {
		v := newScanner(f)
		var count int
		if err = rows.Scan(v, &count); err != nil {
			return nil, fmt.Errorf("scanning count of %s on table %s: %v", f.Name(), t.name, err)
		}
		sv, err := scannedValue(v)
		if err != nil {
			return nil, fmt.Errorf("counting values of %s on table %s: %v", f.Name(), t.name, err)
		}
		if _, err = f.Valid(sv); err != nil {
			return nil, fmt.Errorf("counting values of %s on table %s: %v", f.Name(), t.name, err)
		}
		result[sv] += count
	}
	return result, rows.Err()
}

func newScanner(f feature.Feature) interface{} {
	if _, ok := f.(*feature.ContinuousFeature); ok {
		return &sql.NullFloat64{}
	}
	return &sql.NullString{}
}

func scannedValue(dest interface{}) (value.Value, error) {
	switch d := dest.(type) {
	case *sql.NullFloat64:
		if d.Valid {
			return value.FromInterface(d.Float64)
		}
	case *sql.NullString:
		if d.Valid {
			return value.NewCategorical(d.String), nil
		}
	}
	return value.NewUndefined(), nil
}
