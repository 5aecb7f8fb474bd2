package data

// TableModel is the tabular result of a query.
type TableModel interface {
	RowCount() int
	ColumnCount() int
	ColumnName(column int) string
	ValueAt(row, column int) any
}

// DefaultTableModel is an in-memory TableModel.
type DefaultTableModel struct {
	columns []string
	rows    [][]any
}

// NewTableModel creates a table with the given column names and rows. Rows
// shorter than the column list read as nil in the missing columns.
func NewTableModel(columns []string, rows ...[]any) *DefaultTableModel {
	t := &DefaultTableModel{columns: append([]string(nil), columns...)}
	for _, r := range rows {
		t.rows = append(t.rows, append([]any(nil), r...))
	}
	return t
}

func (t *DefaultTableModel) RowCount() int    { return len(t.rows) }
func (t *DefaultTableModel) ColumnCount() int { return len(t.columns) }

func (t *DefaultTableModel) ColumnName(column int) string {
	if column < 0 || column >= len(t.columns) {
		return ""
	}
	return t.columns[column]
}

func (t *DefaultTableModel) ValueAt(row, column int) any {
	if row < 0 || row >= len(t.rows) {
		return nil
	}
	r := t.rows[row]
	if column < 0 || column >= len(r) {
		return nil
	}
	return r[column]
}

// AddRow appends a row.
func (t *DefaultTableModel) AddRow(values ...any) {
	t.rows = append(t.rows, append([]any(nil), values...))
}

// limitedTableModel exposes at most limit rows of another table.
type limitedTableModel struct {
	TableModel
	limit int
}

// LimitRows returns a view of table that exposes at most limit rows. A
// non-positive limit returns table unchanged.
func LimitRows(table TableModel, limit int) TableModel {
	if limit <= 0 || table.RowCount() <= limit {
		return table
	}
	return &limitedTableModel{TableModel: table, limit: limit}
}

func (t *limitedTableModel) RowCount() int {
	return t.limit
}

func (t *limitedTableModel) ValueAt(row, column int) any {
	if row >= t.limit {
		return nil
	}
	return t.TableModel.ValueAt(row, column)
}
