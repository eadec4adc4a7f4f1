package models

// ResultSet is the outcome of running a translated statement.
type ResultSet struct {
	Statement string
	Columns   []string
	Rows      [][]any
}

func (r ResultSet) Len() int {
	return len(r.Rows)
}

// Query is a find request against one table.
type Query struct {
	Table      string
	Filter     any
	Projection any
}
