package v1

// Field describes one column of a table.
type Field struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type Table struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

type TableList struct {
	Tables []Table `json:"tables"`
}

// QueryRequest is the body of the translate and find endpoints.
// Both members are optional.
type QueryRequest struct {
	Filter     any `json:"filter,omitempty"`
	Projection any `json:"projection,omitempty"`
}

type TranslateResponse struct {
	Sql string `json:"sql"`
}

type FindResponse struct {
	Sql     string   `json:"sql"`
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
	Total   int      `json:"total"`
}

type Error struct {
	Error string `json:"error"`
}

type FindTableParamsFormat string

const (
	FindTableParamsFormatJson FindTableParamsFormat = "json"
	FindTableParamsFormatXlsx FindTableParamsFormat = "xlsx"
)

// FindTableParams defines parameters for FindTable.
type FindTableParams struct {
	Format *FindTableParamsFormat `form:"format,omitempty" json:"format,omitempty"`
}
