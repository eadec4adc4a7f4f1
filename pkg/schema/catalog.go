package schema

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	srvErrors "github.com/kubev2v/docsql/pkg/errors"
)

// Table is a named schema. Rows optionally seed the table when it is
// materialized by the store.
type Table struct {
	Name   string
	Schema *Schema
	Rows   []map[string]any
}

// Catalog holds the tables known to the translator, in declaration order.
type Catalog struct {
	tables []Table
	index  map[string]int
}

type catalogFile struct {
	Tables []tableDef `yaml:"tables" validate:"required,min=1,dive"`
}

type tableDef struct {
	Name   string           `yaml:"name" validate:"required"`
	Fields []fieldDef       `yaml:"fields" validate:"required,min=1,dive"`
	Rows   []map[string]any `yaml:"rows"`
}

type fieldDef struct {
	Name string `yaml:"name" validate:"required"`
	Type string `yaml:"type" validate:"required,oneof=string number boolean"`
}

// NewCatalog builds a catalog from already constructed tables.
func NewCatalog(tables ...Table) (*Catalog, error) {
	c := &Catalog{index: make(map[string]int, len(tables))}
	for _, t := range tables {
		if t.Name == "" {
			return nil, fmt.Errorf("table name cannot be empty")
		}
		if t.Schema == nil {
			return nil, fmt.Errorf("table %q has no schema", t.Name)
		}
		if _, found := c.index[t.Name]; found {
			return nil, fmt.Errorf("duplicate table %q", t.Name)
		}
		for i, row := range t.Rows {
			for field, value := range row {
				if err := t.Schema.Check(field, value); err != nil {
					return nil, fmt.Errorf("table %q row %d: %w", t.Name, i, err)
				}
			}
		}
		c.index[t.Name] = len(c.tables)
		c.tables = append(c.tables, t)
	}
	return c, nil
}

// LoadCatalog reads a YAML catalog file.
//
//	tables:
//	  - name: user
//	    fields:
//	      - name: name
//	        type: string
//	      - name: age
//	        type: number
//	    rows:
//	      - {name: john, age: 19}
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	return ParseCatalog(data)
}

// ParseCatalog parses YAML (or JSON) catalog content.
func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	if err := validator.New().Struct(file); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	tables := make([]Table, 0, len(file.Tables))
	for _, td := range file.Tables {
		fields := make([]Field, 0, len(td.Fields))
		for _, fd := range td.Fields {
			kind, err := ParseKind(fd.Type)
			if err != nil {
				return nil, err
			}
			fields = append(fields, Field{Name: fd.Name, Kind: kind})
		}

		s, err := New(fields...)
		if err != nil {
			return nil, fmt.Errorf("table %q: %w", td.Name, err)
		}
		tables = append(tables, Table{Name: td.Name, Schema: s, Rows: td.Rows})
	}

	return NewCatalog(tables...)
}

// Tables returns the tables in declaration order.
func (c *Catalog) Tables() []Table {
	out := make([]Table, len(c.tables))
	copy(out, c.tables)
	return out
}

// Lookup returns the schema of the named table.
func (c *Catalog) Lookup(name string) (*Schema, error) {
	t, err := c.Table(name)
	if err != nil {
		return nil, err
	}
	return t.Schema, nil
}

// Table returns the named table.
func (c *Catalog) Table(name string) (Table, error) {
	i, ok := c.index[name]
	if !ok {
		return Table{}, srvErrors.NewTableNotFoundError(name)
	}
	return c.tables[i], nil
}
