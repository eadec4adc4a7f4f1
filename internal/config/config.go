package config

import (
	"github.com/creasty/defaults"
)

type Configuration struct {
	Server    Server
	Catalog   Catalog
	Store     Store
	LogLevel  string `default:"info"`
	LogFormat string `default:"console"`
}

type Server struct {
	HTTPPort      int    `default:"8000"`
	ServerMode    string `default:"dev"`
	StaticsFolder string
}

// Catalog points at the YAML file declaring the queryable tables.
type Catalog struct {
	Path string
}

type Store struct {
	// Path of the DuckDB file. ":memory:" keeps everything in memory.
	Path    string `default:":memory:"`
	Workers int    `default:"4"`
	// Seed materializes the catalog tables and their rows at startup.
	Seed bool `default:"true"`
}

func NewConfigurationWithOptionsAndDefaults() *Configuration {
	c := &Configuration{}
	if err := defaults.Set(c); err != nil {
		panic(err)
	}
	return c
}
