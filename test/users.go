package test

import (
	"context"
	"database/sql"

	"github.com/kubev2v/docsql/pkg/schema"
)

// UsersTable is not named "user": that is a reserved word in DuckDB.
const UsersTable = "users"

type User struct {
	ID         int
	Name       string
	Age        float64
	IsEmployed bool
}

var UserSchema = schema.MustNew(
	schema.Field{Name: "_id", Kind: schema.Number},
	schema.Field{Name: "name", Kind: schema.String},
	schema.Field{Name: "age", Kind: schema.Number},
	schema.Field{Name: "isEmployed", Kind: schema.Boolean},
)

var Users = []User{
	{1, "john", 1, false},
	{2, "john", 19, true},
	{3, "john", 17, false},
	{4, "alice", 21, true},
	{5, "bob", 2, false},
	{6, "b", 3, true},
	{7, "carol", 65, false},
	{8, "dave", 40, true},
}

// CreateUsers creates the users table.
func CreateUsers(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			_id DOUBLE,
			name VARCHAR,
			age DOUBLE,
			isEmployed BOOLEAN
		)
	`)
	return err
}

// InsertUsers inserts all test users into the database.
func InsertUsers(ctx context.Context, db *sql.DB) error {
	for _, u := range Users {
		_, err := db.ExecContext(ctx, `
			INSERT INTO users (_id, name, age, isEmployed)
			VALUES (?, ?, ?, ?)
		`, u.ID, u.Name, u.Age, u.IsEmployed)
		if err != nil {
			return err
		}
	}
	return nil
}
