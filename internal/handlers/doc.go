// Package handlers implements the HTTP API layer of docsql.
//
// Handlers parse the request, delegate to the query service and map errors
// to status codes. Routes are registered through v1.RegisterHandlers.
//
// # API Endpoints
//
//	┌────────┬────────────────────────────┬──────────────────────────────────────┐
//	│ Method │ Endpoint                   │ Description                          │
//	├────────┼────────────────────────────┼──────────────────────────────────────┤
//	│ GET    │ /tables                    │ List tables and their fields         │
//	│ POST   │ /tables/{table}/translate  │ Translate a find request into SQL    │
//	│ POST   │ /tables/{table}/find       │ Translate and run a find request     │
//	└────────┴────────────────────────────┴──────────────────────────────────────┘
//
// # Request Body
//
// Both POST endpoints accept the same optional members:
//
//	{
//	    "filter":     {"$or": [{"age": 1}, {"name": "john"}]},
//	    "projection": {"name": 1, "age": 1}
//	}
//
// The body is decoded with key order preserved, so the projection columns
// come out in the order they were written. YAML bodies are accepted too.
//
// POST /tables/{table}/translate responds with:
//
//	{ "sql": "SELECT name, age FROM users WHERE age = 1 OR name = 'john';" }
//
// POST /tables/{table}/find responds with the statement and its rows:
//
//	{
//	    "sql": "SELECT name FROM users WHERE age > 18;",
//	    "columns": ["name"],
//	    "rows": [["john"], ["alice"]],
//	    "total": 2
//	}
//
// With ?format=xlsx the rows are returned as a spreadsheet attachment.
//
// # Error Handling
//
//	┌─────────────────────────────┬────────┬──────────────────────────────────┐
//	│ Error Type                  │ Status │ When                             │
//	├─────────────────────────────┼────────┼──────────────────────────────────┤
//	│ Undecodable body            │ 400    │ Body is not a JSON/YAML object   │
//	│ Filter/projection errors    │ 400    │ errors.IsQueryError(err)         │
//	│ ResourceNotFoundError       │ 404    │ Table is not in the catalog      │
//	│ MaxBytesError               │ 413    │ Body exceeds 1MiB                │
//	│ Internal error              │ 500    │ Storage failures                 │
//	└─────────────────────────────┴────────┴──────────────────────────────────┘
//
// All errors use the same body:
//
//	{ "error": "error message" }
package handlers
