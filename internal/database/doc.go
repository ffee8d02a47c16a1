// Package database provides the data access layer for the application.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup and migrations
//	└── users/           # User directory (lookup, creation, updates)
//
// # Usage
//
//	db, err := database.NewDatabase("./gatekeeper.db")
//	directory := users.NewRepository(db.DB)
//	user, err := directory.FindByIdentifier(ctx, "bob@example.com")
//
// The users.Repository implements auth.UserDirectory. Lookups distinguish
// users.ErrNotFound from every other failure so callers can tell a missing
// record from a broken query.
package database
