// Package storage is the client's persistent key/value store, the Go
// counterpart of browser local storage.
//
// Values are strings keyed by strings and live in the local_storage table of a
// SQLite file. The schema is created by embedded goose migrations when the
// database is opened with InitDatabase.
//
// Every operation touches a single key and is atomic on its own. Callers that
// need several keys to change together wrap a repository built on a
// transaction (see dbx.WithTx):
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    return storage.NewSQLiteRepository(tx).Delete(ctx, "auth_token")
//	})
//
// Missing keys are reported as common.ErrorNotFound.
package storage
