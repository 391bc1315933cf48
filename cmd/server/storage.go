package main

import (
	"fmt"

	"github.com/atinyakov/SmileCare/internal/config"
	"github.com/atinyakov/SmileCare/internal/db"
	"github.com/atinyakov/SmileCare/internal/repository"
	"github.com/atinyakov/SmileCare/internal/storage"
)

// openStorage returns the key-value storage selected by the driver option and
// a func that releases it.
func openStorage(o *config.Options) (storage.Storage, func() error, error) {
	noop := func() error { return nil }

	switch o.StorageDriver {
	case config.DriverFile, "":
		fs, err := storage.NewFileStorage(o.StoragePath)
		if err != nil {
			return nil, nil, err
		}
		return fs, noop, nil
	case config.DriverMemory:
		return storage.NewMemoryStorage(), noop, nil
	case config.DriverSQLite:
		conn, err := db.InitSQLite(o.StoragePath)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewSQLStorage(conn, repository.SQLite), conn.Close, nil
	case config.DriverPostgres:
		conn, err := db.InitPostgres(o.DatabaseDSN)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewSQLStorage(conn, repository.Postgres), conn.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", o.StorageDriver)
	}
}
