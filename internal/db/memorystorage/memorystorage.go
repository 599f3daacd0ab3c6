package memorystorage

import (
	"github.com/patric-chuzhbe/nexusweb/internal/db/jsondb"
)

// MemoryStorage is the JSON store without a backing file. Everything is lost on exit.
type MemoryStorage struct {
	*jsondb.JSONDB
}

func New() (*MemoryStorage, error) {
	db, err := jsondb.New("")
	if err != nil {
		return nil, err
	}

	return &MemoryStorage{JSONDB: db}, nil
}
