// Package jsondb keeps the client storage in memory and mirrors it to a JSON
// file after every change, so sessions survive a server restart.
package jsondb

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/thoas/go-funk"

	"github.com/patric-chuzhbe/nexusweb/internal/db/storage"
)

type JSONDB struct {
	fileName string
	mu       sync.RWMutex
	Cache    CacheStruct
}

type CacheStruct struct {
	Namespaces map[string]map[string]string
}

func initDBFile(fileName string) error {
	dbFile, err := os.OpenFile(fileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(dbFile, `{
	"Namespaces": {}
}`)
	if err != nil {
		return err
	}
	return dbFile.Close()
}

// writeToJSONFile replaces the file atomically through a temporary sibling.
func writeToJSONFile(fileName string, cache interface{}) error {
	jsonData, err := json.MarshalIndent(cache, "", "\t")
	if err != nil {
		return fmt.Errorf("error marshaling JSON: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(fileName), filepath.Base(fileName)+".*.tmp")
	if err != nil {
		return fmt.Errorf("error opening file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(jsonData); err != nil {
		tmp.Close()
		return fmt.Errorf("error writing to file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("error closing file: %w", err)
	}

	return os.Rename(tmp.Name(), fileName)
}

func parseJSONFile(fileName string, cache *CacheStruct) error {
	file, err := os.Open(fileName)
	if err != nil {
		return err
	}
	defer file.Close()

	return json.NewDecoder(file).Decode(cache)
}

// New loads fileName, creating it when missing. An empty fileName gives a
// purely in-memory store.
func New(fileName string) (*JSONDB, error) {
	db := &JSONDB{
		fileName: fileName,
		Cache:    CacheStruct{Namespaces: map[string]map[string]string{}},
	}
	if fileName == "" {
		return db, nil
	}

	err := parseJSONFile(db.fileName, &db.Cache)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("in internal/db/jsondb/jsondb.go/New(): error while `parseJSONFile()` calling: %w", err)
		}
		if err := initDBFile(fileName); err != nil {
			return nil, fmt.Errorf("in internal/db/jsondb/jsondb.go/New(): error while `initDBFile()` calling: %w", err)
		}
		if err := parseJSONFile(db.fileName, &db.Cache); err != nil {
			return nil, fmt.Errorf("in internal/db/jsondb/jsondb.go/New(): error while `parseJSONFile()` calling: %w", err)
		}
	}
	if db.Cache.Namespaces == nil {
		db.Cache.Namespaces = map[string]map[string]string{}
	}

	return db, nil
}

// persist must be called with mu held.
func (db *JSONDB) persist() error {
	if db.fileName == "" {
		return nil
	}
	if err := writeToJSONFile(db.fileName, db.Cache); err != nil {
		return fmt.Errorf("in internal/db/jsondb/jsondb.go/persist(): error while `writeToJSONFile()` calling: %w", err)
	}

	return nil
}

func (db *JSONDB) GetItem(ctx context.Context, namespace, key string) (string, bool, error) {
	if namespace == "" {
		return "", false, storage.ErrEmptyNamespace
	}
	db.mu.RLock()
	defer db.mu.RUnlock()

	value, found := db.Cache.Namespaces[namespace][key]

	return value, found, nil
}

func (db *JSONDB) SetItem(ctx context.Context, namespace, key, value string) error {
	if namespace == "" {
		return storage.ErrEmptyNamespace
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	items, ok := db.Cache.Namespaces[namespace]
	if !ok {
		items = map[string]string{}
		db.Cache.Namespaces[namespace] = items
	}
	items[key] = value

	return db.persist()
}

func (db *JSONDB) RemoveItem(ctx context.Context, namespace, key string) error {
	if namespace == "" {
		return storage.ErrEmptyNamespace
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	items, ok := db.Cache.Namespaces[namespace]
	if !ok {
		return nil
	}
	if _, ok := items[key]; !ok {
		return nil
	}
	delete(items, key)
	if len(items) == 0 {
		delete(db.Cache.Namespaces, namespace)
	}

	return db.persist()
}

// Namespaces lists the namespaces that hold at least one item, sorted.
func (db *JSONDB) Namespaces() []string {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if len(db.Cache.Namespaces) == 0 {
		return []string{}
	}
	namespaces := funk.Keys(db.Cache.Namespaces).([]string)
	sort.Strings(namespaces)

	return namespaces
}

func (db *JSONDB) Ping(ctx context.Context) error {
	return nil
}

func (db *JSONDB) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	return db.persist()
}
