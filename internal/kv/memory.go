package kv

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-memdb"
)

const memoryTable = "kv"

type memoryRecord struct {
	Key   string
	Value []byte
}

// Memory is a non-persistent backend. Values live for the life of the process.
type Memory struct {
	db *memdb.MemDB
}

// NewMemory creates an empty in-memory backend.
func NewMemory() (*Memory, error) {
	schema := &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			memoryTable: {
				Name: memoryTable,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "Key"},
					},
				},
			},
		},
	}
	db, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, fmt.Errorf("create memdb: %w", err)
	}
	return &Memory{db: db}, nil
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	txn := m.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(memoryTable, "id", key)
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", key, err)
	}
	if raw == nil {
		return nil, ErrNotFound
	}
	rec := raw.(*memoryRecord)
	out := make([]byte, len(rec.Value))
	copy(out, rec.Value)
	return out, nil
}

func (m *Memory) Put(_ context.Context, key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	txn := m.db.Txn(true)
	if err := txn.Insert(memoryTable, &memoryRecord{Key: key, Value: stored}); err != nil {
		txn.Abort()
		return fmt.Errorf("insert %s: %w", key, err)
	}
	txn.Commit()
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	txn := m.db.Txn(true)
	if _, err := txn.DeleteAll(memoryTable, "id", key); err != nil {
		txn.Abort()
		return fmt.Errorf("delete %s: %w", key, err)
	}
	txn.Commit()
	return nil
}

func (m *Memory) Close() error { return nil }
