package database

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/username/policyfeed/src/logger"
	"github.com/username/policyfeed/src/models"
	"github.com/username/policyfeed/src/utils"
)

var ErrUnknownCollection = errors.New("unknown broker collection")

// DocumentStore reads and writes the raw broker collections.
type DocumentStore struct {
	db *sql.DB
}

func NewDocumentStore(db *sql.DB) *DocumentStore {
	return &DocumentStore{db: db}
}

func tableFor(source models.Source) (string, error) {
	table, ok := collectionTables[source]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownCollection, source)
	}
	return table, nil
}

// Ping checks the connection is usable.
func (s *DocumentStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *DocumentStore) CountDocuments(ctx context.Context, source models.Source) (int, error) {
	table, err := tableFor(source)
	if err != nil {
		return 0, err
	}
	var count int
	if err := s.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting %s documents: %w", source, err)
	}
	return count, nil
}

// FetchDocuments returns every stored document of a collection in insertion
// order. The result is never nil.
func (s *DocumentStore) FetchDocuments(ctx context.Context, source models.Source) ([]models.RawRecord, error) {
	table, err := tableFor(source)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("SELECT id, document FROM %s ORDER BY rowid", table))
	if err != nil {
		return nil, fmt.Errorf("querying %s documents: %w", source, err)
	}
	defer rows.Close()

	docs := []models.RawRecord{}
	for rows.Next() {
		var id, body string
		if err := rows.Scan(&id, &body); err != nil {
			return nil, fmt.Errorf("scanning %s document: %w", source, err)
		}
		doc, err := decodeDocument(body)
		if err != nil {
			logger.L.Warn("Skipping stored document with invalid JSON", "source", source, "id", id, "error", err)
			continue
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s documents: %w", source, err)
	}
	return docs, nil
}

// InsertDocuments upserts documents by _id. Documents without one are given
// a generated id.
func (s *DocumentStore) InsertDocuments(ctx context.Context, source models.Source, docs []models.RawRecord) (int, error) {
	table, err := tableFor(source)
	if err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("error beginning database transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		`INSERT INTO %s (id, document) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET document = excluded.document, updated_at = CURRENT_TIMESTAMP`, table))
	if err != nil {
		return 0, fmt.Errorf("error preparing insert statement: %w", err)
	}
	defer stmt.Close()

	for _, doc := range docs {
		id := utils.SafeString(doc["_id"])
		if id == "" {
			id = uuid.NewString()
			doc["_id"] = id
		}
		body, err := json.Marshal(doc)
		if err != nil {
			return 0, fmt.Errorf("encoding %s document %s: %w", source, id, err)
		}
		if _, err := stmt.ExecContext(ctx, id, string(body)); err != nil {
			return 0, fmt.Errorf("inserting %s document %s: %w", source, id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("error committing documents: %w", err)
	}
	logger.L.Info("Stored broker documents", "source", source, "count", len(docs))
	return len(docs), nil
}

// DeleteDocuments empties a collection.
func (s *DocumentStore) DeleteDocuments(ctx context.Context, source models.Source) error {
	table, err := tableFor(source)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", table)); err != nil {
		return fmt.Errorf("deleting %s documents: %w", source, err)
	}
	return nil
}

func decodeDocument(body string) (models.RawRecord, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(body)))
	dec.UseNumber()
	var doc models.RawRecord
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = models.RawRecord{}
	}
	return doc, nil
}
