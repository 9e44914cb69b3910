// SPDX-License-Identifier: GPL-3.0-only

package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"numdash-server/db"
	"numdash-server/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore keeps documents in the documents table.
type GormStore struct {
	DB *gorm.DB
}

// Default returns a store over the shared database connection.
func Default() *GormStore {
	return &GormStore{DB: db.Conn}
}

func (s *GormStore) GetDocument(ctx context.Context, p string) (Fields, error) {
	path, _, err := DocumentPath(p)
	if err != nil {
		return nil, err
	}
	var doc models.Document
	if err := s.DB.WithContext(ctx).Where("path = ?", path).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch document %s: %w", path, err)
	}
	return decodeFields(doc)
}

func (s *GormStore) ListCollection(ctx context.Context, c string) ([]Document, error) {
	collection, err := CollectionPath(c)
	if err != nil {
		return nil, err
	}
	var rows []models.Document
	if err := s.DB.WithContext(ctx).Where("collection = ?", collection).Order("path").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list collection %s: %w", collection, err)
	}
	docs := make([]Document, 0, len(rows))
	for _, row := range rows {
		fields, err := decodeFields(row)
		if err != nil {
			return nil, err
		}
		docs = append(docs, Document{Path: row.Path, Fields: fields})
	}
	return docs, nil
}

func (s *GormStore) PutDocument(ctx context.Context, p string, fields Fields) error {
	path, collection, err := DocumentPath(p)
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to encode document %s: %w", path, err)
	}
	doc := models.Document{Path: path, Collection: collection, Fields: string(encoded)}
	return s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "path"}},
		DoUpdates: clause.AssignmentColumns([]string{"fields", "updated_at"}),
	}).Create(&doc).Error
}

func decodeFields(doc models.Document) (Fields, error) {
	var fields Fields
	if err := json.Unmarshal([]byte(doc.Fields), &fields); err != nil {
		return nil, fmt.Errorf("corrupt document %s: %w", doc.Path, err)
	}
	if fields == nil {
		fields = Fields{}
	}
	return fields, nil
}
