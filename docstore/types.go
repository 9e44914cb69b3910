// SPDX-License-Identifier: GPL-3.0-only

package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

var (
	ErrNotFound    = errors.New("document not found")
	ErrInvalidPath = errors.New("invalid document path")
)

// Fields are the values of one document.
type Fields map[string]any

type Document struct {
	Path   string `json:"path"`
	Fields Fields `json:"fields"`
}

// Store reads documents by path. A path alternates collection and document
// ids, e.g. sms_prices/US or catalog/short/services/wa-us.
type Store interface {
	GetDocument(ctx context.Context, path string) (Fields, error)
	ListCollection(ctx context.Context, collection string) ([]Document, error)
}

// Writer is implemented by stores that accept documents.
type Writer interface {
	PutDocument(ctx context.Context, path string, fields Fields) error
}

func (f Fields) String(key string) string {
	switch v := f[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	}
	return ""
}

// Float reads numbers stored either as JSON numbers or numeric strings.
func (f Fields) Float(key string) (float64, bool) {
	switch v := f[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		n, err := v.Float64()
		return n, err == nil
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return n, err == nil
	}
	return 0, false
}

func (f Fields) Int(key string) (int, bool) {
	n, ok := f.Float(key)
	return int(n), ok
}

// Bool treats a missing key as fallback.
func (f Fields) Bool(key string, fallback bool) bool {
	switch v := f[key].(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

// splitPath validates p and returns its segments.
func splitPath(p string) ([]string, error) {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil, ErrInvalidPath
	}
	segments := strings.Split(p, "/")
	for _, s := range segments {
		if s == "" {
			return nil, ErrInvalidPath
		}
	}
	return segments, nil
}

// DocumentPath normalizes a document path and returns its collection.
func DocumentPath(p string) (path, collection string, err error) {
	segments, err := splitPath(p)
	if err != nil {
		return "", "", err
	}
	if len(segments)%2 != 0 {
		return "", "", ErrInvalidPath
	}
	return strings.Join(segments, "/"), strings.Join(segments[:len(segments)-1], "/"), nil
}

// CollectionPath normalizes a collection path.
func CollectionPath(p string) (string, error) {
	segments, err := splitPath(p)
	if err != nil {
		return "", err
	}
	if len(segments)%2 != 1 {
		return "", ErrInvalidPath
	}
	return strings.Join(segments, "/"), nil
}

// ID returns the last segment of a document path.
func (d Document) ID() string {
	return d.Path[strings.LastIndex(d.Path, "/")+1:]
}
