package world

import (
	"encoding/json"
	"fmt"
	"os"
)

// Document is the on-disk level format: optional config overrides plus the
// authored object list. Pointer fields distinguish "omitted" from zero so a
// document can set padding to 0 explicitly.
type Document struct {
	Name      string   `json:"name,omitempty"`
	Padding   *float64 `json:"padding,omitempty"`
	MoveSpeed *float64 `json:"moveSpeed,omitempty"`
	SpawnX    *float64 `json:"spawnX,omitempty"`
	SpawnZ    *float64 `json:"spawnZ,omitempty"`
	Objects   []Object `json:"objects"`
}

// Config folds the document overrides over the default configuration.
func (doc Document) Config() Config {
	cfg := DefaultConfig()
	if doc.Padding != nil {
		cfg.Padding = *doc.Padding
	}
	if doc.MoveSpeed != nil {
		cfg.MoveSpeed = *doc.MoveSpeed
	}
	if doc.SpawnX != nil {
		cfg.SpawnX = *doc.SpawnX
	}
	if doc.SpawnZ != nil {
		cfg.SpawnZ = *doc.SpawnZ
	}
	return cfg.normalized()
}

// LoadDocument reads and decodes a level document from disk.
func LoadDocument(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read level document: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("decode level document %s: %w", path, err)
	}
	return doc, nil
}

// LoadLevel builds a Level from a document on disk.
func LoadLevel(path string, deps Deps) (*Level, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}
	level, err := NewLevel(doc.Config(), doc.Objects, deps)
	if err != nil {
		return nil, fmt.Errorf("load level %s: %w", path, err)
	}
	return level, nil
}
