package modelstore

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"io"

	yaml "sigs.k8s.io/yaml/goyaml.v3"

	"github.com/SukarnBharadwaj/Krishi-Mitra/internal/domain/pipeline"
)

// Provider decodes an artifact document in one serialization format
type Provider interface {
	Name() string
	Decode(data []byte) (*pipeline.Document, error)
}

// DefaultProviders returns the formats tried in order: gob first, then YAML/JSON
func DefaultProviders() []Provider {
	return []Provider{GobProvider{}, YAMLProvider{}}
}

// GobProvider reads the compact binary artifact written by EncodeGob
type GobProvider struct{}

// Name implements Provider
func (GobProvider) Name() string { return "gob" }

// Decode implements Provider
func (GobProvider) Decode(data []byte) (*pipeline.Document, error) {
	var doc pipeline.Document
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		return nil, fmt.Errorf("gob decode: %w", err)
	}
	return &doc, nil
}

// YAMLProvider reads YAML documents. JSON is valid YAML, so exported JSON
// artifacts load here too. Scalars follow YAML 1.2, so column names such as
// N, y or no stay strings without quoting.
type YAMLProvider struct{}

// Name implements Provider
func (YAMLProvider) Name() string { return "yaml" }

// Decode implements Provider
func (YAMLProvider) Decode(data []byte) (*pipeline.Document, error) {
	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("yaml decode: %w", err)
	}

	raw, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("yaml decode: %w", err)
	}

	var doc pipeline.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("yaml decode: %w", err)
	}
	return &doc, nil
}

// EncodeGob writes a document in the primary binary format
func EncodeGob(w io.Writer, doc *pipeline.Document) error {
	if err := gob.NewEncoder(w).Encode(doc); err != nil {
		return fmt.Errorf("gob encode: %w", err)
	}
	return nil
}
