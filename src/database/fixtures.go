package database

import (
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/username/policyfeed/src/models"
	"github.com/username/policyfeed/src/security/validation"
)

// Fixtures holds raw documents per broker, as read from a seed file.
type Fixtures map[models.Source][]models.RawRecord

// LoadFixtures decodes a YAML (or JSON) document of the form
//
//	broker1: [ {...}, ... ]
//	broker2: [ {...}, ... ]
func LoadFixtures(r io.Reader) (Fixtures, error) {
	var raw map[string][]map[string]interface{}
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if err == io.EOF {
			return Fixtures{}, nil
		}
		return nil, fmt.Errorf("decoding fixtures: %w", err)
	}

	fixtures := Fixtures{}
	for key, docs := range raw {
		source := models.Source(key)
		if !source.IsValid() {
			return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, key)
		}
		records := make([]models.RawRecord, 0, len(docs))
		for _, d := range docs {
			if d == nil {
				d = map[string]interface{}{}
			}
			records = append(records, models.RawRecord(d))
		}
		fixtures[source] = records
	}
	return fixtures, nil
}

// LoadFixturesFile reads fixtures from path after checking the content is text.
func LoadFixturesFile(path string) (Fixtures, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening fixtures %s: %w", path, err)
	}
	defer f.Close()

	if _, err := validation.ValidateFixtureContent(f); err != nil {
		return nil, err
	}
	return LoadFixtures(f)
}

// Seed writes every fixture collection into the store, optionally clearing
// the collections first. It returns the number of documents written per broker.
func Seed(ctx context.Context, store *DocumentStore, fixtures Fixtures, reset bool) (map[models.Source]int, error) {
	written := map[models.Source]int{}
	for _, source := range models.AllSources {
		docs, ok := fixtures[source]
		if reset {
			if err := store.DeleteDocuments(ctx, source); err != nil {
				return written, err
			}
		}
		if !ok {
			continue
		}
		n, err := store.InsertDocuments(ctx, source, docs)
		if err != nil {
			return written, err
		}
		written[source] = n
	}
	return written, nil
}
