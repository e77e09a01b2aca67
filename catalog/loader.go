package catalog

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/giygas/medlabel-api/catalog/entities"
	"github.com/giygas/medlabel-api/logging"
	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk YAML shape:
//
//	medicines:
//	  - name: Paracetamol
//	    requiredIngredients: [Acetaminophen]
//	    commonDosages: [500mg]
type catalogFile struct {
	Medicines []entities.CatalogEntry `yaml:"medicines"`
}

// Parse reads a YAML catalog document. Unknown fields are rejected.
func Parse(r io.Reader) (*Catalog, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var file catalogFile
	if err := decoder.Decode(&file); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("catalog document is empty")
		}
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	if len(file.Medicines) == 0 {
		return nil, fmt.Errorf("catalog document has no medicines")
	}

	return New(file.Medicines)
}

// LoadFile reads a YAML catalog from path.
func LoadFile(path string) (*Catalog, error) {
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	c, err := Parse(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("catalog file %s: %w", path, err)
	}

	logging.Info("Catalog loaded from file", "path", path, "entries", c.Len())
	return c, nil
}

// Load returns the catalog from path, or the built-in table when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		c := Default()
		logging.Debug("Using built-in catalog", "entries", c.Len())
		return c, nil
	}
	return LoadFile(path)
}
