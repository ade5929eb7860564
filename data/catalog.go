// Package data bundles the restaurant directory and menus into the binary.
package data

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"

	"github.com/yeremiapane/protein-finder/models"
	"github.com/yeremiapane/protein-finder/services"
)

//go:embed index.json menus/*.json
var files embed.FS

// menuFiles is the only place a restaurant id is tied to a menu document.
var menuFiles = map[string]string{
	"chickfila": "menus/chickfila.json",
	"chipotle":  "menus/chipotle.json",
	"panera":    "menus/panera.json",
	"mcdonalds": "menus/mcdonalds.json",
}

// Directory parses index.json.
func Directory() ([]models.Restaurant, error) {
	raw, err := fs.ReadFile(files, "index.json")
	if err != nil {
		return nil, err
	}
	var restaurants []models.Restaurant
	if err := decodeStrict(raw, &restaurants); err != nil {
		return nil, fmt.Errorf("index.json: %w", err)
	}
	return restaurants, nil
}

// Sources returns a loader per restaurant id.
func Sources() map[string]services.MenuSource {
	out := make(map[string]services.MenuSource, len(menuFiles))
	for id, file := range menuFiles {
		out[id] = func() (models.MenuDocument, error) {
			return readMenu(file)
		}
	}
	return out
}

// Catalog loads and validates the bundled catalog. The menuFile named by each
// index entry must agree with the source registered for that id.
func Catalog() (*services.StaticCatalog, error) {
	dir, err := Directory()
	if err != nil {
		return nil, err
	}
	for _, r := range dir {
		file, ok := menuFiles[r.ID]
		if !ok {
			continue
		}
		if path.Base(file) != r.MenuFile {
			return nil, fmt.Errorf("%w: %q lists menu %q but is registered with %q",
				services.ErrInvalidCatalog, r.ID, r.MenuFile, path.Base(file))
		}
	}
	return services.LoadStaticCatalog(dir, Sources())
}

func readMenu(file string) (models.MenuDocument, error) {
	var doc models.MenuDocument
	raw, err := fs.ReadFile(files, file)
	if err != nil {
		return doc, err
	}
	if err := decodeStrict(raw, &doc); err != nil {
		return doc, fmt.Errorf("%s: %w", file, err)
	}
	return doc, nil
}

func decodeStrict(raw []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
