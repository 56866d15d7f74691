package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/merchco/counterpos/internal/models"
)

// InventoryFile reads and rewrites inventory.json as a whole document.
// Key order of the file is preserved through models.Inventory so that a
// load/save cycle leaves the document's ordering intact.
type InventoryFile struct {
	// Path is the location of inventory.json.
	Path string
}

// NewInventoryFile creates an InventoryFile rooted in dir.
func NewInventoryFile(dir string) *InventoryFile {
	return &InventoryFile{Path: filepath.Join(dir, "inventory.json")}
}

// Load reads the full inventory. An absent file yields an empty
// inventory.
func (f *InventoryFile) Load(ctx context.Context) (*models.Inventory, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.NewInventory(), nil
		}
		return nil, err
	}
	inv := models.NewInventory()
	if err := json.Unmarshal(data, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// Save rewrites the full inventory, pretty-printed with two-space
// indentation and product/size keys in preserved order.
func (f *InventoryFile) Save(ctx context.Context, inv *models.Inventory) error {
	data, err := inv.MarshalJSON()
	if err != nil {
		return err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		return err
	}
	return os.WriteFile(f.Path, out.Bytes(), 0o644)
}
