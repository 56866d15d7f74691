package repository

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/merchco/counterpos/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const inventoryDoc = `{
  "帽T": {
    "name": "帽T",
    "category": "衣物",
    "price": 500,
    "styles": {
      "M": {
        "center": 10
      },
      "S": {
        "center": 2
      }
    }
  },
  "Shirt": {
    "name": "Shirt",
    "price": 300,
    "styles": {
      "L": {
        "center": 1
      }
    }
  }
}`

func TestInventoryFile_LoadSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inventory.json")
	require.NoError(t, os.WriteFile(path, []byte(inventoryDoc), 0o644))

	repo := NewInventoryFile(dir)
	inv, err := repo.Load(context.Background())
	require.NoError(t, err)

	require.Equal(t, []string{"帽T", "Shirt"}, inv.Keys())
	require.NoError(t, repo.Save(context.Background(), inv))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, inventoryDoc, string(data), "save must reproduce the loaded document")
}

func TestInventoryFile_SavePersistsMutation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inventory.json")
	require.NoError(t, os.WriteFile(path, []byte(inventoryDoc), 0o644))

	repo := NewInventoryFile(dir)
	ctx := context.Background()

	inv, err := repo.Load(ctx)
	require.NoError(t, err)
	p, ok := inv.Get("帽T")
	require.True(t, ok)
	stock, ok := p.Style("M")
	require.True(t, ok)
	stock.Center -= 3
	require.NoError(t, repo.Save(ctx, inv))

	reloaded, err := repo.Load(ctx)
	require.NoError(t, err)
	p2, _ := reloaded.Get("帽T")
	stock2, _ := p2.Style("M")
	assert.Equal(t, 7, stock2.Center)
}

func TestInventoryFile_AbsentFile(t *testing.T) {
	repo := NewInventoryFile(t.TempDir())
	inv, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Zero(t, inv.Len())
}

func TestInventoryFile_SaveDoesNotEscapeUnicode(t *testing.T) {
	dir := t.TempDir()
	repo := NewInventoryFile(dir)

	inv := models.NewInventory()
	p := &models.Product{Name: "帽T", Price: 500}
	p.SetStyle("M", &models.StyleStock{Center: 10})
	inv.Set("帽T", p)
	require.NoError(t, repo.Save(context.Background(), inv))

	data, err := os.ReadFile(filepath.Join(dir, "inventory.json"))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "帽T"), "chinese keys must stay readable: %s", data)
}
