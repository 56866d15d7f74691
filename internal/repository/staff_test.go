package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaffFile_GetAll(t *testing.T) {
	dir := t.TempDir()
	doc := `{"amy":{"password":"pw1","name":"小美"},"bob":{"password":"pw2","name":"小明"}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "staff.json"), []byte(doc), 0o644))

	repo := NewStaffFile(dir)
	staff, err := repo.GetAll(context.Background())
	require.NoError(t, err)

	require.Len(t, staff, 2)
	assert.Equal(t, "pw1", staff["amy"].Password)
	assert.Equal(t, "小美", staff["amy"].Name)
	assert.Equal(t, "小明", staff["bob"].Name)
}

func TestStaffFile_AbsentFile(t *testing.T) {
	repo := NewStaffFile(t.TempDir())
	staff, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, staff)
}

func TestStaffFile_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "staff.json"), []byte("not json"), 0o644))

	repo := NewStaffFile(dir)
	_, err := repo.GetAll(context.Background())
	assert.Error(t, err)
}
