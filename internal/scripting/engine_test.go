package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const itemsLua = `-- Automatically generated file: Items

return {
    [4096] = {id=4096,en="Fire Crystal",ja="炎のクリスタル",category="General",type=8,stack=12},
    [16448] = {id=16448,en="Bronze Dagger",ja="ブロンズダガー",category="Weapon",type=4,skill=2,slots=3},
    [12288] = {id=12288,en="Shield",category="Armor",type=5,slots=2},
    [65535] = {id=65535,category="General"},
    [70000] = {id=70000,en="Too Big"},
    [5] = "not a table",
}, {"id", "en", "ja", "category", "type", "skill", "slots"}
`

func writeLua(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "items.lua")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadItems(t *testing.T) {
	e := NewEngine(zap.NewNop())
	defer e.Close()

	items, err := e.LoadItems(writeLua(t, itemsLua))
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, uint16(4096), items[0].ItemID)
	assert.Equal(t, "炎のクリスタル", items[0].NameJA)
	assert.Equal(t, 8, items[0].Type)
	assert.Nil(t, items[0].Skill)

	assert.Equal(t, uint16(12288), items[1].ItemID)
	assert.Equal(t, "Shield", items[1].NameJA)
	require.NotNil(t, items[1].Slots)
	assert.Equal(t, 2, *items[1].Slots)

	dagger := items[2]
	assert.Equal(t, "Weapon", dagger.Category)
	require.NotNil(t, dagger.Skill)
	assert.Equal(t, 2, *dagger.Skill)
}

func TestLoadItems_GlobalTable(t *testing.T) {
	e := NewEngine(zap.NewNop())
	defer e.Close()

	items, err := e.LoadItems(writeLua(t, `items = { {id=640,en="Copper Ore",category="General",type=1} }`))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, uint16(640), items[0].ItemID)
}

func TestLoadItems_Errors(t *testing.T) {
	e := NewEngine(zap.NewNop())
	defer e.Close()

	_, err := e.LoadItems(writeLua(t, `return 42`))
	assert.Error(t, err)

	_, err = e.LoadItems(writeLua(t, `return {`))
	assert.Error(t, err)

	_, err = e.LoadItems(filepath.Join(t.TempDir(), "missing.lua"))
	assert.Error(t, err)
}
