package scripting

import (
	"fmt"
	"sort"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/vanatools/vanainv/internal/data"
)

// Engine wraps a gopher-lua VM used to evaluate Windower resource files.
// Single-goroutine access only.
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua VM without the standard libraries; resource files
// are plain table constructors and need none.
func NewEngine(log *zap.Logger) *Engine {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: true,
	})
	return &Engine{vm: vm, log: log}
}

func (e *Engine) Close() {
	e.vm.Close()
}

// LoadItems evaluates a Windower items.lua and returns the entries that carry
// at least one name, ordered by id. The file is expected to return the item
// table as its first value; a global "items" table is accepted too.
func (e *Engine) LoadItems(path string) ([]data.ItemInfo, error) {
	top := e.vm.GetTop()
	if err := e.vm.DoFile(path); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	defer e.vm.SetTop(top)

	var tbl *lua.LTable
	for i := top + 1; i <= e.vm.GetTop(); i++ {
		if t, ok := e.vm.Get(i).(*lua.LTable); ok {
			tbl = t
			break
		}
	}
	if tbl == nil {
		if t, ok := e.vm.GetGlobal("items").(*lua.LTable); ok {
			tbl = t
		}
	}
	if tbl == nil {
		return nil, fmt.Errorf("load %s: no item table returned", path)
	}

	var (
		items   []data.ItemInfo
		skipped int
	)
	tbl.ForEach(func(k, v lua.LValue) {
		entry, ok := v.(*lua.LTable)
		if !ok {
			skipped++
			return
		}
		info, ok := itemFromTable(k, entry)
		if !ok {
			skipped++
			return
		}
		items = append(items, info)
	})
	sort.Slice(items, func(i, j int) bool { return items[i].ItemID < items[j].ItemID })

	e.log.Debug("items.lua evaluated",
		zap.String("file", path),
		zap.Int("items", len(items)),
		zap.Int("skipped", skipped),
	)
	return items, nil
}

func itemFromTable(key lua.LValue, t *lua.LTable) (data.ItemInfo, bool) {
	id, ok := intField(t, "id")
	if !ok {
		n, isNum := key.(lua.LNumber)
		if !isNum {
			return data.ItemInfo{}, false
		}
		id = int(n)
	}
	if id <= 0 || id > 0xFFFF {
		return data.ItemInfo{}, false
	}

	en := stringField(t, "en")
	ja := stringField(t, "ja")
	if en == "" && ja == "" {
		return data.ItemInfo{}, false
	}
	if ja == "" {
		ja = en
	}

	info := data.ItemInfo{
		ItemID:   uint16(id),
		NameJA:   ja,
		NameEN:   en,
		Category: stringField(t, "category"),
	}
	if v, ok := intField(t, "type"); ok {
		info.Type = v
	}
	if v, ok := intField(t, "skill"); ok {
		info.Skill = &v
	}
	if v, ok := intField(t, "slots"); ok {
		info.Slots = &v
	}
	return info, true
}

func stringField(t *lua.LTable, name string) string {
	if s, ok := t.RawGetString(name).(lua.LString); ok {
		return string(s)
	}
	return ""
}

func intField(t *lua.LTable, name string) (int, bool) {
	if n, ok := t.RawGetString(name).(lua.LNumber); ok {
		return int(n), true
	}
	return 0, false
}
