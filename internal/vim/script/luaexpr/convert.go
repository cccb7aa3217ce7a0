package luaexpr

import (
	"math"
	"sort"
	"strconv"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/vimcore/internal/vim/script"
)

// toValue converts a Lua value to a script value.
func toValue(lv lua.LValue) script.Value {
	return toValueWithVisited(lv, make(map[*lua.LTable]bool))
}

func toValueWithVisited(lv lua.LValue, visited map[*lua.LTable]bool) script.Value {
	if lv == nil {
		return script.Nil{}
	}

	switch v := lv.(type) {
	case *lua.LNilType:
		return script.Nil{}
	case lua.LBool:
		return script.Bool(v)
	case lua.LNumber:
		return numberValue(float64(v))
	case lua.LString:
		return script.String(v)
	case *lua.LTable:
		if visited[v] {
			// Self-referencing tables stop here.
			return script.Opaque{TypeName: "recursive table"}
		}
		visited[v] = true
		defer delete(visited, v)
		return tableToValue(v, visited)
	case *lua.LFunction:
		return script.Func{Name: functionName(v)}
	default:
		return script.Opaque{TypeName: lv.Type().String()}
	}
}

// numberValue maps integral numbers that fit in an int64 to Number.
func numberValue(f float64) script.Value {
	if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
		return script.Number(int64(f))
	}
	return script.Float(f)
}

// tableToValue converts a table with contiguous integer keys from 1 to a
// List and any other non-empty table to a Dict with sorted keys. An empty
// table is an empty List.
func tableToValue(t *lua.LTable, visited map[*lua.LTable]bool) script.Value {
	isArray := true
	maxN, count := 0, 0
	t.ForEach(func(k, _ lua.LValue) {
		count++
		if kn, ok := k.(lua.LNumber); ok {
			n := int(kn)
			if float64(n) == float64(kn) && n > 0 {
				if n > maxN {
					maxN = n
				}
				return
			}
		}
		isArray = false
	})

	if isArray && count == maxN {
		list := make(script.List, maxN)
		for i := 1; i <= maxN; i++ {
			list[i-1] = toValueWithVisited(t.RawGetInt(i), visited)
		}
		return list
	}

	entries := make(map[string]lua.LValue, count)
	t.ForEach(func(k, v lua.LValue) {
		entries[keyString(k)] = v
	})
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	d := script.NewDict()
	for _, k := range keys {
		d.Set(k, toValueWithVisited(entries[k], visited))
	}
	return d
}

func keyString(k lua.LValue) string {
	switch kv := k.(type) {
	case lua.LString:
		return string(kv)
	case lua.LNumber:
		return numberValue(float64(kv)).String()
	default:
		return k.String()
	}
}

func functionName(fn *lua.LFunction) string {
	if fn.IsG || fn.Proto == nil {
		return "builtin"
	}
	return fn.Proto.SourceName + ":" + strconv.Itoa(fn.Proto.LineDefined)
}
