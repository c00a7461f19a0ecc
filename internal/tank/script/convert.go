package script

import (
	"sort"

	"github.com/Shopify/go-lua"
)

// luaToGo 把栈上的值转成 Go 值：数字一律 float64，表转成 map[string]any（只保留字符串键）。
func luaToGo(l *lua.State, index int) any {
	switch l.TypeOf(index) {
	case lua.TypeString:
		s, _ := l.ToString(index)
		return s
	case lua.TypeNumber:
		n, _ := l.ToNumber(index)
		return n
	case lua.TypeBoolean:
		return l.ToBoolean(index)
	case lua.TypeTable:
		return tableToMap(l, index)
	case lua.TypeUserData:
		return l.ToUserData(index)
	default:
		return nil
	}
}

func tableToMap(l *lua.State, index int) map[string]any {
	out := map[string]any{}
	index = l.AbsIndex(index)
	l.PushNil()
	for l.Next(index) {
		if l.TypeOf(-2) == lua.TypeString {
			key, _ := l.ToString(-2)
			out[key] = luaToGo(l, -1)
		}
		l.Pop(1)
	}
	return out
}

func pushGo(l *lua.State, v any) {
	switch x := v.(type) {
	case nil:
		l.PushNil()
	case string:
		l.PushString(x)
	case float64:
		l.PushNumber(x)
	case int:
		l.PushInteger(x)
	case bool:
		l.PushBoolean(x)
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		l.NewTable()
		for _, k := range keys {
			pushGo(l, x[k])
			l.SetField(-2, k)
		}
	default:
		l.PushUserData(x)
	}
}
