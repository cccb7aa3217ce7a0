package script

import (
	"fmt"
	"strings"
)

// InsertText converts v to the text typed into the document.
//
// Strings are inserted as-is. Each list element is inserted followed by a
// newline. Dicts cannot be inserted and fail with ErrNotStringable. Every
// other kind uses its generic text.
func InsertText(v Value) (string, error) {
	switch k := v.Kind(); k {
	case KindString:
		return string(v.(String)), nil
	case KindList:
		var b strings.Builder
		for _, elem := range v.(List) {
			b.WriteString(elem.String())
			b.WriteByte('\n')
		}
		return b.String(), nil
	case KindDict:
		return "", ErrNotStringable
	case KindNumber, KindFloat, KindBool, KindNil, KindFunc, KindOpaque:
		return v.String(), nil
	default:
		panic(fmt.Sprintf("script: InsertText: unhandled value kind %s", k))
	}
}
