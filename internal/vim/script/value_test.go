package script

import (
	"errors"
	"math"
	"testing"
)

// sample returns a representative value for every kind.
func sample(k Kind) Value {
	switch k {
	case KindString:
		return String("abc")
	case KindNumber:
		return Number(42)
	case KindFloat:
		return Float(1.5)
	case KindBool:
		return Bool(true)
	case KindNil:
		return Nil{}
	case KindList:
		return List{Number(1), String("two")}
	case KindDict:
		d := NewDict()
		d.Set("a", Number(1))
		return d
	case KindFunc:
		return Func{Name: "expr:1"}
	case KindOpaque:
		return Opaque{TypeName: "userdata"}
	}
	return nil
}

func TestInsertTextCoversEveryKind(t *testing.T) {
	want := map[Kind]string{
		KindString: "abc",
		KindNumber: "42",
		KindFloat:  "1.5",
		KindBool:   "true",
		KindNil:    "nil",
		KindList:   "1\ntwo\n",
		KindFunc:   "function('expr:1')",
		KindOpaque: "<userdata>",
	}

	for k := Kind(0); k < numKinds; k++ {
		t.Run(k.String(), func(t *testing.T) {
			v := sample(k)
			if v == nil {
				t.Fatalf("no sample value for kind %s", k)
			}
			if v.Kind() != k {
				t.Fatalf("sample for %s reports kind %s", k, v.Kind())
			}

			got, err := InsertText(v)
			if k == KindDict {
				if !errors.Is(err, ErrNotStringable) {
					t.Errorf("expected ErrNotStringable, got %q, %v", got, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != want[k] {
				t.Errorf("InsertText = %q, want %q", got, want[k])
			}
		})
	}
}

type unknownValue struct{}

func (unknownValue) Kind() Kind     { return numKinds }
func (unknownValue) String() string { return "?" }
func (unknownValue) sealed()        {}

func TestInsertTextPanicsOnUnknownKind(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for an unknown kind")
		}
	}()
	_, _ = InsertText(unknownValue{})
}

func TestInsertTextList(t *testing.T) {
	tests := []struct {
		name string
		list List
		want string
	}{
		{"empty", List{}, ""},
		{"numbers", List{Number(1), Number(2), Number(3)}, "1\n2\n3\n"},
		{"nested", List{List{String("a")}, Nil{}}, "['a']\nnil\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := InsertText(tt.list)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("InsertText = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFloatString(t *testing.T) {
	tests := []struct {
		f    Float
		want string
	}{
		{3, "3.0"},
		{-0.25, "-0.25"},
		{1e21, "1e+21"},
		{Float(math.Inf(1)), "inf"},
		{Float(math.Inf(-1)), "-inf"},
		{Float(math.NaN()), "nan"},
	}

	for _, tt := range tests {
		if got := tt.f.String(); got != tt.want {
			t.Errorf("Float(%v).String() = %q, want %q", float64(tt.f), got, tt.want)
		}
	}
}

func TestContainerLiterals(t *testing.T) {
	d := NewDict()
	d.Set("z", String("it's"))
	d.Set("a", List{Number(1), Bool(false)})

	if got, want := d.String(), "{'a': [1, false], 'z': 'it''s'}"; got != want {
		t.Errorf("Dict.String() = %q, want %q", got, want)
	}
	if keys := d.Keys(); len(keys) != 2 || keys[0] != "z" {
		t.Errorf("Keys() should keep insertion order, got %v", keys)
	}

	d.Set("z", Number(0))
	if d.Len() != 2 {
		t.Errorf("overwriting a key changed Len to %d", d.Len())
	}
	if v, ok := d.Get("z"); !ok || v != Number(0) {
		t.Errorf("Get(z) = %v, %v", v, ok)
	}
}

func TestKindString(t *testing.T) {
	if KindDict.String() != "dict" {
		t.Errorf("KindDict.String() = %q", KindDict.String())
	}
	if numKinds.String() != "Kind(9)" {
		t.Errorf("numKinds.String() = %q", numKinds.String())
	}
}

func TestConstAndParserFunc(t *testing.T) {
	p := ParserFunc(func(text string) (Expression, error) {
		if text == "" {
			return nil, ErrInvalidExpression
		}
		return Const{V: String(text)}, nil
	})

	if _, err := p.ParseExpression(""); !errors.Is(err, ErrInvalidExpression) {
		t.Errorf("expected ErrInvalidExpression, got %v", err)
	}
	expr, err := p.ParseExpression("x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err := expr.Evaluate(t.Context(), Env{})
	if err != nil || v != String("x") {
		t.Errorf("Evaluate = %v, %v", v, err)
	}
}
