package register

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrCorruptFile indicates a register file that is not valid JSON.
var ErrCorruptFile = errors.New("corrupt register file")

const currentVersion = 1

// persistentType reports whether registers of type t survive between
// sessions. Read-only and clipboard registers are owned by something else.
func persistentType(t Type) bool {
	switch t {
	case TypeUnnamed, TypeNamed, TypeLastYank, TypeNumbered, TypeSmallDelete, TypeExpression:
		return true
	}
	return false
}

// Marshal encodes the persistent registers as JSON:
//
//	{"version":1,"saved_at":"...","registers":[{"name":"a","text":"...","kind":"linewise"}]}
func Marshal(s *Store) ([]byte, error) {
	data := []byte(`{}`)
	var err error

	data, err = sjson.SetBytes(data, "version", currentVersion)
	if err != nil {
		return nil, err
	}
	data, err = sjson.SetBytes(data, "saved_at", time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	data, err = sjson.SetRawBytes(data, "registers", []byte(`[]`))
	if err != nil {
		return nil, err
	}

	names := make([]rune, 0, len(s.registers))
	for name, reg := range s.registers {
		if persistentType(reg.Type) && reg.Text != "" {
			names = append(names, name)
		}
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	for _, name := range names {
		reg := s.registers[name]
		entry := map[string]any{
			"name": string(reg.Name),
			"text": reg.Text,
			"kind": reg.Kind.String(),
		}
		data, err = sjson.SetBytes(data, "registers.-1", entry)
		if err != nil {
			return nil, fmt.Errorf("encode register %q: %w", name, err)
		}
	}
	return data, nil
}

// Unmarshal loads registers encoded by Marshal into s. Unknown or read-only
// names are skipped; registers missing from data keep their content.
func Unmarshal(data []byte, s *Store) error {
	if !gjson.ValidBytes(data) {
		return ErrCorruptFile
	}
	if v := gjson.GetBytes(data, "version").Int(); v > currentVersion {
		return fmt.Errorf("register file version %d is newer than %d", v, currentVersion)
	}

	gjson.GetBytes(data, "registers").ForEach(func(_, entry gjson.Result) bool {
		name := []rune(entry.Get("name").String())
		if len(name) != 1 {
			return true
		}
		reg, ok := s.registers[name[0]]
		if !ok || !persistentType(reg.Type) {
			return true
		}
		kind, ok := ParseKind(entry.Get("kind").String())
		if !ok {
			return true
		}
		reg.Text = entry.Get("text").String()
		reg.Kind = kind
		return true
	})
	return nil
}

// Save writes the persistent registers to path.
// The file is written atomically using a temporary file and rename.
func Save(s *Store, path string) error {
	data, err := Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal registers: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Load reads registers from path into s. A missing file is not an error.
func Load(s *Store, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read register file: %w", err)
	}
	if err := Unmarshal(data, s); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
