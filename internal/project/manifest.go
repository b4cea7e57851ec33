package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ManifestName — имя файла манифеста проекта.
const ManifestName = "spicy.toml"

// Manifest — необязательные настройки проекта: точка входа и дефолты CLI.
//
//	[project]
//	name = "shapes"
//	entry = "shapes.spc"
//
//	[diagnostics]
//	max = 100
//	color = "auto"
type Manifest struct {
	Project struct {
		Name  string `toml:"name"`
		Entry string `toml:"entry"`
	} `toml:"project"`
	Diagnostics struct {
		Max   int    `toml:"max"`
		Color string `toml:"color"`
	} `toml:"diagnostics"`
}

// Defaults возвращает манифест со значениями по умолчанию.
func Defaults() Manifest {
	var m Manifest
	m.Diagnostics.Max = 100
	m.Diagnostics.Color = "auto"
	return m
}

// Load ищет spicy.toml в dir и его родителях; отсутствие манифеста — не
// ошибка, возвращаются дефолты.
func Load(dir string) (Manifest, string, error) {
	m := Defaults()
	path, ok := find(dir)
	if !ok {
		return m, "", nil
	}
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return Defaults(), path, fmt.Errorf("parse %s: %w", path, err)
	}
	if m.Diagnostics.Max <= 0 {
		m.Diagnostics.Max = 100
	}
	if m.Diagnostics.Max > 1000 {
		m.Diagnostics.Max = 1000
	}
	if m.Diagnostics.Color == "" {
		m.Diagnostics.Color = "auto"
	}
	return m, path, nil
}

func find(dir string) (string, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
