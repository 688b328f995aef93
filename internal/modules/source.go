// Package modules resolves unit imports into a single program text.
//
// A unit's first line names its dependencies, separated by dots; the rest
// is its body. Resolution orders the bodies so that every dependency's
// definitions run before the code that imports them.
package modules

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// UnitSource fetches the raw text of a unit by name.
type UnitSource interface {
	Load(name string) (string, error)
}

// FileSource loads units from disk. A name is tried against the unit
// directory with each extension in order, then against the shared library
// directory using only the base of the name.
type FileSource struct {
	Dir        string
	LibDir     string
	Extensions []string
	Logger     zerolog.Logger
}

func NewFileSource(dir, libDir string, extensions []string) *FileSource {
	return &FileSource{
		Dir:        dir,
		LibDir:     libDir,
		Extensions: extensions,
		Logger:     zerolog.Nop(),
	}
}

func (s *FileSource) Load(name string) (string, error) {
	candidates := make([]string, 0, 2*len(s.Extensions))
	for _, ext := range s.Extensions {
		candidates = append(candidates, filepath.Join(s.Dir, name+ext))
	}
	base := filepath.Base(name)
	for _, ext := range s.Extensions {
		candidates = append(candidates, filepath.Join(s.LibDir, base+ext))
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err == nil {
			s.Logger.Debug().Str("unit", name).Str("path", path).Msg("unit loaded")
			return string(data), nil
		}
		if !os.IsNotExist(err) {
			return "", err
		}
	}
	return "", fmt.Errorf("no source file for unit %s", name)
}

// MapSource serves units from memory, keyed by name.
type MapSource map[string]string

func (s MapSource) Load(name string) (string, error) {
	text, ok := s[name]
	if !ok {
		return "", fmt.Errorf("no source file for unit %s", name)
	}
	return text, nil
}
