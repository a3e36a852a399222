package mission

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed missions/*.yaml
var builtin embed.FS

// Loader handles loading missions from a directory or the built-in set.
type Loader struct {
	fsys fs.FS
}

// NewLoader reads missions from dir, or from the built-in set when dir is
// empty.
func NewLoader(dir string) *Loader {
	if dir == "" {
		sub, err := fs.Sub(builtin, "missions")
		if err != nil {
			panic(err)
		}
		return &Loader{fsys: sub}
	}
	return &Loader{fsys: os.DirFS(dir)}
}

// LoadMission loads a single mission by ID (filename without extension).
func (l *Loader) LoadMission(id string) (*Mission, error) {
	name := id + ".yaml"
	if id == "" || strings.ContainsAny(id, `/\`) || !fs.ValidPath(name) {
		return nil, fmt.Errorf("invalid mission id %q", id)
	}

	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read mission file: %w", err)
	}

	var m Mission
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse mission yaml: %w", err)
	}

	// Ensure ID matches filename if not set
	if m.ID == "" {
		m.ID = id
	}

	return &m, nil
}

// ListMissions returns all available missions in filename order. Files that
// fail to parse are skipped.
func (l *Loader) ListMissions() ([]*Mission, error) {
	files, err := fs.ReadDir(l.fsys, ".")
	if err != nil {
		return nil, err
	}

	var missions []*Mission
	for _, f := range files {
		if f.IsDir() || path.Ext(f.Name()) != ".yaml" {
			continue
		}
		m, err := l.LoadMission(strings.TrimSuffix(f.Name(), ".yaml"))
		if err != nil {
			continue
		}
		missions = append(missions, m)
	}
	return missions, nil
}
