package profiles

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

type FSLoader struct{}

func NewLoader() *FSLoader { return &FSLoader{} }

// LoadDir reads every *.yaml / *.yml profile under root, sorted by name. A
// missing directory is not an error: the built-in default still applies.
func (l *FSLoader) LoadDir(root string) ([]Profile, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	out := make([]Profile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		path := filepath.Join(root, entry.Name())
		p, err := readProfile(path)
		if err != nil {
			return nil, fmt.Errorf("load profile %s: %w", path, err)
		}
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Find returns the named profile from loaded, falling back to the built-in
// default when name is empty or "scrum" and no file overrides it.
func (l *FSLoader) Find(loaded []Profile, name string) (Profile, error) {
	if name == "" {
		name = Default().Name
	}
	for _, p := range loaded {
		if p.Name == name {
			return p, nil
		}
	}
	if d := Default(); name == d.Name {
		return d, nil
	}
	return Profile{}, fmt.Errorf("profile %q not found", name)
}

func readProfile(path string) (Profile, error) {
	var p Profile
	body, err := os.ReadFile(path)
	if err != nil {
		return p, err
	}
	dec := yaml.NewDecoder(strings.NewReader(string(body)))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return p, err
	}
	if err := p.Validate(); err != nil {
		return p, err
	}
	p.Path = path
	return p, nil
}
