package content

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// DefaultDataset returns the fallback dataset compiled into the binary.
func DefaultDataset() Portfolio {
	p, err := ParseDataset(defaultsYAML)
	if err != nil {
		panic(fmt.Sprintf("content: embedded defaults.yaml: %v", err))
	}
	return p
}

// LoadDataset reads a fallback dataset from a YAML file. An empty path
// returns the embedded dataset.
func LoadDataset(path string) (Portfolio, error) {
	if path == "" {
		return DefaultDataset(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Portfolio{}, fmt.Errorf("reading fallback dataset %s: %w", path, err)
	}
	p, err := ParseDataset(data)
	if err != nil {
		return Portfolio{}, fmt.Errorf("parsing fallback dataset %s: %w", path, err)
	}
	return p, nil
}

// ParseDataset decodes a YAML fallback dataset. Unknown keys are rejected
// so a typo does not silently drop a section.
func ParseDataset(data []byte) (Portfolio, error) {
	var p Portfolio
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return Portfolio{}, err
	}
	if err := p.Validate(); err != nil {
		return Portfolio{}, err
	}
	for i := range p.Projects {
		p.Projects[i].Order = i
		if p.Projects[i].Tags == nil {
			p.Projects[i].Tags = []string{}
		}
	}
	for i := range p.Experience {
		if p.Experience[i].Description == nil {
			p.Experience[i].Description = []string{}
		}
	}
	return p, nil
}
