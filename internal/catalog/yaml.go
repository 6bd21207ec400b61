package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/specialistvlad/irlink/internal/field"
	"github.com/specialistvlad/irlink/internal/symdef"
	"gopkg.in/yaml.v3"
)

type yamlFile struct {
	Extensions []yamlExtension `yaml:"extensions"`
}

type yamlExtension struct {
	Name        string           `yaml:"name"`
	Definitions []yamlDefinition `yaml:"definitions"`
}

type yamlDefinition struct {
	Name          string      `yaml:"name"`
	Category      string      `yaml:"category"`
	HierarchyRoot bool        `yaml:"hierarchy_root"`
	OverrideField string      `yaml:"override_field"`
	Fields        []yamlField `yaml:"fields"`
}

type yamlField struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Nullable *bool  `yaml:"nullable"`
}

// ParseYAML decodes a YAML catalog. Unknown keys are rejected.
func ParseYAML(src []byte, filename string) ([]Extension, error) {
	var doc yamlFile
	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode catalog %s: %w", filename, err)
	}

	var errs []error
	exts := make([]Extension, 0, len(doc.Extensions))
	for _, ye := range doc.Extensions {
		if ye.Name == "" {
			errs = append(errs, errors.New("extension without a name"))
			continue
		}
		ext := Extension{Name: ye.Name, Source: filename}
		for _, yd := range ye.Definitions {
			def, err := yd.translate()
			if err != nil {
				errs = append(errs, fmt.Errorf("extension %q: definition %q: %w", ye.Name, yd.Name, err))
			}
			ext.Definitions = append(ext.Definitions, def)
		}
		exts = append(exts, ext)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("failed to decode catalog %s: %w", filename, err)
	}
	return exts, nil
}

func (yd yamlDefinition) translate() (symdef.Definition, error) {
	cat, err := symdef.ParseCategory(yd.Category)
	if err != nil {
		return symdef.Definition{}, err
	}
	def := symdef.Definition{
		Name:          yd.Name,
		Category:      cat,
		HierarchyRoot: yd.HierarchyRoot,
		OverrideField: yd.OverrideField,
	}
	for _, yf := range yd.Fields {
		kind, err := field.ParseKind(yf.Type)
		if err != nil {
			return symdef.Definition{}, fmt.Errorf("field %q: %w", yf.Name, err)
		}
		fd := field.Def(yf.Name, kind)
		if yf.Nullable != nil {
			fd.Nullable = *yf.Nullable
		}
		def.Fields = append(def.Fields, fd)
	}
	return def, nil
}
