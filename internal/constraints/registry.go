// Package constraints loads named phone constraints from a YAML schema at
// startup, so deployments can declare them instead of wiring them in code:
//
//	constraints:
//	  uk_mobile:
//	    type: mobile
//	    defaultRegion: GB
//	    format: e164
//	  contact:
//	    type: [fixed_line, mobile, voip]
//	    regionPath: address.country
//	    message: "Please enter a valid {{ type }}."
package constraints

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"phonenumber_service/platform/logger"
	"phonenumber_service/platform/phone"
)

// Registry holds named constraints in schema order.
type Registry struct {
	names       []string
	constraints map[string]phone.Constraint
}

type document struct {
	Constraints yaml.Node `yaml:"constraints"`
}

type constraintEntry struct {
	Type          scalarOrList `yaml:"type"`
	DefaultRegion string       `yaml:"defaultRegion"`
	RegionPath    string       `yaml:"regionPath"`
	Format        string       `yaml:"format"`
	Message       string       `yaml:"message"`
	Groups        scalarOrList `yaml:"groups"`
}

// scalarOrList accepts `key: value` as well as `key: [a, b]`.
type scalarOrList []string

func (s *scalarOrList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*s = scalarOrList{node.Value}
		return nil
	case yaml.SequenceNode:
		var values []string
		if err := node.Decode(&values); err != nil {
			return err
		}
		*s = values
		return nil
	default:
		return fmt.Errorf("line %d: expected a value or a list", node.Line)
	}
}

// Load reads the schema at path. An empty path yields an empty registry.
func Load(path string, log *logger.Logger) (*Registry, error) {
	if strings.TrimSpace(path) == "" {
		return NewRegistry(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read constraints file: %w", err)
	}
	return Parse(data, log)
}

// Parse builds a registry from schema bytes. Any unknown type, format or
// region fails the whole schema.
func Parse(data []byte, log *logger.Logger) (*Registry, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse constraints: %w", err)
	}

	registry := NewRegistry()
	if doc.Constraints.Kind == 0 {
		return registry, nil
	}
	if doc.Constraints.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse constraints: line %d: constraints must be a mapping", doc.Constraints.Line)
	}

	content := doc.Constraints.Content
	for i := 0; i+1 < len(content); i += 2 {
		name := strings.TrimSpace(content[i].Value)
		var entry constraintEntry
		if err := content[i+1].Decode(&entry); err != nil {
			return nil, fmt.Errorf("constraint %q: %w", name, err)
		}
		c, err := entry.build(name, log)
		if err != nil {
			return nil, fmt.Errorf("constraint %q: %w", name, err)
		}
		if err := registry.Add(name, c); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

func (s constraintEntry) build(name string, log *logger.Logger) (phone.Constraint, error) {
	opts := []phone.ConstraintOption{phone.WithName(name), phone.WithLogger(log)}

	for _, value := range s.Type {
		t, err := phone.ParseNumberType(value)
		if err != nil {
			return phone.Constraint{}, err
		}
		opts = append(opts, phone.WithTypes(t))
	}

	if s.DefaultRegion != "" {
		region, err := CanonicalRegion(s.DefaultRegion)
		if err != nil {
			return phone.Constraint{}, err
		}
		opts = append(opts, phone.WithDefaultRegion(region))
	}

	if s.Format != "" {
		format, err := phone.ParseDisplayFormat(s.Format)
		if err != nil {
			return phone.Constraint{}, err
		}
		opts = append(opts, phone.WithFormat(format))
	}

	opts = append(opts,
		phone.WithRegionPath(s.RegionPath),
		phone.WithMessage(s.Message),
		phone.WithGroups(s.Groups...),
	)
	return phone.NewConstraint(opts...), nil
}

// CanonicalRegion validates a region code and returns its canonical
// upper-case form. UnknownRegion is accepted as is.
func CanonicalRegion(value string) (string, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(value))
	if trimmed == phone.UnknownRegion {
		return trimmed, nil
	}
	region, err := language.ParseRegion(trimmed)
	if err != nil {
		return "", &phone.ConfigurationError{
			Err:    err,
			Detail: fmt.Sprintf("invalid region code %q", value),
		}
	}
	return region.Canonicalize().String(), nil
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{constraints: make(map[string]phone.Constraint)}
}

// ErrDuplicate is returned when a name is registered twice.
var ErrDuplicate = errors.New("duplicate constraint name")

// Add registers c under name.
func (r *Registry) Add(name string, c phone.Constraint) error {
	if name == "" {
		return fmt.Errorf("constraint name must not be empty")
	}
	if _, exists := r.constraints[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicate, name)
	}
	r.names = append(r.names, name)
	r.constraints[name] = c
	return nil
}

// Get returns the constraint registered under name.
func (r *Registry) Get(name string) (phone.Constraint, bool) {
	c, ok := r.constraints[name]
	return c, ok
}

// Names returns the registered names in schema order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// Len returns the number of constraints.
func (r *Registry) Len() int {
	return len(r.names)
}
