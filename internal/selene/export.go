package selene

import (
	"fmt"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Argument is one argument spec of a declared global function
type Argument struct {
	Type     interface{} `yaml:"type" toml:"type"`
	Required *bool       `yaml:"required,omitempty" toml:"required,omitempty"`
}

// Function declares one global function and its arguments
type Function struct {
	Args []Argument `yaml:"args" toml:"args"`
}

// Document is a selene standard library declaring the bundle's globals
type Document struct {
	Base    string              `yaml:"base" toml:"base"`
	Name    string              `yaml:"name" toml:"name"`
	Globals map[string]Function `yaml:"globals" toml:"globals"`
}

// Export builds the selene document for the collected functions
func Export(name string, funcs []ParsedFunction) *Document {
	globals := make(map[string]Function, len(funcs))
	for _, f := range funcs {
		args := make([]Argument, 0, len(f.ArgTypes))
		for _, token := range f.ArgTypes {
			argType, optional := normalizeArgType(token)
			arg := Argument{Type: argType}
			if optional {
				required := false
				arg.Required = &required
			}
			args = append(args, arg)
		}
		globals[f.Name] = Function{Args: args}
	}

	return &Document{
		Base:    "lua51",
		Name:    name,
		Globals: globals,
	}
}

// Encode renders the document in the requested format, "yaml" or "toml"
func (d *Document) Encode(format string) ([]byte, error) {
	switch format {
	case "yaml", "yml", "":
		return yaml.Marshal(d)
	case "toml":
		return toml.Marshal(d)
	default:
		return nil, fmt.Errorf("unsupported selene output format: %s", format)
	}
}
