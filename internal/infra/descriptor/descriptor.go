// Where: internal/infra/descriptor/descriptor.go
// What: Loader for the .deliverable.json project descriptor.
// Why: Let platform tooling fix the project name instead of the person running the generator.
package descriptor

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/poruru/apigen/internal/meta"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

var (
	ErrNotFound = errors.New("descriptor not found")
	ErrInvalid  = errors.New("descriptor invalid")
)

//go:embed schema/deliverable.schema.json
var schemaSource []byte

const schemaURL = "https://github.com/poruru/apigen/schema/deliverable.schema.json"

var (
	schemaOnce     sync.Once
	schemaErr      error
	compiledSchema *jsonschema.Schema
)

// Descriptor is the subset of .deliverable.json read by the generator.
type Descriptor struct {
	Path        string      `json:"-"`
	Deliverable Deliverable `json:"deliverable"`
}

type Deliverable struct {
	Parameters Parameters `json:"parameters"`
}

type Parameters struct {
	ProjectName string `json:"projectName"`
}

// ProjectName returns the trimmed project name.
func (d Descriptor) ProjectName() string {
	return strings.TrimSpace(d.Deliverable.Parameters.ProjectName)
}

// Path returns the descriptor location for root.
func Path(root string) string {
	return filepath.Join(root, meta.DescriptorFile)
}

// Load reads and validates the descriptor stored in root.
func Load(fsys afero.Fs, root string) (Descriptor, error) {
	if strings.TrimSpace(root) == "" {
		return Descriptor{}, fmt.Errorf("%w: root folder is required", ErrNotFound)
	}
	path := Path(root)
	content, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Descriptor{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return Descriptor{}, fmt.Errorf("read descriptor %s: %w", path, err)
	}

	jsonData, err := validate(content)
	if err != nil {
		return Descriptor{}, fmt.Errorf("%w: %s: %w", ErrInvalid, path, err)
	}

	var desc Descriptor
	if err := json.Unmarshal(jsonData, &desc); err != nil {
		return Descriptor{}, fmt.Errorf("%w: %s: %w", ErrInvalid, path, err)
	}
	if desc.ProjectName() == "" {
		return Descriptor{}, fmt.Errorf("%w: %s: deliverable.parameters.projectName is empty", ErrInvalid, path)
	}
	desc.Path = path
	return desc, nil
}

func validate(content []byte) ([]byte, error) {
	sch, err := loadSchema()
	if err != nil {
		return nil, err
	}

	jsonData, err := yaml.YAMLToJSON(content)
	if err != nil {
		return nil, fmt.Errorf("convert to json: %w", err)
	}

	var document any
	if err := json.Unmarshal(jsonData, &document); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	if err := sch.Validate(document); err != nil {
		return nil, err
	}
	return jsonData, nil
}

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaSource)); err != nil {
			schemaErr = fmt.Errorf("load descriptor schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}
