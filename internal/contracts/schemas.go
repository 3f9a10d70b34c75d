package contracts

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed schemas
var schemasFS embed.FS

const (
	schemasRoot = "schemas/requests"
	// ресурсы регистрируются под абсолютным URL, чтобы относительные $ref разрешались между файлами
	schemaBaseURL = "https://realestate-search-service.local/"
)

// Ключи схем запросов REST API
const (
	SearchConfigurationV1 = "SearchConfiguration/1.0.0"
	BatchSearchV1         = "BatchSearch/1.0.0"
	ContactAgentV1        = "ContactAgent/1.0.0"
)

var compiledSchemas = make(map[string]*jsonschema.Schema)

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	// сначала все схемы добавляются как ресурсы, чтобы $ref находил соседние файлы
	var paths []string
	err := fs.WalkDir(schemasFS, schemasRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		file, err := schemasFS.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()
		if err := compiler.AddResource(schemaBaseURL+path, file); err != nil {
			return fmt.Errorf("failed to add schema resource %s: %w", path, err)
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		log.Fatalf("error walking and adding schema resources: %v", err)
	}

	for _, path := range paths {
		schema, err := compiler.Compile(schemaBaseURL + path)
		if err != nil {
			log.Fatalf("could not compile schema %s: %v", path, err)
		}
		compiledSchemas[generateKeyFromPath(path)] = schema
	}
}

// generateKeyFromPath преобразует "schemas/requests/batch-search.v1.json" в "BatchSearch/1.0.0"
func generateKeyFromPath(path string) string {
	name := strings.TrimSuffix(path[strings.LastIndex(path, "/")+1:], ".json")

	dot := strings.LastIndex(name, ".v")
	if dot < 0 {
		return ""
	}
	base, version := name[:dot], name[dot+2:]

	caser := cases.Title(language.English)
	var keyBuilder strings.Builder
	for _, part := range strings.Split(base, "-") {
		keyBuilder.WriteString(caser.String(part))
	}

	return fmt.Sprintf("%s/%s.0.0", keyBuilder.String(), version)
}

// ValidationError - тело запроса не прошло проверку по схеме
type ValidationError struct {
	Schema string
	Cause  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("request does not match schema %s: %v", e.Schema, e.Cause)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// Validate проверяет JSON-тело по схеме с ключом schemaKey
func Validate(schemaKey string, body []byte) error {
	schema, ok := compiledSchemas[schemaKey]
	if !ok {
		return fmt.Errorf("schema '%s' not found", schemaKey)
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return &ValidationError{Schema: schemaKey, Cause: fmt.Errorf("body is not a valid JSON: %w", err)}
	}

	if err := schema.Validate(v); err != nil {
		return &ValidationError{Schema: schemaKey, Cause: err}
	}
	return nil
}
