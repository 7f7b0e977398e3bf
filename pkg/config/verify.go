package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema.
// Checked are numeric bounds and enums of every field, plus a few required values.
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	// parse schema
	var schema map[string]any
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	// convert config to JSON for validation
	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	var configMap map[string]any
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validateRequiredFields(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	defs, _ := schema["$defs"].(map[string]any)
	if errs := checkNode(schema, configMap, "", defs); len(errs) > 0 {
		return fmt.Errorf("validation failed: %w", errors.Join(errs...))
	}
	return nil
}

// validateRequiredFields performs basic validation of required fields
func validateRequiredFields(cfg *Config) error {
	// check server config
	if cfg.Server.Listen == "" {
		return errors.New("server.listen is required")
	}
	if cfg.Server.Timeout == 0 {
		return errors.New("server.timeout is required")
	}

	// check database config
	if cfg.Database.DSN == "" {
		return errors.New("database.dsn is required")
	}

	// check llm config if enabled
	if cfg.LLM.Enabled {
		if cfg.LLM.Endpoint == "" {
			return errors.New("llm.endpoint is required when llm is enabled")
		}
		if cfg.LLM.Model == "" {
			return errors.New("llm.model is required when llm is enabled")
		}
	}

	return nil
}

// checkNode walks the value along the schema node and reports values out of minimum/maximum
// bounds and strings outside of enum
func checkNode(node map[string]any, value any, path string, defs map[string]any) []error {
	node = resolveRef(node, defs)
	if node == nil {
		return nil
	}

	var errs []error
	switch v := value.(type) {
	case map[string]any:
		props, _ := node["properties"].(map[string]any)
		additional, _ := node["additionalProperties"].(map[string]any)
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sub, ok := props[k].(map[string]any)
			if !ok {
				sub = additional
			}
			errs = append(errs, checkNode(sub, v[k], joinPath(path, k), defs)...)
		}
	case []any:
		items, _ := node["items"].(map[string]any)
		for i, item := range v {
			errs = append(errs, checkNode(items, item, fmt.Sprintf("%s[%d]", path, i), defs)...)
		}
	case float64:
		if lim, ok := node["minimum"].(float64); ok && v < lim {
			errs = append(errs, fmt.Errorf("%s must be at least %v, got %v", path, lim, v))
		}
		if lim, ok := node["maximum"].(float64); ok && v > lim {
			errs = append(errs, fmt.Errorf("%s must be at most %v, got %v", path, lim, v))
		}
	case string:
		enum, ok := node["enum"].([]any)
		if !ok {
			break
		}
		for _, e := range enum {
			if e == v {
				return nil
			}
		}
		errs = append(errs, fmt.Errorf("%s must be one of %v, got %q", path, enum, v))
	}
	return errs
}

// resolveRef follows local "#/$defs/Name" references
func resolveRef(node map[string]any, defs map[string]any) map[string]any {
	for node != nil {
		ref, ok := node["$ref"].(string)
		if !ok {
			return node
		}
		def, _ := defs[strings.TrimPrefix(ref, "#/$defs/")].(map[string]any)
		node = def
	}
	return nil
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() (*jsonschema.Schema, error) {
	r := jsonschema.Reflector{}
	schema := r.Reflect(&Config{})
	schema.Title = "matchnews configuration"
	return schema, nil
}
