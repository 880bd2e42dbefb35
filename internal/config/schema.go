package config

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/rxtech-lab/argo-execution/internal/fee"
)

// GenerateSchema generates a JSON schema for the configuration file.
func (c *Config) GenerateSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		FieldNameTag:              "yaml",
		ExpandedStruct:            true,
		AllowAdditionalProperties: false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			switch {
			case strings.HasPrefix(t.String(), "optional.Option[time.Duration]"), t.String() == "time.Duration":
				return &jsonschema.Schema{
					Type:        "string",
					Description: "Go duration, e.g. 500ms or 1m",
				}
			case t.String() == "decimal.Decimal":
				return &jsonschema.Schema{
					Type:    "string",
					Pattern: `^-?[0-9]+(\.[0-9]+)?$`,
				}
			case t == reflect.TypeOf(fee.Broker("")):
				return &jsonschema.Schema{
					Type: "string",
					Enum: fee.AllBrokers,
				}
			}

			return nil
		},
	}

	schema := reflector.Reflect(c)
	schema.Title = "argo-execution-config"
	schema.Description = "Configuration schema for the order execution layer"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema
}

// GenerateSchemaJSON generates a JSON schema string for the configuration file.
func (c *Config) GenerateSchemaJSON() (string, error) {
	schemaBytes, err := json.MarshalIndent(c.GenerateSchema(), "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}
