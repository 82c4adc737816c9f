package file

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

/* Source serves secrets from a local YAML file, for development and tests
 * The file maps identifiers to the raw secret documents:
 *
 *   secrets:
 *     MomentoWebhookSecretKey: '{"momentoSecret": "..."}'
 */

// Config represents the structure of the secrets file
type Config struct {
	Secrets map[string]string `yaml:"secrets"`
}

// Source holds the loaded secrets
type Source struct {
	secrets map[string]string
}

// NewSource reads and parses the secrets file
func NewSource(filePath string) (*Source, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading secrets file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing secrets YAML: %w", err)
	}
	if config.Secrets == nil {
		config.Secrets = map[string]string{}
	}

	return &Source{secrets: config.Secrets}, nil
}

// SecretString returns the document stored under id
func (s *Source) SecretString(ctx context.Context, id string) (string, error) {
	value, exists := s.secrets[id]
	if !exists {
		return "", fmt.Errorf("secret not found: %s", id)
	}
	return value, nil
}
