package prompts

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed templates/*.yaml
var templateFS embed.FS

// Manager loads prompt templates embedded at compile time and renders
// them with simple placeholder substitution.
type Manager struct {
	prompts map[string]string // mode -> template
}

type promptTemplate struct {
	Prompt string `yaml:"prompt"`
}

func NewManager() (*Manager, error) {
	m := &Manager{prompts: make(map[string]string)}
	if err := m.load(); err != nil {
		return nil, fmt.Errorf("failed to load prompt templates: %w", err)
	}
	return m, nil
}

// Build renders the template for a mode, replacing {{.Key}} placeholders
// with the given values.
func (m *Manager) Build(mode string, vars map[string]string) (string, error) {
	tmpl, exists := m.prompts[mode]
	if !exists {
		return "", fmt.Errorf("template not found for mode: %s", mode)
	}
	result := tmpl
	for key, value := range vars {
		result = strings.ReplaceAll(result, "{{."+key+"}}", value)
	}
	return result, nil
}

func (m *Manager) load() error {
	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return fmt.Errorf("failed to read templates directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		data, err := templateFS.ReadFile("templates/" + entry.Name())
		if err != nil {
			return fmt.Errorf("failed to read template %s: %w", entry.Name(), err)
		}
		var tmpl promptTemplate
		if err := yaml.Unmarshal(data, &tmpl); err != nil {
			return fmt.Errorf("failed to parse template %s: %w", entry.Name(), err)
		}
		mode := strings.TrimSuffix(entry.Name(), ".yaml")
		m.prompts[mode] = tmpl.Prompt
	}
	return nil
}
