// Package chartfile читает натальные и транзитные карты из YAML или JSON файлов.
//
// Файл содержит либо голое отображение точка -> долгота, либо документ
// с полями name, zodiac и points. Порядок точек сохраняется как в файле.
package chartfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/admin/astro-transits/internal/domain"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

const pointsKey = "points"

// Chart содержимое файла карты
type Chart struct {
	Name   string              `yaml:"name" json:"name"`
	Zodiac string              `yaml:"zodiac" json:"zodiac"`
	Points domain.LongitudeMap `yaml:"points" json:"points"`
}

// ZodiacMode режим зодиака карты; tropical, если не указан
func (c *Chart) ZodiacMode() domain.ZodiacMode {
	return domain.ParseZodiacMode(c.Zodiac)
}

// FormatOf формат по расширению; всё, кроме .json, читается как YAML
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Load читает и разбирает файл карты
func Load(path string) (*Chart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read chart file: %w", err)
	}

	chart, err := Parse(data, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("chart file %s: %w", path, err)
	}
	return chart, nil
}

// Parse разбирает содержимое файла карты в заданном формате
func Parse(data []byte, format Format) (*Chart, error) {
	var (
		chart *Chart
		err   error
	)

	switch format {
	case FormatJSON:
		chart, err = parseJSON(data)
	case FormatYAML:
		chart, err = parseYAML(data)
	default:
		return nil, fmt.Errorf("unsupported chart file format %q", format)
	}
	if err != nil {
		return nil, err
	}

	if len(chart.Points) == 0 {
		return nil, domain.NewValidationError("chart has no points")
	}
	if err := chart.Points.Validate(); err != nil {
		return nil, err
	}
	return chart, nil
}

func parseJSON(data []byte) (*Chart, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, domain.NewValidationError("chart must be a JSON object: %v", err)
	}

	chart := &Chart{}
	if _, ok := envelope[pointsKey]; ok {
		if err := json.Unmarshal(data, chart); err != nil {
			return nil, fmt.Errorf("decode chart: %w", err)
		}
		return chart, nil
	}

	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&chart.Points); err != nil {
		return nil, fmt.Errorf("decode points: %w", err)
	}
	return chart, nil
}

func parseYAML(data []byte) (*Chart, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, domain.NewValidationError("invalid YAML: %v", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, domain.NewValidationError("chart file is empty")
	}

	root := doc.Content[0]
	chart := &Chart{}
	if hasKey(root, pointsKey) {
		if err := root.Decode(chart); err != nil {
			return nil, err
		}
		return chart, nil
	}

	if err := root.Decode(&chart.Points); err != nil {
		return nil, err
	}
	return chart, nil
}

func hasKey(node *yaml.Node, key string) bool {
	if node.Kind != yaml.MappingNode {
		return false
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return true
		}
	}
	return false
}
