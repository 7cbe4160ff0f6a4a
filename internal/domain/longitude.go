package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// ErrNonNumericDegree градус точки не является числом
var ErrNonNumericDegree = NewValidationError("degree values must be numeric")

// PointLongitude долгота одной точки карты (планета, асцендент, узел и т.п.)
type PointLongitude struct {
	Name   string
	Degree float64
}

// LongitudeMap упорядоченное отображение имя точки -> долгота в градусах.
// Порядок ключей сохраняется как у вызывающей стороны: от него зависит порядок результатов.
type LongitudeMap []PointLongitude

// Set обновляет долготу существующей точки или добавляет новую в конец
func (m *LongitudeMap) Set(name string, degree float64) {
	for i := range *m {
		if (*m)[i].Name == name {
			(*m)[i].Degree = degree
			return
		}
	}
	*m = append(*m, PointLongitude{Name: name, Degree: degree})
}

// Get возвращает долготу точки по имени
func (m LongitudeMap) Get(name string) (float64, bool) {
	for _, p := range m {
		if p.Name == name {
			return p.Degree, true
		}
	}
	return 0, false
}

// Names имена точек в исходном порядке
func (m LongitudeMap) Names() []string {
	names := make([]string, 0, len(m))
	for _, p := range m {
		names = append(names, p.Name)
	}
	return names
}

// Validate проверяет, что все градусы конечные числа
func (m LongitudeMap) Validate() error {
	for _, p := range m {
		if math.IsNaN(p.Degree) || math.IsInf(p.Degree, 0) {
			return ErrNonNumericDegree
		}
	}
	return nil
}

func (m LongitudeMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(p.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(p.Degree)
		if err != nil {
			return nil, fmt.Errorf("point %s: %w", p.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// orderedDegrees промежуточное упорядоченное отображение для декодирования;
// nil-значение означает null в исходном документе
type orderedDegrees = orderedmap.OrderedMap[string, *float64]

// fromOrdered переносит точки в LongitudeMap; null и нечисловые градусы отклоняются
func fromOrdered(om *orderedDegrees) (LongitudeMap, error) {
	result := make(LongitudeMap, 0, om.Len())
	for pair := om.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value == nil {
			return nil, ErrNonNumericDegree
		}
		result.Set(pair.Key, *pair.Value)
	}
	return result, nil
}

// UnmarshalJSON читает JSON-объект, сохраняя порядок ключей.
// При повторе ключа побеждает последнее значение, позиция остаётся от первого.
func (m *LongitudeMap) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*m = nil
		return nil
	}

	om := orderedmap.New[string, *float64]()
	if err := json.Unmarshal(data, om); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return ErrNonNumericDegree
		}
		return NewValidationError("longitude map must be a JSON object")
	}

	result, err := fromOrdered(om)
	if err != nil {
		return err
	}
	*m = result
	return nil
}

// UnmarshalYAML читает YAML-отображение, сохраняя порядок ключей
func (m *LongitudeMap) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return NewValidationError("longitude map must be a mapping, line %d", node.Line)
	}

	om := orderedmap.New[string, *float64]()
	if err := node.Decode(om); err != nil {
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			return ErrNonNumericDegree
		}
		return fmt.Errorf("decode longitude map: %w", err)
	}

	result, err := fromOrdered(om)
	if err != nil {
		return err
	}
	*m = result
	return nil
}

func (m LongitudeMap) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, p := range m {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: p.Name},
			&yaml.Node{Kind: yaml.ScalarNode, Value: strconv.FormatFloat(p.Degree, 'f', -1, 64)},
		)
	}
	return node, nil
}
