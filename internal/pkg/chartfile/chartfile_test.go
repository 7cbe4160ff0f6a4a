package chartfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/admin/astro-transits/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_YAMLDocument(t *testing.T) {
	data := []byte(`
name: Ada
zodiac: sidereal
points:
  Venus: 145.67
  Sun: 10.5
  Ascendant: 201
`)
	chart, err := Parse(data, FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, "Ada", chart.Name)
	assert.Equal(t, domain.ZodiacSidereal, chart.ZodiacMode())
	assert.Equal(t, []string{"Venus", "Sun", "Ascendant"}, chart.Points.Names())

	asc, ok := chart.Points.Get("Ascendant")
	require.True(t, ok)
	assert.Equal(t, 201.0, asc)
}

func TestParse_YAMLBareMap(t *testing.T) {
	chart, err := Parse([]byte("Moon: 300.1\nMars: 12\n"), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, []string{"Moon", "Mars"}, chart.Points.Names())
	assert.Equal(t, domain.ZodiacTropical, chart.ZodiacMode())
}

func TestParse_JSON(t *testing.T) {
	chart, err := Parse([]byte(`{"Saturn": 350, "Jupiter": 75.25}`), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, []string{"Saturn", "Jupiter"}, chart.Points.Names())

	chart, err = Parse([]byte(`{"name":"x","points":{"Sun":1,"Moon":2}}`), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "x", chart.Name)
	assert.Equal(t, []string{"Sun", "Moon"}, chart.Points.Names())
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]struct {
		data   string
		format Format
	}{
		"non numeric yaml": {data: "Sun: abc\n", format: FormatYAML},
		"non numeric json": {data: `{"Sun":"abc"}`, format: FormatJSON},
		"empty yaml":       {data: "", format: FormatYAML},
		"empty points":     {data: "points: {}\n", format: FormatYAML},
		"json array":       {data: `[1,2]`, format: FormatJSON},
		"yaml list":        {data: "- 1\n- 2\n", format: FormatYAML},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(tc.data), tc.format)
			assert.Error(t, err)
		})
	}

	_, err := Parse([]byte("Sun: abc\n"), FormatYAML)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "natal.JSON")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"Sun": 10}`), 0o600))
	chart, err := Load(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sun"}, chart.Points.Names())

	ymlPath := filepath.Join(dir, "natal.yml")
	require.NoError(t, os.WriteFile(ymlPath, []byte("Sun: 10\n"), 0o600))
	_, err = Load(ymlPath)
	require.NoError(t, err)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatOf("a/b.json"))
	assert.Equal(t, FormatYAML, FormatOf("a/b.yaml"))
	assert.Equal(t, FormatYAML, FormatOf("chart"))
}
