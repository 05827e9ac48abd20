package survey

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "survey.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validCSV = `store,gender,score,food,service,money,interior
A,F,4,4,5,3,4
A,M,3,3,4,3,3
B,F,5,5,5,4,5
B,M,2,2,3,2,2
C,F,4,4,4,4,4
C,M,3,3,3,3,3
`

func TestLoadValidFile(t *testing.T) {
	loader := NewLoader(DefaultSchema(), nil)
	ds, err := loader.Load(writeCSV(t, validCSV))
	require.NoError(t, err)

	assert.Equal(t, 6, ds.Len())
	assert.Equal(t, []string{"A", "B", "C"}, ds.Stores)
	assert.Equal(t, []string{"F", "M"}, ds.Genders)
	assert.Equal(t, 6, ds.Quality.RowsRead)
	assert.Equal(t, 0, ds.Quality.RowsDropped)
}

func TestLoadDropsMalformedRows(t *testing.T) {
	csv := `store,gender,score,food,service,money,interior
A,F,4,4,5,3,4
A,M,bad,3,4,3,3
,F,5,5,5,4,5
B,M,2,2,3,2,2
`
	loader := NewLoader(DefaultSchema(), nil)
	ds, err := loader.Load(writeCSV(t, csv))
	require.NoError(t, err)

	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, 2, ds.Quality.RowsDropped)
	assert.Equal(t, 1, ds.Quality.DropReasons["malformed_numeric"])
	assert.Equal(t, 1, ds.Quality.DropReasons["missing_store"])
}

func TestLoadMissingColumn(t *testing.T) {
	csv := `store,gender,score,food,service,money
A,F,4,4,5,3
`
	loader := NewLoader(DefaultSchema(), nil)
	_, err := loader.Load(writeCSV(t, csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interior")
}

func TestLoadMissingFile(t *testing.T) {
	loader := NewLoader(DefaultSchema(), nil)
	_, err := loader.Load(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
}

func TestGroupAccessors(t *testing.T) {
	loader := NewLoader(DefaultSchema(), nil)
	ds, err := loader.Load(writeCSV(t, validCSV))
	require.NoError(t, err)

	byStore := ds.OverallByStore()
	require.Len(t, byStore, 3)
	assert.Equal(t, []float64{4, 3}, byStore["A"])

	byGender := ds.OverallByGender()
	require.Len(t, byGender, 2)
	assert.Equal(t, []float64{4, 5, 4}, byGender["F"])

	food := ds.Column(DriverFood)
	assert.Equal(t, []float64{4, 3, 5, 2, 4, 3}, food)
}

func TestValidateMinPerStore(t *testing.T) {
	loader := NewLoader(DefaultSchema(), nil)
	ds, err := loader.Load(writeCSV(t, validCSV))
	require.NoError(t, err)

	assert.NoError(t, ds.Validate(2))
	assert.Error(t, ds.Validate(3))
}
