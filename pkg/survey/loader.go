package survey

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"go.uber.org/zap"
)

// Schema maps CSV header names onto the survey columns.
type Schema struct {
	Store    string `yaml:"store" json:"store"`
	Gender   string `yaml:"gender" json:"gender"`
	Overall  string `yaml:"overall" json:"overall"`
	Food     string `yaml:"food" json:"food"`
	Service  string `yaml:"service" json:"service"`
	Price    string `yaml:"price" json:"price"`
	Interior string `yaml:"interior" json:"interior"`
}

// DefaultSchema matches the column headers of the customer satisfaction
// survey export.
func DefaultSchema() Schema {
	return Schema{
		Store:    "store",
		Gender:   "gender",
		Overall:  "score",
		Food:     "food",
		Service:  "service",
		Price:    "money",
		Interior: "interior",
	}
}

func (s Schema) numericColumns() []string {
	return []string{s.Overall, s.Food, s.Service, s.Price, s.Interior}
}

func (s Schema) categoricalColumns() []string {
	return []string{s.Store, s.Gender}
}

// Loader reads a survey CSV into a Dataset.
type Loader struct {
	schema Schema
	logger *zap.Logger
}

// NewLoader constructs a Loader. A nil logger falls back to a no-op logger.
func NewLoader(schema Schema, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{schema: schema, logger: logger}
}

// Load reads and validates the CSV at path. Rows with malformed numeric
// cells or blank categorical cells are dropped and counted; the caller
// decides via Dataset.Validate whether enough survived.
func (l *Loader) Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open survey file: %w", err)
	}
	defer f.Close()

	types := make(map[string]series.Type)
	for _, col := range l.schema.categoricalColumns() {
		types[col] = series.String
	}
	for _, col := range l.schema.numericColumns() {
		types[col] = series.Float
	}

	df := dataframe.ReadCSV(f, dataframe.WithTypes(types), dataframe.HasHeader(true))
	if df.Err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", df.Err)
	}

	if err := l.checkColumns(df); err != nil {
		return nil, err
	}

	stores := df.Col(l.schema.Store).Records()
	genders := df.Col(l.schema.Gender).Records()
	numeric := make(map[string][]float64, 5)
	for _, col := range l.schema.numericColumns() {
		numeric[col] = df.Col(col).Float()
	}

	quality := Quality{
		RowsRead:    df.Nrow(),
		DropReasons: make(map[string]int),
	}

	responses := make([]Response, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		store := strings.TrimSpace(stores[i])
		gender := strings.TrimSpace(genders[i])
		if store == "" || store == "NaN" {
			quality.DropReasons["missing_store"]++
			continue
		}
		if gender == "" || gender == "NaN" {
			quality.DropReasons["missing_gender"]++
			continue
		}

		r := Response{
			Store:    store,
			Gender:   gender,
			Overall:  numeric[l.schema.Overall][i],
			Food:     numeric[l.schema.Food][i],
			Service:  numeric[l.schema.Service][i],
			Price:    numeric[l.schema.Price][i],
			Interior: numeric[l.schema.Interior][i],
		}
		if hasNaN(r) {
			quality.DropReasons["malformed_numeric"]++
			continue
		}
		responses = append(responses, r)
	}

	quality.RowsKept = len(responses)
	quality.RowsDropped = quality.RowsRead - quality.RowsKept
	if quality.RowsDropped > 0 {
		l.logger.Warn("dropped survey rows during load",
			zap.Int("dropped", quality.RowsDropped),
			zap.Any("reasons", quality.DropReasons))
	}

	ds := newDataset(responses, quality)
	l.logger.Info("survey loaded",
		zap.String("path", path),
		zap.Int("rows", ds.Len()),
		zap.Strings("stores", ds.Stores),
		zap.Strings("genders", ds.Genders))
	return ds, nil
}

func (l *Loader) checkColumns(df dataframe.DataFrame) error {
	present := make(map[string]struct{}, len(df.Names()))
	for _, name := range df.Names() {
		present[name] = struct{}{}
	}
	var missing []string
	for _, col := range append(l.schema.categoricalColumns(), l.schema.numericColumns()...) {
		if _, ok := present[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("survey file is missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

func hasNaN(r Response) bool {
	for _, v := range []float64{r.Overall, r.Food, r.Service, r.Price, r.Interior} {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}
