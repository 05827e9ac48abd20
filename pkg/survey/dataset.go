package survey

import (
	"fmt"
	"sort"
)

// Driver identifies one of the numeric survey attributes hypothesized to
// influence overall satisfaction.
type Driver string

const (
	DriverFood     Driver = "food"
	DriverService  Driver = "service"
	DriverPrice    Driver = "price"
	DriverInterior Driver = "interior"
)

// Drivers lists the regression predictors in report order.
var Drivers = []Driver{DriverFood, DriverService, DriverPrice, DriverInterior}

// Response is a single survey row after coercion and validation.
type Response struct {
	Store    string  `json:"store"`
	Gender   string  `json:"gender"`
	Overall  float64 `json:"overall"`
	Food     float64 `json:"food"`
	Service  float64 `json:"service"`
	Price    float64 `json:"price"`
	Interior float64 `json:"interior"`
}

// Quality accounts for rows discarded during loading.
type Quality struct {
	RowsRead    int            `json:"rowsRead"`
	RowsKept    int            `json:"rowsKept"`
	RowsDropped int            `json:"rowsDropped"`
	DropReasons map[string]int `json:"dropReasons"`
}

// Dataset holds the loaded survey with its categorical levels. Stores and
// Genders are sorted so that downstream group iteration is deterministic.
type Dataset struct {
	Responses []Response `json:"responses"`
	Stores    []string   `json:"stores"`
	Genders   []string   `json:"genders"`
	Quality   Quality    `json:"quality"`
}

func newDataset(responses []Response, quality Quality) *Dataset {
	storeSet := make(map[string]struct{})
	genderSet := make(map[string]struct{})
	for _, r := range responses {
		storeSet[r.Store] = struct{}{}
		genderSet[r.Gender] = struct{}{}
	}

	d := &Dataset{
		Responses: responses,
		Stores:    make([]string, 0, len(storeSet)),
		Genders:   make([]string, 0, len(genderSet)),
		Quality:   quality,
	}
	for s := range storeSet {
		d.Stores = append(d.Stores, s)
	}
	for g := range genderSet {
		d.Genders = append(d.Genders, g)
	}
	sort.Strings(d.Stores)
	sort.Strings(d.Genders)
	return d
}

// Len returns the number of kept responses.
func (d *Dataset) Len() int { return len(d.Responses) }

// Value extracts a numeric column from a response.
func (r Response) Value(driver Driver) float64 {
	switch driver {
	case DriverFood:
		return r.Food
	case DriverService:
		return r.Service
	case DriverPrice:
		return r.Price
	case DriverInterior:
		return r.Interior
	}
	return r.Overall
}

// Overall returns the overall satisfaction column.
func (d *Dataset) Overall() []float64 {
	out := make([]float64, len(d.Responses))
	for i, r := range d.Responses {
		out[i] = r.Overall
	}
	return out
}

// Column returns one driver column in row order.
func (d *Dataset) Column(driver Driver) []float64 {
	out := make([]float64, len(d.Responses))
	for i, r := range d.Responses {
		out[i] = r.Value(driver)
	}
	return out
}

// OverallByStore groups the overall satisfaction score by store level.
func (d *Dataset) OverallByStore() map[string][]float64 {
	groups := make(map[string][]float64, len(d.Stores))
	for _, r := range d.Responses {
		groups[r.Store] = append(groups[r.Store], r.Overall)
	}
	return groups
}

// OverallByGender groups the overall satisfaction score by gender level.
func (d *Dataset) OverallByGender() map[string][]float64 {
	groups := make(map[string][]float64, len(d.Genders))
	for _, r := range d.Responses {
		groups[r.Gender] = append(groups[r.Gender], r.Overall)
	}
	return groups
}

// DriverByStore groups a driver column by store level.
func (d *Dataset) DriverByStore(driver Driver) map[string][]float64 {
	groups := make(map[string][]float64, len(d.Stores))
	for _, r := range d.Responses {
		groups[r.Store] = append(groups[r.Store], r.Value(driver))
	}
	return groups
}

// Validate checks that the dataset can support the analysis battery.
func (d *Dataset) Validate(minPerStore int) error {
	if len(d.Responses) == 0 {
		return fmt.Errorf("dataset is empty after loading")
	}
	if len(d.Stores) < 2 {
		return fmt.Errorf("need at least 2 stores for group comparison, got %d", len(d.Stores))
	}
	counts := make(map[string]int)
	for _, r := range d.Responses {
		counts[r.Store]++
	}
	for _, store := range d.Stores {
		if counts[store] < minPerStore {
			return fmt.Errorf("store %q has %d responses, need at least %d", store, counts[store], minPerStore)
		}
	}
	return nil
}
