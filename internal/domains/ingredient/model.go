package ingredient

// Ingredient is catalog reference data, unique by (name, measurement_unit)
type Ingredient struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}
