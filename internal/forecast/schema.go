package forecast

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/go-playground/validator/v10"

	"github.com/Samulko/SurfForcast/internal/domain"
)

// validate is shared across requests; validator.Validate caches struct
// metadata and is safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// valid_iso rejects the invalid-timestamp sentinel so it can never leak
	// into the wire format as if it were a real timestamp.
	mustRegister(v, "valid_iso", func(fl validator.FieldLevel) bool {
		return fl.Field().String() != domain.InvalidTimestamp
	})
	mustRegister(v, "valid_cardinal", func(fl validator.FieldLevel) bool {
		return slices.Contains(domain.CardinalLabels[:], fl.Field().String())
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// ValidateSeries checks every merged point against the declared output schema.
// The merge only copies well-typed source values, so a failure here means the
// upstream format drifted out from under us.
func ValidateSeries(series *domain.ForecastSeries) error {
	for i := range series.Forecast {
		if err := validate.Struct(&series.Forecast[i]); err != nil {
			return fmt.Errorf("forecast point %d (timestamp %d): %w",
				i, series.Forecast[i].Timestamp, err)
		}
	}
	return nil
}

// EncodeSeries serializes a series to the wire format. Absent optional fields
// are omitted entirely, never emitted as null, and warnings stay out of the
// payload.
func EncodeSeries(series *domain.ForecastSeries) ([]byte, error) {
	data, err := json.Marshal(series)
	if err != nil {
		return nil, fmt.Errorf("encode forecast series: %w", err)
	}
	return data, nil
}
