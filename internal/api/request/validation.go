package request

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/khairallah17/anomaly-tracker/internal/model"
)

var validate = validator.New()

func init() {
	// anomaly_status accepts canonical statuses and their legacy/French
	// aliases; normalization happens separately at decode time.
	validate.RegisterValidation("anomaly_status", func(fl validator.FieldLevel) bool {
		_, ok := model.NormalizeStatus(fl.Field().String())
		return ok
	})
}

func Decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	return nil
}
