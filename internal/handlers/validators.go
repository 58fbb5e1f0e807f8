package handlers

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/SscSPs/hospital_ledger/internal/utils/dates"
)

var registerValidatorsOnce sync.Once

// registerValidators adds the "isodate" tag (strict YYYY-MM-DD) to gin's validator engine.
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("isodate", isISODate)
		}
	})
}

func isISODate(fl validator.FieldLevel) bool {
	_, err := dates.Parse(fl.Field().String())
	return err == nil
}
