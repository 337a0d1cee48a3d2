package validator

import (
	"github.com/accessmap-service/internal/domain"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// accessibility_attr: значение из закрытого набора категорий доступности
	_ = validate.RegisterValidation("accessibility_attr", func(fl validator.FieldLevel) bool {
		return domain.IsValidAttribute(domain.AccessibilityAttribute(fl.Field().String()))
	})
}

// Validate - валидация структуры
func Validate(s interface{}) error {
	return validate.Struct(s)
}

// GetValidator - получить валидатор для кастомной конфигурации
func GetValidator() *validator.Validate {
	return validate
}
