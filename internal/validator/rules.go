package validator

import (
	"log"

	"bloodbridge_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует все кастомные функции валидации в
// переданном экземпляре валидатора.
func registerCustomRules(v *validator.Validate) {

	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Если правило не удалось зарегистрировать, приложение
			// не должно запускаться, так как это критическая ошибка.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'is-blood-group': Проверяет, что группа крови валидна
	mustRegister("is-blood-group", validateBloodGroup)

	// 'is-urgency': Проверяет уровень срочности запроса
	mustRegister("is-urgency", validateUrgency)
}

// --- Функции валидации ---

func validateBloodGroup(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 'required' обрабатывает пустые
	}
	return models.BloodGroup(value).IsValid()
}

func validateUrgency(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.UrgencyLevel(value).IsValid()
}
