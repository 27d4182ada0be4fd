package errs

import (
	"fmt"
	"strings"
)

// FieldViolation Нарушение ограничения одного поля записи.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrValidation Кастомная ошибка валидации, несущая полный список нарушений по полям.
// Валидация не останавливается на первом нарушении, а собирает все сразу,
// чтобы клиент мог показать их одним ответом.
type ErrValidation struct {
	Details []FieldViolation
}

func (ve *ErrValidation) Error() string {
	msgs := make([]string, 0, len(ve.Details))
	for _, d := range ve.Details {
		msgs = append(msgs, fmt.Sprintf("%s: %s", d.Field, d.Message))
	}

	return fmt.Sprintf("Ошибка валидации: %s", strings.Join(msgs, "; "))
}

// Add Добавляет нарушение в список.
func (ve *ErrValidation) Add(field, message string) {
	ve.Details = append(ve.Details, FieldViolation{Field: field, Message: message})
}

// HasViolations Возвращает true если было хоть одно нарушение.
func (ve *ErrValidation) HasViolations() bool {
	return len(ve.Details) > 0
}

func NewErrValidation() *ErrValidation {
	return &ErrValidation{}
}

// ErrEmptyUpdate Кастомная ошибка, сообщающая, что в запросе на редактирование не передано ни одного поля.
type ErrEmptyUpdate struct{}

func (eu *ErrEmptyUpdate) Error() string {
	return "В запросе на редактирование не передано ни одного поля"
}

func NewErrEmptyUpdate() *ErrEmptyUpdate {
	return &ErrEmptyUpdate{}
}
