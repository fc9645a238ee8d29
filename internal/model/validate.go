package model

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Имя пользователя: 1–64 символа, латиница, хангыль и цифры.
var userNameRe = regexp.MustCompile(`^[a-zA-Zㄱ-힣0-9]{1,64}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return userNameRe.MatchString(fl.Field().String())
	})
	return v
}

// InvalidField возвращает имя первого поля структуры, не прошедшего проверку.
// Для nil и ошибок, не связанных с валидацией, возвращается пустая строка.
func InvalidField(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].StructField()
	}
	return ""
}
