package utils

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// FieldError รายละเอียด error ของแต่ละ field ที่ส่งกลับให้ frontend
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

const bcryptMaxBytes = 72

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// ใช้ชื่อจาก json tag ใน error (password_confirmation แทน PasswordConfirmation)
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		// bcrypt รับได้ไม่เกิน 72 byte (นับ byte ไม่ใช่ตัวอักษร ต่างจาก max)
		_ = validate.RegisterValidation("bcryptmax", func(fl validator.FieldLevel) bool {
			return len(fl.Field().String()) <= bcryptMaxBytes
		})
	})
	return validate
}

// ValidateStruct ตรวจสอบ struct ตาม validate tags
func ValidateStruct(s any) error {
	return getValidator().Struct(s)
}

// GetValidationErrors แปลง validator errors เป็น []FieldError
// ข้อความมาจาก tag `msg_<rule>:"..."` ของ rule ที่ไม่ผ่าน แล้วจึง `msg:"..."`
// ถ้าไม่มีทั้งสองใช้ข้อความกลาง
func GetValidationErrors(s any, err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "", Tag: "", Message: MsgInvalidBody}}
	}

	t := reflect.TypeOf(s)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		message := MsgInvalidBody
		if t != nil && t.Kind() == reflect.Struct {
			if sf, ok := t.FieldByName(fe.StructField()); ok {
				if m := sf.Tag.Get("msg_" + fe.Tag()); m != "" {
					message = m
				} else if m := sf.Tag.Get("msg"); m != "" {
					message = m
				}
			}
		}
		out = append(out, FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: message,
		})
	}
	return out
}
