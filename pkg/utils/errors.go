package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"uptask-api/pkg/logger"
)

// ข้อความที่ frontend แสดงตรงๆ (ภาษาสเปน ตาม UI เดิม)
const (
	MsgInternal        = "Hubo un error"
	MsgUnauthorized    = "No Autorizado"
	MsgInvalidJWT      = "Token No Válido"
	MsgInvalidAction   = "Acción no válida"
	MsgInvalidID       = "ID no válido"
	MsgProjectNotFound = "Proyecto no encontrado"
	MsgTaskNotFound    = "Tarea no encontrada"
	MsgNoteNotFound    = "Nota no encontrada"
	MsgUserNotFound    = "Usuario no encontrado"
	MsgMemberNotFound  = "Usuario No Encontrado"
	MsgInvalidToken    = "Token no válido"
	MsgCORS            = "Error de CORS"
	MsgInvalidBody     = "Datos no válidos"
)

// AppError คือ error ที่คาดไว้ของ domain (not found, conflict, unauthorized ...)
// service คืน AppError, handler แปลงเป็น HTTP response ด้วย HandleError
type AppError struct {
	Status  int
	Code    string
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(status int, code, message string) *AppError {
	return &AppError{Status: status, Code: code, Message: message}
}

func ErrNotFound(message string) *AppError {
	return NewAppError(fiber.StatusNotFound, ErrCodeNotFound, message)
}

func ErrConflict(message string) *AppError {
	return NewAppError(fiber.StatusConflict, ErrCodeConflict, message)
}

func ErrUnauthorized(message string) *AppError {
	return NewAppError(fiber.StatusUnauthorized, ErrCodeUnauthorized, message)
}

func ErrForbidden(message string) *AppError {
	return NewAppError(fiber.StatusForbidden, ErrCodeForbidden, message)
}

func ErrBadRequest(message string) *AppError {
	return NewAppError(fiber.StatusBadRequest, ErrCodeBadRequest, message)
}

// ErrInternal ใช้ตอนที่ต้องการ 500 แบบมี AppError (ข้อความกลาง)
func ErrInternal() *AppError {
	return NewAppError(fiber.StatusInternalServerError, ErrCodeInternalError, MsgInternal)
}

// ErrInvalidJWT ถูกส่งเป็น 500 (พฤติกรรมเดิมของ API ที่ frontend พึ่งอยู่)
func ErrInvalidJWT() *AppError {
	return NewAppError(fiber.StatusInternalServerError, ErrCodeInvalidToken, MsgInvalidJWT)
}

// AsAppError คืน AppError ถ้า err (หรือ error ที่ wrap ไว้) เป็น AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HandleError แปลง error จาก service เป็น response
// error ที่ไม่ใช่ AppError จะกลายเป็น 500 "Hubo un error" เสมอ (รายละเอียดอยู่ใน log เท่านั้น)
func HandleError(c *fiber.Ctx, err error) error {
	if appErr, ok := AsAppError(err); ok {
		return ErrorResponse(c, appErr.Status, appErr.Code, appErr.Message, nil)
	}

	logger.ErrorContext(c.UserContext(), "Unexpected error",
		"method", c.Method(),
		"path", c.Path(),
		"error", err,
	)
	return InternalServerErrorResponse(c)
}
