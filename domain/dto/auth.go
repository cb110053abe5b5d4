package dto

import (
	"strings"

	"github.com/google/uuid"
)

// ข้อความใน tag msg ถูกส่งกลับเป็น error.message ตรงๆ
// tag msg_<rule> ใช้แทน msg เมื่อ rule นั้นไม่ผ่าน

// NormalizeEmail email เก็บและค้นหาเป็นตัวพิมพ์เล็กเสมอ
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Normalizer ถูกเรียกหลัง parse body ก่อน validate
type Normalizer interface {
	Normalize()
}

type CreateAccountRequest struct {
	Name                 string `json:"name" validate:"required" msg:"El nombre no puede ir vacio"`
	Email                string `json:"email" validate:"required,email" msg:"E-mail no válido"`
	Password             string `json:"password" validate:"required,min=8,bcryptmax" msg:"El password es muy corto, minimo 8 caracteres" msg_bcryptmax:"El password es muy largo, maximo 72 caracteres"`
	PasswordConfirmation string `json:"password_confirmation" validate:"eqfield=Password" msg:"Los Password no son iguales"`
}

func (r *CreateAccountRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = NormalizeEmail(r.Email)
}

type TokenRequest struct {
	Token string `json:"token" validate:"required" msg:"El Token no puede ir vacio"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" msg:"E-mail no válido"`
	Password string `json:"password" validate:"required" msg:"El password no puede ir vacio"`
}

func (r *LoginRequest) Normalize() { r.Email = NormalizeEmail(r.Email) }

type EmailRequest struct {
	Email string `json:"email" validate:"required,email" msg:"E-mail no válido"`
}

func (r *EmailRequest) Normalize() { r.Email = NormalizeEmail(r.Email) }

type NewPasswordRequest struct {
	Password             string `json:"password" validate:"required,min=8,bcryptmax" msg:"El password es muy corto, minimo 8 caracteres" msg_bcryptmax:"El password es muy largo, maximo 72 caracteres"`
	PasswordConfirmation string `json:"password_confirmation" validate:"eqfield=Password" msg:"Los Password no son iguales"`
}

type UpdateProfileRequest struct {
	Name  string `json:"name" validate:"required" msg:"El nombre no puede ir vacio"`
	Email string `json:"email" validate:"required,email" msg:"E-mail no válido"`
}

func (r *UpdateProfileRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = NormalizeEmail(r.Email)
}

type UpdateCurrentPasswordRequest struct {
	CurrentPassword      string `json:"current_password" validate:"required" msg:"El password actual no puede ir vacio"`
	Password             string `json:"password" validate:"required,min=8,bcryptmax" msg:"El password es muy corto, minimo 8 caracteres" msg_bcryptmax:"El password es muy largo, maximo 72 caracteres"`
	PasswordConfirmation string `json:"password_confirmation" validate:"eqfield=Password" msg:"Los Password no son iguales"`
}

type CheckPasswordRequest struct {
	Password string `json:"password" validate:"required" msg:"El password no puede ir vacio"`
}

// UserResponse projection ที่ไม่มี password
type UserResponse struct {
	ID    uuid.UUID `json:"_id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}
