package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateJWT(userID, "secret", time.Hour)
	require.NoError(t, err)

	parsed, err := ParseJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)

	_, err = ParseJWT(token, "other-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, err := GenerateJWT(userID, "secret", -time.Minute)
	require.NoError(t, err)
	_, err = ParseJWT(expired, "secret")
	assert.ErrorIs(t, err, ErrExpiredToken)

	_, err = ParseJWT("", "secret")
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"bearer", "Bearer abc.def", "abc.def"},
		{"empty", "", ""},
		{"no scheme", "abc.def", ""},
		{"wrong scheme", "Basic abc", ""},
		{"extra parts", "Bearer a b", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTokenFromHeader(tt.header))
		})
	}
}

func TestPassword(t *testing.T) {
	hashed, err := HashPassword("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hashed)
	assert.True(t, CheckPassword("password123", hashed))
	assert.False(t, CheckPassword("password124", hashed))
}

func TestGenerateToken(t *testing.T) {
	for i := 0; i < 20; i++ {
		token, err := GenerateToken()
		require.NoError(t, err)
		require.Len(t, token, 6)
		for _, r := range token {
			assert.True(t, r >= '0' && r <= '9', "non-digit in %q", token)
		}
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestGenerateToken_NoEntropy(t *testing.T) {
	original := randomSource
	randomSource = failingReader{}
	t.Cleanup(func() { randomSource = original })

	token, err := GenerateToken()
	assert.Error(t, err)
	assert.Empty(t, token)
}

type signupForm struct {
	Name         string `json:"name" validate:"required" msg:"El nombre no puede ir vacio"`
	Password     string `json:"password" validate:"required,min=8" msg:"El password es muy corto"`
	Confirmation string `json:"password_confirmation" validate:"eqfield=Password" msg:"Los Password no son iguales"`
	Note         string `json:"note" validate:"max=3"`
}

func TestGetValidationErrors(t *testing.T) {
	form := &signupForm{Password: "short", Confirmation: "other", Note: "demasiado"}

	err := ValidateStruct(form)
	require.Error(t, err)

	fields := GetValidationErrors(form, err)
	require.Len(t, fields, 4)

	byField := map[string]FieldError{}
	for _, f := range fields {
		byField[f.Field] = f
	}
	assert.Equal(t, "El nombre no puede ir vacio", byField["name"].Message)
	assert.Equal(t, "El password es muy corto", byField["password"].Message)
	assert.Equal(t, "Los Password no son iguales", byField["password_confirmation"].Message)
	assert.Equal(t, "eqfield", byField["password_confirmation"].Tag)
	assert.Equal(t, MsgInvalidBody, byField["note"].Message)

	assert.NoError(t, ValidateStruct(&signupForm{Name: "Ana", Password: "password1", Confirmation: "password1"}))

	fallback := GetValidationErrors(form, errors.New("boom"))
	require.Len(t, fallback, 1)
	assert.Equal(t, MsgInvalidBody, fallback[0].Message)
}

type passwordForm struct {
	Password string `json:"password" validate:"required,min=8,bcryptmax" msg:"El password es muy corto" msg_bcryptmax:"El password es muy largo"`
}

func TestBcryptMaxCountsBytes(t *testing.T) {
	tests := []struct {
		name     string
		password string
		message  string
	}{
		{"72 ascii bytes", strings.Repeat("a", 72), ""},
		{"73 ascii bytes", strings.Repeat("a", 73), "El password es muy largo"},
		{"36 two-byte runes", strings.Repeat("ñ", 36), ""},
		{"37 two-byte runes", strings.Repeat("ñ", 37), "El password es muy largo"},
		{"too short", "corto", "El password es muy corto"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := &passwordForm{Password: tt.password}
			err := ValidateStruct(form)
			if tt.message == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			fields := GetValidationErrors(form, err)
			require.Len(t, fields, 1)
			assert.Equal(t, tt.message, fields[0].Message)
		})
	}
}

func TestHandleError(t *testing.T) {
	app := fiber.New()
	app.Get("/conflict", func(c *fiber.Ctx) error {
		return HandleError(c, ErrConflict("El Usuario ya esta registrado"))
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return HandleError(c, errors.New("connection refused"))
	})

	tests := []struct {
		path    string
		status  int
		code    string
		message string
	}{
		{"/conflict", fiber.StatusConflict, ErrCodeConflict, "El Usuario ya esta registrado"},
		{"/boom", fiber.StatusInternalServerError, ErrCodeInternalError, MsgInternal},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			var decoded Response
			require.NoError(t, json.Unmarshal(body, &decoded))
			assert.False(t, decoded.Success)
			require.NotNil(t, decoded.Error)
			assert.Equal(t, tt.code, decoded.Error.Code)
			assert.Equal(t, tt.message, decoded.Error.Message)
		})
	}
}
