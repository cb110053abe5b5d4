package handlers

import (
	"github.com/gofiber/fiber/v2"

	"uptask-api/domain/dto"
	"uptask-api/domain/services"
	"uptask-api/pkg/utils"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (h *AuthHandler) CreateAccount(c *fiber.Ctx) error {
	var req dto.CreateAccountRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	if err := h.authService.CreateAccount(c.UserContext(), &req); err != nil {
		return utils.HandleError(c, err)
	}
	return utils.MessageResponse(c, "Cuenta creada, revisa tu email para confirmarla")
}

func (h *AuthHandler) ConfirmAccount(c *fiber.Ctx) error {
	var req dto.TokenRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	if err := h.authService.ConfirmAccount(c.UserContext(), req.Token); err != nil {
		return utils.HandleError(c, err)
	}
	return utils.MessageResponse(c, "Cuenta confirmada correctamente")
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	token, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, token)
}

func (h *AuthHandler) RequestConfirmationCode(c *fiber.Ctx) error {
	var req dto.EmailRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	if err := h.authService.RequestConfirmationCode(c.UserContext(), req.Email); err != nil {
		return utils.HandleError(c, err)
	}
	return utils.MessageResponse(c, "Se envió un nuevo token a tu e-mail")
}

func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.EmailRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	if err := h.authService.ForgotPassword(c.UserContext(), req.Email); err != nil {
		return utils.HandleError(c, err)
	}
	return utils.MessageResponse(c, "Revisa tu email para instrucciones")
}

func (h *AuthHandler) ValidateToken(c *fiber.Ctx) error {
	var req dto.TokenRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	if err := h.authService.ValidateToken(c.UserContext(), req.Token); err != nil {
		return utils.HandleError(c, err)
	}
	return utils.MessageResponse(c, "Token válido, Define tu nuevo password")
}

func (h *AuthHandler) UpdatePasswordWithToken(c *fiber.Ctx) error {
	token := c.Params("token")
	if !isNumeric(token) {
		return utils.BadRequestResponse(c, utils.MsgInvalidToken)
	}

	var req dto.NewPasswordRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	if err := h.authService.UpdatePasswordWithToken(c.UserContext(), token, &req); err != nil {
		return utils.HandleError(c, err)
	}
	return utils.MessageResponse(c, "El password se modificó correctamente")
}

// User คืน user ที่ login อยู่ (projection จาก Authenticate)
func (h *AuthHandler) User(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}
	return utils.SuccessResponse(c, user)
}

func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	var req dto.UpdateProfileRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	if err := h.authService.UpdateProfile(c.UserContext(), user.ID, &req); err != nil {
		return utils.HandleError(c, err)
	}
	return utils.MessageResponse(c, "Perfil actualizado correctamente")
}

func (h *AuthHandler) UpdateCurrentPassword(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	var req dto.UpdateCurrentPasswordRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	if err := h.authService.UpdateCurrentPassword(c.UserContext(), user.ID, &req); err != nil {
		return utils.HandleError(c, err)
	}
	return utils.MessageResponse(c, "El Password se modificó correctamente")
}

func (h *AuthHandler) CheckPassword(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	var req dto.CheckPasswordRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	if err := h.authService.CheckPassword(c.UserContext(), user.ID, req.Password); err != nil {
		return utils.HandleError(c, err)
	}
	return utils.MessageResponse(c, "Password Correcto")
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
