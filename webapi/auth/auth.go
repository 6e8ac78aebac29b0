package auth

import (
	"github.com/gofiber/fiber/v2"

	authsvc "github.com/amirasaad/currency-proxy/pkg/service/auth"
	"github.com/amirasaad/currency-proxy/webapi/common"
)

// Routes registers the authentication endpoints.
func Routes(app *fiber.App, svc *authsvc.Service) {
	group := app.Group("/api/auth")
	group.Post("/login", Login(svc))
}

// Login validates credentials and returns a signed JWT.
// @Summary Login
// @Description Validate credentials and mint a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /api/auth/login [post]
func Login(svc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := common.BindAndValidate[LoginRequest](c)
		if err != nil {
			return nil
		}

		token, err := svc.Login(c.UserContext(), req.Username, req.Password)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Login failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Login successful", LoginResponse{Token: token})
	}
}
