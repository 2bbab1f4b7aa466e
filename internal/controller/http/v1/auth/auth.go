package auth

import (
	"net/http"

	"github.com/GabrielArdy/sigap-backend/foundation/web"
	"github.com/GabrielArdy/sigap-backend/internal/auth"
	"github.com/GabrielArdy/sigap-backend/internal/repository/postgres/user"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

type Controller struct {
	user User
	auth *auth.Auth
}

func NewController(user User, auth *auth.Auth) *Controller {
	return &Controller{user: user, auth: auth}
}

func (uc Controller) SignIn(c *web.Context) error {
	var data user.SignInRequest

	err := c.BindFunc(&data, "Email", "Password")
	if err != nil {
		return c.RespondError(err)
	}

	detail, err := uc.user.GetByEmail(c.Ctx, data.Email)
	if err != nil {
		// Same answer for unknown email and wrong password.
		return c.RespondError(web.NewRequestError(errors.New("incorrect email or password"), http.StatusUnauthorized))
	}

	if detail.Password == nil || detail.UserID == nil || detail.Role == nil {
		return c.RespondError(web.NewRequestError(errors.New("incorrect email or password"), http.StatusUnauthorized))
	}

	if err = bcrypt.CompareHashAndPassword([]byte(*detail.Password), []byte(data.Password)); err != nil {
		return c.RespondError(web.NewRequestError(errors.New("incorrect email or password"), http.StatusUnauthorized))
	}

	accessToken, refreshToken, err := uc.auth.GenerateTokens(*detail.UserID, *detail.Role)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"status": true,
		"data": map[string]string{
			"access_token":  accessToken,
			"refresh_token": refreshToken,
		},
	}, http.StatusOK)
}

func (uc Controller) RefreshToken(c *web.Context) error {
	var data RefreshRequest

	err := c.BindFunc(&data, "RefreshToken")
	if err != nil {
		return c.RespondError(err)
	}

	claims, err := uc.auth.ValidateRefreshToken(data.RefreshToken)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusUnauthorized))
	}

	// The user may have been removed or demoted since the refresh token
	// was issued.
	detail, err := uc.user.GetByUserID(c.Ctx, claims.UserId)
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.New("user no longer active"), http.StatusUnauthorized))
	}
	if detail.Role == nil {
		return c.RespondError(web.NewRequestError(errors.New("user no longer active"), http.StatusUnauthorized))
	}

	accessToken, refreshToken, err := uc.auth.GenerateTokens(claims.UserId, *detail.Role)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"status": true,
		"data": map[string]string{
			"access_token":  accessToken,
			"refresh_token": refreshToken,
		},
	}, http.StatusOK)
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" form:"refresh_token"`
}
