// controllers/auth.go
package controllers

import (
	"log"
	"net/http"

	"scheduler-backend/config"
	"scheduler-backend/utils"

	"github.com/gin-gonic/gin"
)

type LoginInput struct {
	Password string `json:"password" binding:"required"`
}

// AuthController handles the single-password login. With no password hash
// configured every handler reports auth as disabled.
type AuthController struct {
	cfg config.AuthConfig
}

func NewAuthController(cfg config.AuthConfig) *AuthController {
	return &AuthController{cfg: cfg}
}

// Login exchanges the password for a JWT, also set as the token cookie.
func (ac *AuthController) Login(c *gin.Context) {
	if !ac.cfg.Enabled() {
		utils.RespondWithError(c, http.StatusNotFound, "Authentication is disabled")
		return
	}

	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	token, ok := ac.authenticate(c, input.Password)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
	})
}

// LoginPage renders the password form.
func (ac *AuthController) LoginPage(c *gin.Context) {
	if !ac.cfg.Enabled() {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

// LoginForm is the form submission behind LoginPage.
func (ac *AuthController) LoginForm(c *gin.Context) {
	if !ac.cfg.Enabled() {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	if !utils.CheckPasswordHash(c.PostForm("password"), ac.cfg.PasswordHash) {
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{"Error": "Invalid credentials"})
		return
	}
	if _, ok := ac.issueToken(c); !ok {
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{"Error": "Failed to generate token"})
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (ac *AuthController) Logout(c *gin.Context) {
	c.SetCookie(utils.TokenCookie, "", -1, "/", "", c.Request.TLS != nil, true)
	c.Redirect(http.StatusSeeOther, "/login")
}

func (ac *AuthController) authenticate(c *gin.Context, password string) (string, bool) {
	if !utils.CheckPasswordHash(password, ac.cfg.PasswordHash) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return "", false
	}
	token, ok := ac.issueToken(c)
	if !ok {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return "", false
	}
	return token, true
}

// issueToken signs a token and stores it in the token cookie.
func (ac *AuthController) issueToken(c *gin.Context) (string, bool) {
	token, err := utils.GenerateToken(ac.cfg.JWTSecret, ac.cfg.TokenTTL())
	if err != nil {
		log.Printf("[AUTH] %v", err)
		return "", false
	}

	maxAge := int(ac.cfg.TokenTTL().Seconds())
	c.SetCookie(
		utils.TokenCookie,
		token,
		maxAge,
		"/",
		"",
		c.Request.TLS != nil,
		true,
	)
	return token, true
}
