package handler

import (
	"errors"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/rehanFauzan/uangbro-api/internal/auth"
	"github.com/rehanFauzan/uangbro-api/internal/models"
	"github.com/rehanFauzan/uangbro-api/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthHandler serves registration, login and the password-reset flow.
type AuthHandler struct {
	DB          *gorm.DB
	BcryptCost  int
	ResetSecret string
	ResetTTL    time.Duration
}

func NewAuthHandler(db *gorm.DB, bcryptCost int, resetSecret string, resetExpireMinutes int) *AuthHandler {
	if resetExpireMinutes <= 0 {
		resetExpireMinutes = 60
	}
	return &AuthHandler{
		DB:          db,
		BcryptCost:  bcryptCost,
		ResetSecret: resetSecret,
		ResetTTL:    time.Duration(resetExpireMinutes) * time.Minute,
	}
}

var usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)

// ---------- register ----------

type registerReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6,max=64"`
	Email    string `json:"email" binding:"required,email"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.FailMsg(c, util.KindValidation, "username, password & email required")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if !usernameRe.MatchString(req.Username) {
		util.FailMsg(c, util.KindValidation, "Username must be 3-20 letters, digits or underscores")
		return
	}

	var count int64
	if err := h.DB.Model(&models.User{}).
		Where("LOWER(username) = LOWER(?)", req.Username).
		Count(&count).Error; err != nil {
		log.Printf("check username: %v", err)
		util.Fail(c, util.KindStorage)
		return
	}
	if count > 0 {
		util.FailMsg(c, util.KindValidation, "Username already exists")
		return
	}

	hash, err := util.HashPassword(req.Password, h.BcryptCost)
	if err != nil {
		log.Printf("hash password: %v", err)
		util.Fail(c, util.KindStorage)
		return
	}

	// credential is minted right away at registration
	token, err := auth.NewAPIToken()
	if err != nil {
		log.Printf("mint token: %v", err)
		util.Fail(c, util.KindStorage)
		return
	}

	user := models.User{
		Username:     req.Username,
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: hash,
		APIToken:     token,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		log.Printf("create user: %v", err)
		util.Fail(c, util.KindStorage)
		return
	}

	util.Success(c, util.Response{
		"api_token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

// ---------- login ----------

type loginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.FailMsg(c, util.KindValidation, "username & password required")
		return
	}

	req.Username = strings.TrimSpace(req.Username)

	var user models.User
	if err := h.DB.Where("LOWER(username) = LOWER(?)", req.Username).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.FailMsg(c, util.KindUnauthenticated, "Invalid credentials")
		} else {
			log.Printf("lookup user: %v", err)
			util.Fail(c, util.KindStorage)
		}
		return
	}

	if !util.CheckPassword(req.Password, user.PasswordHash) {
		util.FailMsg(c, util.KindUnauthenticated, "Invalid credentials")
		return
	}

	// accounts from before token auth have no credential yet; mint one on
	// their first successful login
	if user.APIToken == "" {
		token, err := auth.NewAPIToken()
		if err != nil {
			log.Printf("mint token: %v", err)
			util.Fail(c, util.KindStorage)
			return
		}
		if err := h.DB.Model(&user).Update("api_token", token).Error; err != nil {
			log.Printf("store token: %v", err)
			util.Fail(c, util.KindStorage)
			return
		}
		user.APIToken = token
	}

	util.Success(c, util.Response{
		"api_token": user.APIToken,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

// ---------- forgot / reset password ----------

type forgotPasswordReq struct {
	Username string `json:"username" binding:"required"`
}

// ForgotPassword issues a short-lived reset token for the account. There is
// no mailer in this deployment; the token is handed back to the client,
// which presents it to ResetPassword.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.FailMsg(c, util.KindValidation, "username required")
		return
	}

	req.Username = strings.TrimSpace(req.Username)

	var user models.User
	if err := h.DB.Where("LOWER(username) = LOWER(?)", req.Username).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Fail(c, util.KindNotFound)
		} else {
			log.Printf("lookup user: %v", err)
			util.Fail(c, util.KindStorage)
		}
		return
	}

	token, err := auth.GenerateResetToken(h.ResetSecret, user.Username, h.ResetTTL)
	if err != nil {
		log.Printf("generate reset token: %v", err)
		util.Fail(c, util.KindStorage)
		return
	}

	util.Success(c, util.Response{
		"username":    user.Username,
		"email":       user.Email,
		"reset_token": token,
	})
}

type resetPasswordReq struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=6,max=64"`
}

// ResetPassword verifies the reset token and re-hashes the password.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.FailMsg(c, util.KindValidation, "token & password required")
		return
	}

	username, err := auth.ParseResetToken(h.ResetSecret, req.Token)
	if err != nil {
		util.FailMsg(c, util.KindUnauthenticated, "Invalid or expired reset token")
		return
	}

	hash, err := util.HashPassword(req.Password, h.BcryptCost)
	if err != nil {
		log.Printf("hash password: %v", err)
		util.Fail(c, util.KindStorage)
		return
	}

	res := h.DB.Model(&models.User{}).
		Where("username = ?", username).
		Update("password_hash", hash)
	if res.Error != nil {
		log.Printf("update password: %v", res.Error)
		util.Fail(c, util.KindStorage)
		return
	}
	if res.RowsAffected == 0 {
		util.Fail(c, util.KindNotFound)
		return
	}

	util.Success(c, util.Response{
		"message": "Password updated",
	})
}
