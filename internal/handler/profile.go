package handler

import (
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rehanFauzan/uangbro-api/internal/middleware"
	"github.com/rehanFauzan/uangbro-api/internal/models"
	"github.com/rehanFauzan/uangbro-api/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ProfileHandler updates account details and serves profile photos.
type ProfileHandler struct {
	DB        *gorm.DB
	UploadDir string
}

func NewProfileHandler(db *gorm.DB, uploadDir string) *ProfileHandler {
	return &ProfileHandler{DB: db, UploadDir: uploadDir}
}

type updateProfileReq struct {
	Username    string `json:"username"`
	ImageBase64 string `json:"image_base64"`
}

// UpdateProfile renames the account and/or stores a new profile photo sent
// as base64. Strict auth.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Fail(c, util.KindUnauthenticated)
		return
	}

	var req updateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, util.KindValidation)
		return
	}

	updates := map[string]interface{}{}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username != "" {
		if !usernameRe.MatchString(req.Username) {
			util.FailMsg(c, util.KindValidation, "Username must be 3-20 letters, digits or underscores")
			return
		}
		updates["username"] = req.Username
	}

	if req.ImageBase64 != "" {
		img, err := base64.StdEncoding.DecodeString(req.ImageBase64)
		if err != nil {
			util.FailMsg(c, util.KindValidation, "Invalid image data")
			return
		}

		filename := fmt.Sprintf("profile_%d_%d.jpg", user.ID, time.Now().Unix())
		path := filepath.Join(h.UploadDir, filename)
		if err := os.WriteFile(path, img, 0o644); err != nil {
			log.Printf("save image: %v", err)
			util.Fail(c, util.KindStorage)
			return
		}

		// photos are served back through GetImage
		updates["profile_photo"] = "/api/images/" + filename
	}

	if len(updates) == 0 {
		util.FailMsg(c, util.KindValidation, "Nothing to update")
		return
	}

	if err := h.DB.Model(&models.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
		log.Printf("update profile: %v", err)
		util.Fail(c, util.KindStorage)
		return
	}

	resp := util.Response{"message": "Profile updated"}
	if v, ok := updates["username"]; ok {
		resp["username"] = v
	}
	if v, ok := updates["profile_photo"]; ok {
		resp["profile_photo"] = v
	}
	util.Success(c, resp)
}

// GetImage serves an uploaded profile photo. Photos are not secret (the URL
// is handed out in profile responses), so no auth here, but the filename is
// flattened to its base to keep requests inside the upload dir.
func (h *ProfileHandler) GetImage(c *gin.Context) {
	file := filepath.Base(c.Param("file"))
	if file == "." || file == "/" || file == "" {
		util.Fail(c, util.KindNotFound)
		return
	}

	path := filepath.Join(h.UploadDir, file)
	if _, err := os.Stat(path); err != nil {
		util.Fail(c, util.KindNotFound)
		return
	}

	c.File(path)
}

// Me returns the authenticated caller's account details.
func (h *ProfileHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Fail(c, util.KindUnauthenticated)
		return
	}

	util.Success(c, util.Response{
		"user": gin.H{
			"id":            user.ID,
			"username":      user.Username,
			"email":         user.Email,
			"profile_photo": user.ProfilePhoto,
			"created_at":    user.CreatedAt,
		},
	})
}
