package handler

import (
	"errors"
	"mime/multipart"
	"net/mail"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"artfolio/auth"
	"artfolio/middleware"
	"artfolio/models"
	"artfolio/storage"
)

// profileFolder is where the relay stores profile pictures.
const profileFolder = "profiles"

// AccountHandler serves signup, login and the caller's profile.
type AccountHandler struct {
	DB       *gorm.DB
	Auth     *auth.Service
	Uploader storage.Uploader
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Account models.Profile `json:"account"`
	Token   string         `json:"token"`
}

func isEmail(addr string) bool {
	_, err := mail.ParseAddress(addr)
	return err == nil
}

// Signup registers a new account and returns it with a signed credential.
func (h *AccountHandler) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid request body",
			"data":    nil,
		})
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Name, email and password are required",
			"data":    nil,
		})
	}
	if !isEmail(req.Email) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid email address",
			"data":    nil,
		})
	}
	if len(req.Password) < 6 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Password must be at least 6 characters",
			"data":    nil,
		})
	}

	var existing models.Account
	if err := h.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Email already registered",
			"data":    nil,
		})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return serverError(c, err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return serverError(c, err)
	}

	account := models.Account{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		IsArtist: true,
	}
	if err := h.DB.Create(&account).Error; err != nil {
		// Unique index on email catches the race with a concurrent signup;
		// anything else is a store failure.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status":  "error",
				"message": "Email already registered",
				"data":    nil,
			})
		}
		return serverError(c, err)
	}

	token, err := h.Auth.IssueToken(account.ID, account.Name, account.Email)
	if err != nil {
		return serverError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "Account created successfully",
		"data":    authResponse{Account: account.Profile(), Token: token},
	})
}

// Login authenticates by email and password and returns a credential.
func (h *AccountHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid request body",
			"data":    nil,
		})
	}

	var account models.Account
	err := h.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  "error",
				"message": "Invalid email or password",
				"data":    nil,
			})
		}
		return serverError(c, err)
	}

	if !auth.CheckPasswordHash(req.Password, account.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid email or password",
			"data":    nil,
		})
	}

	token, err := h.Auth.IssueToken(account.ID, account.Name, account.Email)
	if err != nil {
		return serverError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Login successful",
		"data":    authResponse{Account: account.Profile(), Token: token},
	})
}

// GetProfile returns the authenticated caller's sanitized profile.
func (h *AccountHandler) GetProfile(c *fiber.Ctx) error {
	accountID, _ := middleware.AccountID(c)

	var account models.Account
	if err := h.DB.First(&account, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"status":  "error",
				"message": "Account not found",
				"data":    nil,
			})
		}
		return serverError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Profile found",
		"data":    account.Profile(),
	})
}

// profilePatch carries the profile fields present in an update request.
// A nil field was not supplied and keeps its prior value.
type profilePatch struct {
	Name      *string
	Bio       *string
	Website   *string
	Instagram *string
	Twitter   *string
	Facebook  *string
}

func patchFromForm(form *multipart.Form) profilePatch {
	get := func(key string) *string {
		if vals, ok := form.Value[key]; ok && len(vals) > 0 {
			v := vals[0]
			return &v
		}
		return nil
	}
	return profilePatch{
		Name:      get("name"),
		Bio:       get("bio"),
		Website:   get("website"),
		Instagram: get("instagram"),
		Twitter:   get("twitter"),
		Facebook:  get("facebook"),
	}
}

func (p profilePatch) apply(account *models.Account) {
	if p.Name != nil {
		account.Name = *p.Name
	}
	if p.Bio != nil {
		account.Bio = *p.Bio
	}
	if p.Website != nil {
		account.Website = *p.Website
	}
	if p.Instagram != nil {
		account.Instagram = *p.Instagram
	}
	if p.Twitter != nil {
		account.Twitter = *p.Twitter
	}
	if p.Facebook != nil {
		account.Facebook = *p.Facebook
	}
}

// UpdateProfile applies a partial update to the caller's profile. An
// optional profile_image file is relayed to the image host and replaces
// the stored URL.
func (h *AccountHandler) UpdateProfile(c *fiber.Ctx) error {
	accountID, _ := middleware.AccountID(c)

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid form data",
			"data":    nil,
		})
	}

	var account models.Account
	if err := h.DB.First(&account, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"status":  "error",
				"message": "Account not found",
				"data":    nil,
			})
		}
		return serverError(c, err)
	}

	patchFromForm(form).apply(&account)

	if file, err := c.FormFile("profile_image"); err == nil && file.Size > 0 {
		blob, err := file.Open()
		if err != nil {
			return serverError(c, err)
		}
		defer blob.Close()

		url, err := h.Uploader.Upload(c.Context(), blob, file.Filename, profileFolder, storage.ProfileTransform())
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"account_id": accountID,
				"error":      err.Error(),
			}).Error("Profile image upload failed")
			return serverError(c, err)
		}
		account.ProfileImage = url
	}

	if err := h.DB.Save(&account).Error; err != nil {
		return serverError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Profile updated successfully",
		"data":    account.Profile(),
	})
}

// serverError logs the unexpected failure and returns a 500 carrying the
// underlying cause.
func serverError(c *fiber.Ctx, err error) error {
	logrus.Errorf("server error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"status":  "error",
		"message": "Server error",
		"data":    err.Error(),
	})
}
