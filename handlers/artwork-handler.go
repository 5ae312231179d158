package handler

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"artfolio/cache"
	"artfolio/middleware"
	"artfolio/models"
	"artfolio/storage"
)

const (
	// artworkFolder is where the relay stores gallery uploads.
	artworkFolder = "artworks"

	galleryCacheTTL = time.Minute
)

// ArtworkHandler serves artwork upload, browsing and deletion.
type ArtworkHandler struct {
	DB       *gorm.DB
	Uploader storage.Uploader
	Cache    *cache.Client
}

// splitTags turns the comma-delimited form field into a trimmed tag list.
func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// Upload relays the image to the host and creates an artwork owned by the
// caller. The record is only created once the relay has succeeded.
func (h *ArtworkHandler) Upload(c *fiber.Ctx) error {
	accountID, _ := middleware.AccountID(c)

	file, err := c.FormFile("image")
	if err != nil || file.Size == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Please upload an image",
			"data":    nil,
		})
	}

	title := strings.TrimSpace(c.FormValue("title"))
	category := c.FormValue("category")
	if title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Title is required",
			"data":    nil,
		})
	}
	if !models.ValidCategory(category) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid category",
			"data":    nil,
		})
	}

	price := float64(0)
	if raw := c.FormValue("price"); raw != "" {
		price, err = strconv.ParseFloat(raw, 64)
		if err != nil || price < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status":  "error",
				"message": "Invalid price",
				"data":    nil,
			})
		}
	}

	blob, err := file.Open()
	if err != nil {
		return serverError(c, err)
	}
	defer blob.Close()

	url, err := h.Uploader.Upload(c.Context(), blob, file.Filename, artworkFolder, storage.ArtworkTransform())
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"filename":   file.Filename,
			"error":      err.Error(),
		}).Error("Artwork image upload failed")
		return serverError(c, err)
	}

	artwork := models.Artwork{
		Title:       title,
		Description: c.FormValue("description"),
		ImageURL:    url,
		Category:    category,
		Medium:      c.FormValue("medium"),
		Dimensions:  c.FormValue("dimensions"),
		Price:       price,
		IsForSale:   c.FormValue("is_for_sale") == "true",
		AccountID:   accountID,
		Tags:        splitTags(c.FormValue("tags")),
	}
	if err := h.DB.Create(&artwork).Error; err != nil {
		return serverError(c, err)
	}

	if err := h.Cache.Delete(c.Context(), cache.GalleryKey); err != nil {
		logrus.Errorf("failed to invalidate gallery cache: %v", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "Artwork uploaded successfully",
		"data":    artwork,
	})
}

// ListAll returns every artwork newest-first with the owner summary joined
// in. The listing is cached briefly when a cache is configured.
func (h *ArtworkHandler) ListAll(c *fiber.Ctx) error {
	var items []models.GalleryItem
	if hit, err := h.Cache.Get(c.Context(), cache.GalleryKey, &items); err == nil && hit {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "success",
			"message": "Artworks found",
			"data":    items,
		})
	}

	var artworks []models.Artwork
	if err := h.DB.Preload("Account").Order("created_at DESC, id DESC").Find(&artworks).Error; err != nil {
		return serverError(c, err)
	}

	items = make([]models.GalleryItem, 0, len(artworks))
	for _, artwork := range artworks {
		items = append(items, models.GalleryItem{
			Artwork: artwork,
			Owner:   artwork.Account.OwnerSummary(),
		})
	}

	if err := h.Cache.Set(c.Context(), cache.GalleryKey, items, galleryCacheTTL); err != nil {
		logrus.Errorf("failed to cache gallery listing: %v", err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Artworks found",
		"data":    items,
	})
}

// ListMine returns the caller's artworks newest-first.
func (h *ArtworkHandler) ListMine(c *fiber.Ctx) error {
	accountID, _ := middleware.AccountID(c)

	var artworks []models.Artwork
	if err := h.DB.Where("account_id = ?", accountID).Order("created_at DESC, id DESC").Find(&artworks).Error; err != nil {
		return serverError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Artworks found",
		"data":    artworks,
	})
}

// GetOne returns a single artwork with the owner's public profile joined
// in, counting the view.
func (h *ArtworkHandler) GetOne(c *fiber.Ctx) error {
	id := c.Params("id")

	var artwork models.Artwork
	if err := h.DB.Preload("Account").First(&artwork, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"status":  "error",
				"message": "Artwork not found",
				"data":    nil,
			})
		}
		return serverError(c, err)
	}

	// Plain read-modify-write; simultaneous fetches of the same artwork
	// can lose counts.
	artwork.Views++
	if err := h.DB.Model(&artwork).Update("views", artwork.Views).Error; err != nil {
		return serverError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Artwork found",
		"data": models.ArtworkDetail{
			Artwork: artwork,
			Owner:   artwork.Account.OwnerProfile(),
		},
	})
}

// Delete removes an artwork permanently. Only the owner may delete it.
func (h *ArtworkHandler) Delete(c *fiber.Ctx) error {
	accountID, _ := middleware.AccountID(c)
	id := c.Params("id")

	var artwork models.Artwork
	if err := h.DB.First(&artwork, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"status":  "error",
				"message": "Artwork not found",
				"data":    nil,
			})
		}
		return serverError(c, err)
	}

	if artwork.AccountID != accountID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "error",
			"message": "Not authorized",
			"data":    nil,
		})
	}

	if err := h.DB.Select(clause.Associations).Delete(&artwork).Error; err != nil {
		return serverError(c, err)
	}

	if err := h.Cache.Delete(c.Context(), cache.GalleryKey); err != nil {
		logrus.Errorf("failed to invalidate gallery cache: %v", err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Artwork deleted",
		"data":    nil,
	})
}
