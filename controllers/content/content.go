package contentController

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
)

// --- News ---

// ListNews returns active news articles, newest first. The feed is
// decorative, so a store error degrades to an empty list instead of
// blocking the page.
func ListNews(c *fiber.Ctx) error {
	news := []models.News{}
	if err := database.Database.Db.
		Where("is_active = ? AND is_deleted = ?", true, false).
		Order("created_at DESC").
		Find(&news).Error; err != nil {
		log.Printf("Error fetching news: %v", err)
		news = []models.News{}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "News fetched successfully.", fiber.Map{
		"news": news,
	})
}

// CreateNews publishes a news article.
func CreateNews(c *fiber.Ctx) error {
	reqData := c.Locals("validatedNews").(models.NewsRequest)

	article := models.News{
		Title:    reqData.Title,
		Content:  reqData.Content,
		IsActive: true,
	}
	if err := database.Database.Db.Create(&article).Error; err != nil {
		log.Printf("Error saving news: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create news!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "News created successfully.", article)
}

// UpdateNews edits an article in place.
func UpdateNews(c *fiber.Ctx) error {
	reqData := c.Locals("validatedNews").(models.NewsRequest)

	newsID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid news id!", nil)
	}

	db := database.Database.Db

	var article models.News
	if err := db.Where("id = ? AND is_deleted = ?", newsID, false).First(&article).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "News not found!", nil)
	}

	if err := db.Model(&article).Updates(map[string]interface{}{
		"title":   reqData.Title,
		"content": reqData.Content,
	}).Error; err != nil {
		log.Printf("Error updating news %d: %v", article.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update news!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "News updated successfully.", nil)
}

// DeleteNews soft deletes an article.
func DeleteNews(c *fiber.Ctx) error {
	newsID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid news id!", nil)
	}

	db := database.Database.Db

	var article models.News
	if err := db.Where("id = ? AND is_deleted = ?", newsID, false).First(&article).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "News not found!", nil)
	}

	if err := db.Model(&article).Update("is_deleted", true).Error; err != nil {
		log.Printf("Error deleting news %d: %v", article.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete news!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "News deleted successfully.", nil)
}

// --- Free resources ---

// ListResources returns active learning resources.
func ListResources(c *fiber.Ctx) error {
	var resources []models.FreeResource
	if err := database.Database.Db.
		Where("is_active = ? AND is_deleted = ?", true, false).
		Order("id").
		Find(&resources).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch resources!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Resources fetched successfully.", fiber.Map{
		"resources": resources,
	})
}

// CreateResource adds a free learning resource.
func CreateResource(c *fiber.Ctx) error {
	reqData := c.Locals("validatedResource").(models.ResourceRequest)

	resource := models.FreeResource{
		Title:       reqData.Title,
		Description: reqData.Description,
		URL:         reqData.URL,
		IsActive:    true,
	}
	if err := database.Database.Db.Create(&resource).Error; err != nil {
		log.Printf("Error saving resource: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create resource!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Resource created successfully.", resource)
}

// DeleteResource soft deletes a resource.
func DeleteResource(c *fiber.Ctx) error {
	resourceID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid resource id!", nil)
	}

	db := database.Database.Db

	var resource models.FreeResource
	if err := db.Where("id = ? AND is_deleted = ?", resourceID, false).First(&resource).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Resource not found!", nil)
	}

	if err := db.Model(&resource).Update("is_deleted", true).Error; err != nil {
		log.Printf("Error deleting resource %d: %v", resource.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete resource!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Resource deleted successfully.", nil)
}

// --- Tips ---

// TipOfTheDay returns the current road safety tip.
func TipOfTheDay(c *fiber.Ctx) error {
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Tip fetched successfully.", fiber.Map{
		"tip": utils.TipOfTheDay(),
	})
}
