package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"heritage_routes/internal/models"
	"heritage_routes/internal/repository"
	"heritage_routes/internal/services"
)

type ObjectController struct {
	objects repository.ObjectRepository
	stories *services.StoryService
}

func NewObjectController(objects repository.ObjectRepository, stories *services.StoryService) *ObjectController {
	return &ObjectController{objects: objects, stories: stories}
}

// ListObjects returns one page of heritage objects with optional district,
// type and name/address filters.
func (oc *ObjectController) ListObjects(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page must be >= 1"})
		return
	}
	if pageSize < 1 || pageSize > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page_size must be between 1 and 100"})
		return
	}

	objects, total, err := oc.objects.List(c.Request.Context(), repository.ObjectFilter{
		District:   c.Query("district"),
		ObjectType: c.Query("object_type"),
		Search:     c.Query("search"),
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		logrus.WithError(err).Error("ListObjects: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load objects"})
		return
	}

	if objects == nil {
		objects = []models.HeritageObject{}
	}
	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
	c.JSON(http.StatusOK, gin.H{
		"objects":     objects,
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
		"total_pages": totalPages,
	})
}

// ListDistricts returns the distinct districts for the filter dropdown.
func (oc *ObjectController) ListDistricts(c *gin.Context) {
	districts, err := oc.objects.Districts(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("ListDistricts: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load districts"})
		return
	}
	if districts == nil {
		districts = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"districts": districts})
}

// ListObjectTypes returns the distinct object types with their counts,
// most common first.
func (oc *ObjectController) ListObjectTypes(c *gin.Context) {
	types, err := oc.objects.ObjectTypes(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("ListObjectTypes: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load object types"})
		return
	}
	if types == nil {
		types = []repository.ObjectTypeCount{}
	}
	c.JSON(http.StatusOK, gin.H{"object_types": types})
}

// GetObject returns one heritage object by id.
func (oc *ObjectController) GetObject(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid object ID"})
		return
	}

	obj, err := oc.objects.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Object not found"})
			return
		}
		logrus.WithError(err).Error("GetObject: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load object"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"object": obj})
}

// GetObjectStory serves the cached guide narrative, generating it on first
// request.
func (oc *ObjectController) GetObjectStory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid object ID"})
		return
	}

	text, err := oc.stories.GetStory(c.Request.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrObjectNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Object not found"})
		case errors.Is(err, services.ErrStoryUnavailable):
			c.JSON(http.StatusBadGateway, gin.H{"error": "story temporarily unavailable, please try again"})
		default:
			logrus.WithError(err).WithField("object_id", id).Error("GetObjectStory: internal error")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong, please try again"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"object_id": id, "story": text})
}
