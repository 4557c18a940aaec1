package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"regexp"
	"time"

	"blog-platform/pkg/config"
	"blog-platform/pkg/logger"
	"blog-platform/pkg/models"
	"blog-platform/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// mediaFolder is the fixed namespace every uploaded asset lands under.
const mediaFolder = "blogs"

const (
	blogListCacheKey = "blogs:all"
	blogListCacheTTL = 5 * time.Minute
)

var filenameSanitizer = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// MediaUploader is the media-host contract the ingestion pipeline needs:
// stream one object in, get a durable URL back. Satisfied by s3.Client.
type MediaUploader interface {
	UploadFile(key string, body io.Reader, contentType string) (string, error)
}

type BlogHandler struct {
	blogRepo    repository.BlogRepository
	uploader    MediaUploader
	redisClient *redis.Client
	logger      *logger.Logger
}

func NewBlogHandler(blogRepo repository.BlogRepository, uploader MediaUploader, redisClient *redis.Client, logger *logger.Logger) *BlogHandler {
	return &BlogHandler{
		blogRepo:    blogRepo,
		uploader:    uploader,
		redisClient: redisClient,
		logger:      logger,
	}
}

// blogDraft accumulates field parts while the multipart stream is consumed.
type blogDraft struct {
	title       string
	author      string
	description string
	pubDate     string
	popular     bool
	tags        []string
}

// setField dispatches a recognized field name to its typed setter.
// Unrecognized field names are ignored.
func (d *blogDraft) setField(name, value string) {
	switch name {
	case "title":
		d.title = value
	case "author":
		d.author = value
	case "description":
		d.description = value
	case "pubDate":
		d.pubDate = value
	case "popular":
		d.popular = value == "true"
	case "tags":
		d.tags = models.ParseTags(value)
	}
}

// CreateBlog godoc
// @Summary      Create a blog post
// @Description  Accepts a multipart request with text fields and one or more image files. Each image is uploaded to the media host before the record is persisted.
// @Tags         blogs
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title formData string true "Blog title"
// @Param        author formData string false "Author name"
// @Param        description formData string true "Blog description"
// @Param        tags formData string false "Tags as a JSON array string"
// @Param        pubDate formData string false "Publication date"
// @Param        popular formData string false "Popular flag (literal true)"
// @Param        images formData file true "Image files, at least one"
// @Success      201  {object}  models.Blog
// @Failure      400  {object}  map[string]string
// @Failure      415  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/create [post]
func (h *BlogHandler) CreateBlog(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, config.MaxUploadBytes)

	reader, err := c.Request.MultipartReader()
	if err != nil {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "Unsupported Media Type: multipart/form-data is required"})
		return
	}

	draft := &blogDraft{}
	var imageURLs []string

	// Parts are consumed in arrival order, one pass, one buffered file at
	// a time. Each upload completes before the next part is read, so the
	// collected URLs preserve the order of the file parts.
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read multipart request"})
			return
		}

		if part.FileName() != "" {
			data, err := io.ReadAll(part)
			part.Close()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
				return
			}

			key := mediaFolder + "/" + uuid.New().String() + "-" + sanitizeFilename(part.FileName())
			contentType := part.Header.Get("Content-Type")
			if contentType == "" {
				contentType = "image/jpeg"
			}

			// A failed upload fails the whole request. Assets already
			// uploaded for this request are not cleaned up.
			url, err := h.uploader.UploadFile(key, bytes.NewReader(data), contentType)
			if err != nil {
				h.logger.Error("Failed to upload image: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating blog"})
				return
			}
			imageURLs = append(imageURLs, url)
			continue
		}

		value, err := io.ReadAll(part)
		part.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read multipart request"})
			return
		}
		draft.setField(part.FormName(), string(value))
	}

	if draft.title == "" || draft.description == "" || len(imageURLs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	blog := &models.Blog{
		Title:       draft.title,
		Author:      draft.author,
		Description: draft.description,
		Tags:        draft.tags,
		Images:      imageURLs,
		PubDate:     parsePubDate(draft.pubDate),
		Popular:     draft.popular,
	}

	if err := h.blogRepo.Create(blog); err != nil {
		h.logger.Error("Failed to create blog: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating blog"})
		return
	}

	h.invalidateListCache(c)

	c.JSON(http.StatusCreated, blog)
}

// ListBlogs godoc
// @Summary      List blog posts
// @Description  Returns all blog posts in store-defined order
// @Tags         blogs
// @Produce      json
// @Success      200  {array}   models.Blog
// @Failure      500  {object}  map[string]string
// @Router       /api/blogs [get]
func (h *BlogHandler) ListBlogs(c *gin.Context) {
	ctx := c.Request.Context()

	if h.redisClient != nil {
		if data, err := h.redisClient.Get(ctx, blogListCacheKey).Bytes(); err == nil {
			var blogs []*models.Blog
			if json.Unmarshal(data, &blogs) == nil {
				c.JSON(http.StatusOK, blogs)
				return
			}
		}
	}

	blogs, err := h.blogRepo.List()
	if err != nil {
		h.logger.Error("Failed to list blogs: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching blogs"})
		return
	}
	if blogs == nil {
		blogs = []*models.Blog{}
	}

	if h.redisClient != nil {
		if data, err := json.Marshal(blogs); err == nil {
			h.redisClient.Set(ctx, blogListCacheKey, data, blogListCacheTTL)
		}
	}

	c.JSON(http.StatusOK, blogs)
}

// GetBlog godoc
// @Summary      Get a blog post by id
// @Description  Returns the blog post, or a null body when the id does not exist
// @Tags         blogs
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Blog ID"
// @Success      200  {object}  models.Blog
// @Failure      500  {object}  map[string]string
// @Router       /api/{id} [get]
func (h *BlogHandler) GetBlog(c *gin.Context) {
	id := c.Param("id")

	blog, err := h.blogRepo.GetByID(id)
	if err != nil {
		// An absent record is a 200 with a null body, not a 404. Callers
		// treat an empty payload as "not found".
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, nil)
			return
		}
		h.logger.Error("Failed to fetch blog %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching blog"})
		return
	}

	c.JSON(http.StatusOK, blog)
}

// DeleteBlog godoc
// @Summary      Delete a blog post
// @Description  Deletes the blog post with the given id
// @Tags         blogs
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Blog ID"
// @Success      200  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/{id} [delete]
func (h *BlogHandler) DeleteBlog(c *gin.Context) {
	id := c.Param("id")

	// The store's "not found" case is not special-cased: deleting a
	// nonexistent id surfaces as an internal error.
	if err := h.blogRepo.Delete(id); err != nil {
		h.logger.Error("Failed to delete blog %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting blog"})
		return
	}

	h.invalidateListCache(c)

	c.JSON(http.StatusOK, gin.H{"message": "Blog deleted successfully"})
}

func (h *BlogHandler) invalidateListCache(c *gin.Context) {
	if h.redisClient != nil {
		h.redisClient.Del(c.Request.Context(), blogListCacheKey)
	}
}

func sanitizeFilename(name string) string {
	return filenameSanitizer.ReplaceAllString(name, "")
}

// parsePubDate resolves the supplied publication date, substituting the
// current time when it is absent or unparsable.
func parsePubDate(raw string) time.Time {
	if raw == "" {
		return time.Now()
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Now()
}
