package controllers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"eduplatform/dto"
	apperrors "eduplatform/errors"
	"eduplatform/models"
	"eduplatform/response"
	"eduplatform/services"

	"github.com/gin-gonic/gin"
)

// maxUploadBytes caps the multipart body of a media upload.
const maxUploadBytes = 100 << 20

type ContentController struct {
	content services.ContentServiceInterface
	media   services.MediaServiceInterface
}

func NewContentController(content services.ContentServiceInterface, media services.MediaServiceInterface) *ContentController {
	return &ContentController{content: content, media: media}
}

func contentNotFound() error {
	return apperrors.NotFound(apperrors.ErrCodeContentNotFound, "Content not found")
}

func parseContentFilters(c *gin.Context) (dto.ContentFilters, error) {
	var (
		f   dto.ContentFilters
		err error
	)
	if f.SubjectID, err = queryUint(c, "subjectId"); err != nil {
		return f, err
	}
	if f.GradeLevel, err = queryInt(c, "gradeLevel"); err != nil {
		return f, err
	}
	if f.IsPublished, err = queryBool(c, "isPublished"); err != nil {
		return f, err
	}
	if raw := c.Query("contentType"); raw != "" {
		t := models.ContentType(raw)
		f.ContentType = &t
	}
	if raw := c.Query("difficulty"); raw != "" {
		d := models.Difficulty(raw)
		f.Difficulty = &d
	}
	f.Tags = queryList(c, "tags")
	f.Search = c.Query("search")
	f.SortBy = c.Query("sortBy")
	f.SortOrder = c.Query("sortOrder")
	if f.Page, f.Limit, err = pageParams(c); err != nil {
		return f, err
	}
	return f, nil
}

// CreateContent godoc
// @Summary  Create content owned by the caller
// @Tags     content
// @Accept   json
// @Param    body body dto.CreateContentRequest true "content"
// @Success  201 {object} response.Response{data=models.Content}
// @Security BearerAuth
// @Router   /content [post]
func (ctrl *ContentController) CreateContent(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.CreateContentRequest
	if !bindJSON(c, &req) {
		return
	}
	content, err := ctrl.content.CreateContent(c.Request.Context(), req, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Content created", content)
}

// GetContentList godoc
// @Summary  List content with filters, sorting and pagination
// @Tags     content
// @Param    subjectId   query int    false "subject"
// @Param    gradeLevel  query int    false "grade"
// @Param    contentType query string false "lesson|video|audio|document|quiz|exercise|game"
// @Param    difficulty  query string false "easy|medium|hard"
// @Param    isPublished query bool   false "published state"
// @Param    tags        query string false "comma separated; all must match"
// @Param    search      query string false "title or description substring"
// @Param    sortBy      query string false "createdAt|updatedAt|title|viewCount|likeCount|publishedAt|gradeLevel"
// @Param    sortOrder   query string false "asc|desc"
// @Success  200 {object} response.Response{data=dto.ContentList}
// @Security BearerAuth
// @Router   /content [get]
func (ctrl *ContentController) GetContentList(c *gin.Context) {
	filters, err := parseContentFilters(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	list, err := ctrl.content.GetContentList(c.Request.Context(), filters)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// viewed counts a view and reflects it in the returned row.
func (ctrl *ContentController) viewed(c *gin.Context, content *models.Content, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	if content == nil {
		response.Error(c, contentNotFound())
		return
	}
	if err := ctrl.content.IncrementViewCount(c.Request.Context(), content.ID); err != nil {
		response.Error(c, err)
		return
	}
	content.ViewCount++
	response.Success(c, content)
}

// GetContent godoc
// @Summary  Fetch content by id; counts a view
// @Tags     content
// @Param    id path int true "content id"
// @Success  200 {object} response.Response{data=models.Content}
// @Failure  404 {object} response.Response
// @Security BearerAuth
// @Router   /content/{id} [get]
func (ctrl *ContentController) GetContent(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	content, err := ctrl.content.GetContent(c.Request.Context(), id)
	ctrl.viewed(c, content, err)
}

func (ctrl *ContentController) GetContentByUUID(c *gin.Context) {
	content, err := ctrl.content.GetContentByUUID(c.Request.Context(), c.Param("uuid"))
	ctrl.viewed(c, content, err)
}

// UpdateContent godoc
// @Summary  Update content; creator or admin only
// @Tags     content
// @Accept   json
// @Param    id   path int                      true "content id"
// @Param    body body dto.UpdateContentRequest true "fields to change"
// @Success  200 {object} response.Response{data=models.Content}
// @Failure  403 {object} response.Response
// @Failure  404 {object} response.Response
// @Security BearerAuth
// @Router   /content/{id} [put]
func (ctrl *ContentController) UpdateContent(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateContentRequest
	if !bindJSON(c, &req) {
		return
	}
	content, err := ctrl.content.UpdateContent(c.Request.Context(), id, req, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "Content updated", content)
}

func (ctrl *ContentController) DeleteContent(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.content.DeleteContent(c.Request.Context(), id, userID); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "Content deleted", nil)
}

// ToggleLike godoc
// @Summary  Add a like; returns the new like count
// @Tags     content
// @Param    id path int true "content id"
// @Success  200 {object} response.Response
// @Security BearerAuth
// @Router   /content/{id}/like [post]
func (ctrl *ContentController) ToggleLike(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	likes, err := ctrl.content.ToggleLike(c.Request.Context(), id, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"likeCount": likes})
}

func (ctrl *ContentController) GetContentStats(c *gin.Context) {
	stats, err := ctrl.content.GetContentStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}

func openFormFile(c *gin.Context, name string) (multipart.File, error) {
	header, err := c.FormFile(name)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return header.Open()
}

// UploadMedia godoc
// @Summary  Upload a file and/or thumbnail for content
// @Tags     content
// @Accept   multipart/form-data
// @Param    id        path     int  true  "content id"
// @Param    file      formData file false "content file"
// @Param    thumbnail formData file false "thumbnail image"
// @Success  200 {object} response.Response{data=dto.MediaUploadResponse}
// @Security BearerAuth
// @Router   /content/{id}/media [post]
func (ctrl *ContentController) UploadMedia(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)
	file, err := openFormFile(c, "file")
	if err != nil {
		response.BadRequest(c, "Invalid file")
		return
	}
	thumbnail, err := openFormFile(c, "thumbnail")
	if err != nil {
		response.BadRequest(c, "Invalid thumbnail")
		return
	}

	var fileReader, thumbReader io.Reader
	if file != nil {
		defer file.Close()
		fileReader = file
	}
	if thumbnail != nil {
		defer thumbnail.Close()
		thumbReader = thumbnail
	}

	out, err := ctrl.media.UploadContentMedia(c.Request.Context(), id, userID, fileReader, thumbReader)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "Media uploaded", out)
}
