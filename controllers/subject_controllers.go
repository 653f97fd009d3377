package controllers

import (
	"eduplatform/dto"
	"eduplatform/response"
	"eduplatform/services"

	"github.com/gin-gonic/gin"
)

type SubjectController struct {
	subjects services.SubjectServiceInterface
}

func NewSubjectController(subjects services.SubjectServiceInterface) *SubjectController {
	return &SubjectController{subjects: subjects}
}

func (ctrl *SubjectController) CreateSubject(c *gin.Context) {
	var req dto.CreateSubjectRequest
	if !bindJSON(c, &req) {
		return
	}
	subject, err := ctrl.subjects.CreateSubject(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Subject created", subject)
}

func (ctrl *SubjectController) UpdateSubject(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateSubjectRequest
	if !bindJSON(c, &req) {
		return
	}
	subject, err := ctrl.subjects.UpdateSubject(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "Subject updated", subject)
}

// DeleteSubject godoc
// @Summary  Delete a subject that has no content
// @Tags     subjects
// @Param    id path int true "subject id"
// @Success  200 {object} response.Response
// @Failure  409 {object} response.Response
// @Security BearerAuth
// @Router   /subjects/{id} [delete]
func (ctrl *SubjectController) DeleteSubject(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.subjects.DeleteSubject(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "Subject deleted", nil)
}

func (ctrl *SubjectController) GetSubject(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	subject, err := ctrl.subjects.GetSubject(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, subject)
}

// GetSubjects godoc
// @Summary  List subjects
// @Tags     subjects
// @Param    activeOnly query bool false "only active subjects"
// @Param    gradeLevel query int  false "subjects taught at this grade"
// @Success  200 {object} response.Response{data=[]models.Subject}
// @Security BearerAuth
// @Router   /subjects [get]
func (ctrl *SubjectController) GetSubjects(c *gin.Context) {
	var f dto.SubjectFilters
	activeOnly, err := queryBool(c, "activeOnly")
	if err != nil {
		response.Error(c, err)
		return
	}
	if activeOnly != nil {
		f.ActiveOnly = *activeOnly
	}
	if f.GradeLevel, err = queryInt(c, "gradeLevel"); err != nil {
		response.Error(c, err)
		return
	}

	subjects, err := ctrl.subjects.GetSubjects(c.Request.Context(), f)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, subjects)
}

// SearchSubjects godoc
// @Summary  Fuzzy search subjects by English or Arabic name
// @Tags     subjects
// @Param    q query string true "search text"
// @Success  200 {object} response.Response{data=[]models.Subject}
// @Security BearerAuth
// @Router   /subjects/search [get]
func (ctrl *SubjectController) SearchSubjects(c *gin.Context) {
	subjects, err := ctrl.subjects.SearchSubjects(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, subjects)
}
