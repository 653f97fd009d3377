package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "eduplatform/errors"
	"eduplatform/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(target string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c
}

func TestParseNotificationFilters(t *testing.T) {
	c := testContext("/?type=grade&isRead=false&dateFrom=2024-03-01&dateTo=2024-03-02&page=2&limit=5")
	f, err := parseNotificationFilters(c, 7)
	require.NoError(t, err)

	require.NotNil(t, f.UserID)
	assert.EqualValues(t, 7, *f.UserID)
	require.NotNil(t, f.Type)
	assert.Equal(t, models.NotificationGrade, *f.Type)
	require.NotNil(t, f.IsRead)
	assert.False(t, *f.IsRead)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *f.DateFrom)
	assert.Equal(t, time.Date(2024, 3, 2, 23, 59, 59, 999999999, time.UTC), *f.DateTo)
	assert.Equal(t, 2, f.Page)
	assert.Equal(t, 5, f.Limit)
}

func TestParseNotificationFiltersRejectsBadInput(t *testing.T) {
	for _, target := range []string{
		"/?type=newsletter",
		"/?isRead=maybe",
		"/?dateFrom=yesterday",
		"/?page=one",
	} {
		_, err := parseNotificationFilters(testContext(target), 1)
		require.Error(t, err, target)
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err), target)
	}
}

func TestParseNotificationFiltersRFC3339(t *testing.T) {
	c := testContext("/?dateFrom=2024-03-01T10:00:00%2B02:00")
	f, err := parseNotificationFilters(c, 1)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC), *f.DateFrom)
	assert.Nil(t, f.DateTo)
	assert.Nil(t, f.Type)
}

func TestParseContentFilters(t *testing.T) {
	c := testContext("/?subjectId=3&gradeLevel=4&contentType=quiz&difficulty=hard&isPublished=true" +
		"&tags=algebra,%20fractions&tags=grade4&search=Frac&sortBy=title&sortOrder=asc&limit=20")
	f, err := parseContentFilters(c)
	require.NoError(t, err)

	assert.EqualValues(t, 3, *f.SubjectID)
	assert.Equal(t, 4, *f.GradeLevel)
	assert.Equal(t, models.ContentQuiz, *f.ContentType)
	assert.Equal(t, models.DifficultyHard, *f.Difficulty)
	assert.True(t, *f.IsPublished)
	assert.Equal(t, []string{"algebra", "fractions", "grade4"}, f.Tags)
	assert.Equal(t, "Frac", f.Search)
	assert.Equal(t, "title", f.SortBy)
	assert.Equal(t, "asc", f.SortOrder)
	assert.Equal(t, 0, f.Page)
	assert.Equal(t, 20, f.Limit)
}

func TestParseContentFiltersRejectsBadNumbers(t *testing.T) {
	for _, target := range []string{"/?subjectId=-1", "/?gradeLevel=x", "/?isPublished=2"} {
		_, err := parseContentFilters(testContext(target))
		require.Error(t, err, target)
		assert.Equal(t, apperrors.ErrCodeInvalidFormat, apperrors.GetAppError(err).Code, target)
	}
}

func TestIDParam(t *testing.T) {
	c := testContext("/")
	c.Params = gin.Params{{Key: "id", Value: "12"}}
	id, ok := idParam(c, "id")
	assert.True(t, ok)
	assert.EqualValues(t, 12, id)

	for _, raw := range []string{"0", "abc", "-4"} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Params = gin.Params{{Key: "id", Value: raw}}
		_, ok := idParam(c, "id")
		assert.False(t, ok, raw)
		assert.Equal(t, http.StatusBadRequest, w.Code, raw)
		assert.Contains(t, w.Body.String(), "INVALID_FORMAT", raw)
	}
}
