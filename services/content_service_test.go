package services

import (
	"context"
	"testing"
	"time"

	"eduplatform/constants"
	"eduplatform/dto"
	apperrors "eduplatform/errors"
	"eduplatform/models"
	"eduplatform/services/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type contentFixture struct {
	db       *gorm.DB
	clock    *testClock
	content  *ContentService
	subjects *SubjectService
	teacher  models.User
	other    models.User
	admin    models.User
	subject  models.Subject
}

func newContentFixture(t *testing.T, cache *Cache) *contentFixture {
	t.Helper()
	db := newTestDB(t)
	clock := newTestClock()
	f := &contentFixture{
		db:       db,
		clock:    clock,
		content:  NewContentService(ContentServiceOptions{DB: db, Logger: logger.NewNop(), Cache: cache, Now: clock.Now}),
		subjects: NewSubjectService(SubjectServiceOptions{DB: db, Logger: logger.NewNop(), Cache: cache, Now: clock.Now}),
	}
	f.teacher = createUser(t, db, "creator", models.RoleTeacher)
	f.other = createUser(t, db, "otherteacher", models.RoleTeacher)
	f.admin = createUser(t, db, "admin", models.RoleAdmin)
	f.subject = createSubjectRow(t, db, "Mathematics", 4, 5)
	return f
}

func (f *contentFixture) create(t *testing.T, mutate func(*dto.CreateContentRequest)) *models.Content {
	t.Helper()
	req := dto.CreateContentRequest{
		Title:       "Fractions",
		ContentType: models.ContentLesson,
		SubjectID:   f.subject.ID,
		GradeLevel:  4,
		Difficulty:  models.DifficultyEasy,
	}
	if mutate != nil {
		mutate(&req)
	}
	c, err := f.content.CreateContent(context.Background(), req, f.teacher.ID)
	require.NoError(t, err)
	return c
}

func TestCreateContent_RoundTrip(t *testing.T) {
	f := newContentFixture(t, nil)
	ctx := context.Background()

	req := dto.CreateContentRequest{
		Title:        "Photosynthesis",
		Description:  ptr("How plants make food"),
		ContentType:  models.ContentVideo,
		SubjectID:    f.subject.ID,
		GradeLevel:   5,
		Difficulty:   models.DifficultyMedium,
		Tags:         []string{"biology", "plants"},
		FileURL:      ptr("https://cdn.example.com/v.mp4"),
		ThumbnailURL: ptr("https://cdn.example.com/v.png"),
		Duration:     ptr(320),
		IsPublished:  true,
	}
	created, err := f.content.CreateContent(ctx, req, f.teacher.ID)
	require.NoError(t, err)

	got, err := f.content.GetContent(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.NotEmpty(t, got.UUID)
	assert.Equal(t, req.Title, got.Title)
	assert.Equal(t, req.Description, got.Description)
	assert.Equal(t, req.ContentType, got.ContentType)
	assert.Equal(t, req.SubjectID, got.SubjectID)
	assert.Equal(t, req.GradeLevel, got.GradeLevel)
	assert.Equal(t, req.Difficulty, got.Difficulty)
	assert.Equal(t, req.Tags, []string(got.Tags))
	assert.Equal(t, req.FileURL, got.FileURL)
	assert.Equal(t, req.ThumbnailURL, got.ThumbnailURL)
	assert.Equal(t, req.Duration, got.Duration)
	assert.True(t, got.IsPublished)
	require.NotNil(t, got.PublishedAt)
	sameInstant(t, f.clock.Now(), *got.PublishedAt)
	assert.Equal(t, f.teacher.ID, got.CreatedBy)
	assert.Zero(t, got.ViewCount)
	assert.Zero(t, got.LikeCount)

	require.NotNil(t, got.Subject)
	assert.Equal(t, "Mathematics", got.Subject.Name)
	require.NotNil(t, got.Creator)
	assert.Equal(t, "creator", got.Creator.Name)
	assert.Empty(t, got.Creator.Email)

	byUUID, err := f.content.GetContentByUUID(ctx, got.UUID)
	require.NoError(t, err)
	require.NotNil(t, byUUID)
	assert.Equal(t, got.ID, byUUID.ID)
}

func TestCreateContent_DefaultsTagsToEmpty(t *testing.T) {
	f := newContentFixture(t, nil)
	c := f.create(t, nil)

	got, err := f.content.GetContent(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Len(t, got.Tags, 0)
	assert.False(t, got.IsPublished)
	assert.Nil(t, got.PublishedAt)
}

func TestCreateContent_UnknownSubjectFails(t *testing.T) {
	f := newContentFixture(t, nil)
	_, err := f.content.CreateContent(context.Background(), dto.CreateContentRequest{
		Title: "Orphan", ContentType: models.ContentQuiz, SubjectID: 999, GradeLevel: 3, Difficulty: models.DifficultyHard,
	}, f.teacher.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInternal, apperrors.KindOf(err))
}

func TestGetContent_MissingIsNil(t *testing.T) {
	f := newContentFixture(t, nil)
	ctx := context.Background()

	c, err := f.content.GetContent(ctx, 404)
	assert.NoError(t, err)
	assert.Nil(t, c)

	c, err = f.content.GetContentByUUID(ctx, "00000000-0000-0000-0000-000000000000")
	assert.NoError(t, err)
	assert.Nil(t, c)
}

func TestUpdateContent(t *testing.T) {
	f := newContentFixture(t, nil)
	ctx := context.Background()
	c := f.create(t, func(r *dto.CreateContentRequest) { r.Tags = []string{"a", "b"} })

	f.clock.Advance(time.Minute)
	updated, err := f.content.UpdateContent(ctx, c.ID, dto.UpdateContentRequest{
		Title: ptr("Fractions II"),
		Tags:  &[]string{"c"},
	}, f.teacher.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fractions II", updated.Title)
	assert.Equal(t, []string{"c"}, []string(updated.Tags))
	assert.Equal(t, models.ContentLesson, updated.ContentType)
	assert.True(t, updated.UpdatedAt.After(c.UpdatedAt))
	assert.Equal(t, f.teacher.ID, updated.CreatedBy)

	// Same clock reading still moves updatedAt forward.
	again, err := f.content.UpdateContent(ctx, c.ID, dto.UpdateContentRequest{Difficulty: ptr(models.DifficultyHard)}, f.admin.ID)
	require.NoError(t, err)
	assert.True(t, again.UpdatedAt.After(updated.UpdatedAt))
	assert.Equal(t, models.DifficultyHard, again.Difficulty)
	assert.Equal(t, f.teacher.ID, again.CreatedBy)
}

func TestSetMediaURLs(t *testing.T) {
	f := newContentFixture(t, nil)
	ctx := context.Background()
	c := f.create(t, func(r *dto.CreateContentRequest) { r.ThumbnailURL = ptr("https://cdn.example.com/old.png") })

	// The clock has not moved since creation; updatedAt must still advance.
	withFile, err := f.content.SetMediaURLs(ctx, c.ID, ptr("https://cdn.example.com/f.pdf"), nil)
	require.NoError(t, err)
	require.NotNil(t, withFile.FileURL)
	assert.Equal(t, "https://cdn.example.com/f.pdf", *withFile.FileURL)
	require.NotNil(t, withFile.ThumbnailURL)
	assert.Equal(t, "https://cdn.example.com/old.png", *withFile.ThumbnailURL)
	assert.True(t, withFile.UpdatedAt.After(c.UpdatedAt))

	again, err := f.content.SetMediaURLs(ctx, c.ID, nil, ptr("https://cdn.example.com/new.png"))
	require.NoError(t, err)
	assert.True(t, again.UpdatedAt.After(withFile.UpdatedAt))
	assert.Equal(t, "https://cdn.example.com/new.png", *again.ThumbnailURL)

	_, err = f.content.SetMediaURLs(ctx, 9999, ptr("x"), nil)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdateContent_StampsPublishedAtOnFirstPublish(t *testing.T) {
	f := newContentFixture(t, nil)
	ctx := context.Background()
	c := f.create(t, nil)
	require.Nil(t, c.PublishedAt)

	f.clock.Advance(time.Hour)
	published, err := f.content.UpdateContent(ctx, c.ID, dto.UpdateContentRequest{IsPublished: ptr(true)}, f.teacher.ID)
	require.NoError(t, err)
	assert.True(t, published.IsPublished)
	require.NotNil(t, published.PublishedAt)
	firstPublish := *published.PublishedAt
	sameInstant(t, f.clock.Now(), firstPublish)

	f.clock.Advance(time.Hour)
	republished, err := f.content.UpdateContent(ctx, c.ID, dto.UpdateContentRequest{IsPublished: ptr(true)}, f.teacher.ID)
	require.NoError(t, err)
	sameInstant(t, firstPublish, *republished.PublishedAt)
}

func TestUpdateAndDeleteContent_Authorization(t *testing.T) {
	f := newContentFixture(t, nil)
	ctx := context.Background()
	c := f.create(t, nil)

	_, err := f.content.UpdateContent(ctx, c.ID, dto.UpdateContentRequest{Title: ptr("hijack")}, f.other.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsForbidden(err))
	assert.Equal(t, msgUnauthorizedToUpdate, apperrors.GetAppError(err).Message)

	err = f.content.DeleteContent(ctx, c.ID, f.other.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsForbidden(err))
	assert.Equal(t, msgUnauthorizedToDelete, apperrors.GetAppError(err).Message)

	_, err = f.content.UpdateContent(ctx, c.ID, dto.UpdateContentRequest{Title: ptr("ghost")}, 9999)
	assert.True(t, apperrors.IsForbidden(err))

	_, err = f.content.UpdateContent(ctx, 9999, dto.UpdateContentRequest{Title: ptr("x")}, f.teacher.ID)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Equal(t, msgContentNotFound, apperrors.GetAppError(err).Message)

	got, err := f.content.GetContent(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fractions", got.Title)

	require.NoError(t, f.content.DeleteContent(ctx, c.ID, f.admin.ID))
	got, err = f.content.GetContent(ctx, c.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	err = f.content.DeleteContent(ctx, c.ID, f.teacher.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestGetContentList_Filters(t *testing.T) {
	f := newContentFixture(t, nil)
	ctx := context.Background()
	science := createSubjectRow(t, f.db, "Science", 5, 6)

	f.create(t, func(r *dto.CreateContentRequest) {
		r.Title = "Adding Fractions"
		r.Tags = []string{"fractions", "addition"}
		r.IsPublished = true
	})
	f.clock.Advance(time.Minute)
	f.create(t, func(r *dto.CreateContentRequest) {
		r.Title = "Fraction quiz"
		r.ContentType = models.ContentQuiz
		r.Tags = []string{"fractions"}
		r.Description = ptr("Practice with Adding and subtracting")
	})
	f.clock.Advance(time.Minute)
	f.create(t, func(r *dto.CreateContentRequest) {
		r.Title = "Plants"
		r.SubjectID = science.ID
		r.GradeLevel = 5
		r.Difficulty = models.DifficultyMedium
		r.Tags = []string{"biology", "fractions_of_leaves"}
		r.IsPublished = true
	})

	titles := func(l *dto.ContentList) []string {
		out := make([]string, 0, len(l.Content))
		for _, c := range l.Content {
			out = append(out, c.Title)
		}
		return out
	}
	list := func(fl dto.ContentFilters) *dto.ContentList {
		res, err := f.content.GetContentList(ctx, fl)
		require.NoError(t, err)
		return res
	}

	all := list(dto.ContentFilters{})
	assert.EqualValues(t, 3, all.Total)
	assert.Equal(t, []string{"Plants", "Fraction quiz", "Adding Fractions"}, titles(all))

	assert.Equal(t, []string{"Plants"}, titles(list(dto.ContentFilters{SubjectID: &science.ID})))
	assert.Equal(t, []string{"Plants"}, titles(list(dto.ContentFilters{GradeLevel: ptr(5)})))
	assert.Equal(t, []string{"Fraction quiz"}, titles(list(dto.ContentFilters{ContentType: ptr(models.ContentQuiz)})))
	assert.Equal(t, []string{"Plants"}, titles(list(dto.ContentFilters{Difficulty: ptr(models.DifficultyMedium)})))
	assert.Equal(t, []string{"Fraction quiz"}, titles(list(dto.ContentFilters{IsPublished: ptr(false)})))

	// Tag matching is exact per element and every tag must be present.
	assert.Equal(t, []string{"Fraction quiz", "Adding Fractions"}, titles(list(dto.ContentFilters{Tags: []string{"fractions"}})))
	assert.Equal(t, []string{"Adding Fractions"}, titles(list(dto.ContentFilters{Tags: []string{"fractions", "addition"}})))
	assert.Empty(t, titles(list(dto.ContentFilters{Tags: []string{"fraction"}})))
	assert.Empty(t, titles(list(dto.ContentFilters{Tags: []string{"FRACTIONS"}})))

	// Search is case-sensitive and covers title or description.
	assert.Equal(t, []string{"Fraction quiz", "Adding Fractions"}, titles(list(dto.ContentFilters{Search: "Adding"})))
	assert.Empty(t, titles(list(dto.ContentFilters{Search: "adding"})))
	assert.Equal(t, []string{"Adding Fractions"}, titles(list(dto.ContentFilters{Search: "Fractions"})))

	sorted := list(dto.ContentFilters{SortBy: "title", SortOrder: "asc"})
	assert.Equal(t, []string{"Adding Fractions", "Fraction quiz", "Plants"}, titles(sorted))

	paged := list(dto.ContentFilters{Page: 2, Limit: 2})
	assert.EqualValues(t, 3, paged.Total)
	assert.Equal(t, 2, paged.TotalPages)
	assert.Equal(t, []string{"Adding Fractions"}, titles(paged))
	require.NotNil(t, paged.Content[0].Subject)
}

func TestGetContentList_RejectsUnknownSort(t *testing.T) {
	f := newContentFixture(t, nil)
	ctx := context.Background()

	_, err := f.content.GetContentList(ctx, dto.ContentFilters{SortBy: "password"})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	_, err = f.content.GetContentList(ctx, dto.ContentFilters{SortOrder: "sideways"})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestCounters(t *testing.T) {
	f := newContentFixture(t, nil)
	ctx := context.Background()
	c := f.create(t, nil)

	for i := 0; i < 3; i++ {
		require.NoError(t, f.content.IncrementViewCount(ctx, c.ID))
	}
	var likes int64
	for i := 0; i < 2; i++ {
		var err error
		likes, err = f.content.ToggleLike(ctx, c.ID, f.other.ID)
		require.NoError(t, err)
	}
	assert.EqualValues(t, 2, likes)

	got, err := f.content.GetContent(ctx, c.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, got.ViewCount)
	assert.EqualValues(t, 2, got.LikeCount)
	sameInstant(t, c.UpdatedAt, got.UpdatedAt)

	assert.True(t, apperrors.IsNotFound(f.content.IncrementViewCount(ctx, 9999)))
	_, err = f.content.ToggleLike(ctx, 9999, f.other.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestGetContentStats(t *testing.T) {
	cache, mr := newTestCache(t)
	f := newContentFixture(t, cache)
	ctx := context.Background()
	empty := createSubjectRow(t, f.db, "Art")

	a := f.create(t, func(r *dto.CreateContentRequest) { r.IsPublished = true })
	f.create(t, func(r *dto.CreateContentRequest) { r.ContentType = models.ContentQuiz; r.GradeLevel = 5 })
	f.create(t, func(r *dto.CreateContentRequest) { r.ContentType = models.ContentQuiz; r.IsPublished = true })
	require.NoError(t, f.content.IncrementViewCount(ctx, a.ID))
	require.NoError(t, f.content.IncrementViewCount(ctx, a.ID))
	_, err := f.content.ToggleLike(ctx, a.ID, f.other.ID)
	require.NoError(t, err)

	stats, err := f.content.GetContentStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.TotalContent)
	assert.EqualValues(t, 2, stats.PublishedContent)
	assert.EqualValues(t, 1, stats.DraftContent)
	assert.EqualValues(t, 2, stats.TotalViews)
	assert.EqualValues(t, 1, stats.TotalLikes)
	assert.Equal(t, []dto.TypeCount{
		{ContentType: models.ContentLesson, Count: 1},
		{ContentType: models.ContentQuiz, Count: 2},
	}, stats.ContentByType)
	assert.Equal(t, []dto.GradeCount{{GradeLevel: 4, Count: 2}, {GradeLevel: 5, Count: 1}}, stats.ContentByGrade)
	assert.Equal(t, []dto.SubjectCount{
		{SubjectID: f.subject.ID, SubjectName: "Mathematics", Count: 3},
		{SubjectID: empty.ID, SubjectName: "Art", Count: 0},
	}, stats.ContentBySubject)
	assert.True(t, mr.Exists(constants.ContentStatsKey))

	// Structural writes invalidate the cached stats.
	f.create(t, nil)
	assert.False(t, mr.Exists(constants.ContentStatsKey))
	stats, err = f.content.GetContentStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 4, stats.TotalContent)
}

func TestScenarioB_SubjectDeletionGuard(t *testing.T) {
	f := newContentFixture(t, nil)
	ctx := context.Background()

	s, err := f.subjects.CreateSubject(ctx, dto.CreateSubjectRequest{
		Name: "Reading", NameAr: "القراءة", GradeLevels: []int64{4, 5},
	})
	require.NoError(t, err)

	var ids []uint
	for _, grade := range []int{4, 4, 5} {
		c := f.create(t, func(r *dto.CreateContentRequest) {
			r.SubjectID = s.ID
			r.GradeLevel = grade
		})
		ids = append(ids, c.ID)
	}

	res, err := f.content.GetContentList(ctx, dto.ContentFilters{SubjectID: &s.ID, GradeLevel: ptr(4)})
	require.NoError(t, err)
	assert.Len(t, res.Content, 2)
	assert.EqualValues(t, 2, res.Total)

	err = f.subjects.DeleteSubject(ctx, s.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	assert.Equal(t, msgSubjectInUse, apperrors.GetAppError(err).Message)

	for _, id := range ids {
		require.NoError(t, f.content.DeleteContent(ctx, id, f.teacher.ID))
	}
	require.NoError(t, f.subjects.DeleteSubject(ctx, s.ID))

	_, err = f.subjects.GetSubject(ctx, s.ID)
	assert.True(t, apperrors.IsNotFound(err))
}
