package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nebs-hr/noticeboard/internal/database/testutil"
	"github.com/nebs-hr/noticeboard/internal/models"
	apperrors "github.com/nebs-hr/noticeboard/pkg/errors"
)

func newTestService(t *testing.T) (*NoticeService, *gorm.DB) {
	t.Helper()
	db := testutil.MustOpenTestDB(t)
	svc, err := NewNoticeService(db)
	require.NoError(t, err)
	return svc, db
}

func TestCreateDefaultsToDraft(t *testing.T) {
	svc, _ := newTestService(t)

	notice, err := svc.Create(context.Background(), CreateNoticeInput{
		Title:      "Holiday Notice",
		Department: "All Department",
	})
	require.NoError(t, err)

	require.NotZero(t, notice.ID)
	require.Equal(t, models.StatusDraft, notice.Status)
	require.Empty(t, notice.Type)
	require.Nil(t, notice.Date)
	require.Empty(t, notice.Content)
	require.Empty(t, notice.TargetType)
	require.Empty(t, notice.EmployeeID)
	require.Empty(t, notice.EmployeeName)
	require.Empty(t, notice.AttachmentURL)
	require.False(t, notice.CreatedAt.IsZero())
	require.False(t, notice.UpdatedAt.Before(notice.CreatedAt))
}

func TestCreateValidatesRequiredFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateNoticeInput{Department: "HR"})
	requireValidationError(t, err)

	_, err = svc.Create(ctx, CreateNoticeInput{Title: "   ", Department: "HR"})
	requireValidationError(t, err)

	_, err = svc.Create(ctx, CreateNoticeInput{Title: "Notice", Department: ""})
	requireValidationError(t, err)
}

func TestCreateRejectsUnknownStatusAndTarget(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateNoticeInput{Title: "Notice", Department: "HR", Status: "Deleted"})
	requireValidationError(t, err)

	// lowercase is a different value; the enumeration is closed and case-sensitive
	_, err = svc.Create(ctx, CreateNoticeInput{Title: "Notice", Department: "HR", Status: "published"})
	requireValidationError(t, err)

	_, err = svc.Create(ctx, CreateNoticeInput{Title: "Notice", Department: "HR", TargetType: "everyone"})
	requireValidationError(t, err)
}

func TestCreateParsesDates(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	notice, err := svc.Create(ctx, CreateNoticeInput{
		Title:      "Review cycle",
		Department: "HR",
		Date:       "2025-06-20T00:00:00Z",
	})
	require.NoError(t, err)
	require.NotNil(t, notice.Date)
	require.Equal(t, 2025, notice.Date.Year())
	require.Equal(t, time.June, notice.Date.Month())

	dateOnly, err := svc.Create(ctx, CreateNoticeInput{
		Title:      "Payroll",
		Department: "HR",
		Date:       "2025-07-01",
	})
	require.NoError(t, err)
	require.NotNil(t, dateOnly.Date)
	require.Equal(t, 1, dateOnly.Date.Day())

	_, err = svc.Create(ctx, CreateNoticeInput{Title: "Bad", Department: "HR", Date: "not-a-date"})
	requireValidationError(t, err)
}

func TestCreateEnforcesIndividualTarget(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateNoticeInput{
		Title:      "Promotion",
		Department: "HR",
		TargetType: models.TargetIndividual,
		EmployeeID: "EMP-001",
	})
	requireValidationError(t, err)

	notice, err := svc.Create(ctx, CreateNoticeInput{
		Title:        "Promotion",
		Department:   "HR",
		TargetType:   models.TargetIndividual,
		EmployeeID:   "EMP-001",
		EmployeeName: "John Doe",
		Position:     "Software Engineer",
	})
	require.NoError(t, err)
	require.Equal(t, models.TargetIndividual, notice.TargetType)
}

func TestGetReturnsCreatedNotice(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateNoticeInput{
		Title:      "Holiday Notice",
		Type:       models.TagList{"warning", "payroll"},
		Department: "All Department",
		Status:     "Published",
		Content:    "Office closed on Friday.",
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
	require.Equal(t, "Holiday Notice", got.Title)
	require.Equal(t, models.TagList{"warning", "payroll"}, got.Type)
	require.Equal(t, models.StatusPublished, got.Status)
	require.Equal(t, "Office closed on Friday.", got.Content)
}

func TestGetUnknownIDFails(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Get(context.Background(), 9999)
	require.Error(t, err)
	require.True(t, apperrors.IsNotFound(err))
}

func TestUpdateAppliesOnlyProvidedFields(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateNoticeInput{
		Title:      "Quarterly Townhall",
		Department: "All Department",
		Content:    "Agenda to follow.",
	})
	require.NoError(t, err)

	// push updated_at into the past so the refresh is observable
	past := time.Now().UTC().Add(-time.Hour)
	require.NoError(t, db.Model(&models.Notice{}).Where("id = ?", created.ID).
		Update("updated_at", past).Error)

	status := "Published"
	updated, err := svc.Update(ctx, created.ID, UpdateNoticeInput{Status: &status})
	require.NoError(t, err)

	require.Equal(t, models.StatusPublished, updated.Status)
	require.Equal(t, "Quarterly Townhall", updated.Title)
	require.Equal(t, "All Department", updated.Department)
	require.Equal(t, "Agenda to follow.", updated.Content)
	require.True(t, updated.UpdatedAt.After(past))

	reloaded, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusPublished, reloaded.Status)
	require.Equal(t, "Agenda to follow.", reloaded.Content)
	require.True(t, reloaded.UpdatedAt.After(past))
}

func TestUpdateRefreshesTimestampOnEmptyPatch(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateNoticeInput{Title: "Notice", Department: "HR"})
	require.NoError(t, err)

	past := time.Now().UTC().Add(-time.Hour)
	require.NoError(t, db.Model(&models.Notice{}).Where("id = ?", created.ID).
		Update("updated_at", past).Error)

	updated, err := svc.Update(ctx, created.ID, UpdateNoticeInput{})
	require.NoError(t, err)
	require.True(t, updated.UpdatedAt.After(past))
}

func TestUpdateValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateNoticeInput{Title: "Notice", Department: "HR"})
	require.NoError(t, err)

	empty := "   "
	_, err = svc.Update(ctx, created.ID, UpdateNoticeInput{Title: &empty})
	requireValidationError(t, err)

	badStatus := "Removed"
	_, err = svc.Update(ctx, created.ID, UpdateNoticeInput{Status: &badStatus})
	requireValidationError(t, err)

	badDate := "someday"
	_, err = svc.Update(ctx, created.ID, UpdateNoticeInput{Date: &badDate})
	requireValidationError(t, err)

	individual := models.TargetIndividual
	_, err = svc.Update(ctx, created.ID, UpdateNoticeInput{TargetType: &individual})
	requireValidationError(t, err)

	status := "Published"
	_, err = svc.Update(ctx, 12345, UpdateNoticeInput{Status: &status})
	require.True(t, apperrors.IsNotFound(err))
}

func TestUpdateCanSwitchToIndividualWithEmployeeFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateNoticeInput{Title: "Promotion", Department: "HR"})
	require.NoError(t, err)

	individual := models.TargetIndividual
	employeeID := "EMP-007"
	employeeName := "Anna Lee"
	position := "Team Lead"
	updated, err := svc.Update(ctx, created.ID, UpdateNoticeInput{
		TargetType:   &individual,
		EmployeeID:   &employeeID,
		EmployeeName: &employeeName,
		Position:     &position,
	})
	require.NoError(t, err)
	require.Equal(t, models.TargetIndividual, updated.TargetType)
	require.Equal(t, "Anna Lee", updated.EmployeeName)
}

func TestRemoveDeletesPermanently(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateNoticeInput{Title: "Obsolete", Department: "HR"})
	require.NoError(t, err)

	removed, err := svc.Remove(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, removed.ID)
	require.Equal(t, "Obsolete", removed.Title)

	_, err = svc.Get(ctx, created.ID)
	require.True(t, apperrors.IsNotFound(err))

	_, err = svc.Remove(ctx, created.ID)
	require.True(t, apperrors.IsNotFound(err))
}

func TestListPaginates(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	seedNotices(t, db, 25)

	result, err := svc.List(ctx, ListNoticesInput{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, result.Items, 10)
	require.EqualValues(t, 25, result.Total)
	require.Equal(t, 1, result.Page)
	require.Equal(t, 3, result.LastPage)

	lastPage, err := svc.List(ctx, ListNoticesInput{Page: 3, Limit: 10})
	require.NoError(t, err)
	require.Len(t, lastPage.Items, 5)

	beyond, err := svc.List(ctx, ListNoticesInput{Page: 4, Limit: 10})
	require.NoError(t, err)
	require.Empty(t, beyond.Items)
	require.EqualValues(t, 25, beyond.Total)
}

func TestListClampsPageAndLimit(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	seedNotices(t, db, 3)

	result, err := svc.List(ctx, ListNoticesInput{Page: 0, Limit: 0})
	require.NoError(t, err)
	require.Equal(t, 1, result.Page)
	require.Len(t, result.Items, 3)
	require.Equal(t, 1, result.LastPage)

	negative, err := svc.List(ctx, ListNoticesInput{Page: -2, Limit: -5})
	require.NoError(t, err)
	require.Equal(t, 1, negative.Page)
	require.Len(t, negative.Items, 3)

	capped, err := svc.List(ctx, ListNoticesInput{Page: 1, Limit: 10000})
	require.NoError(t, err)
	require.Len(t, capped.Items, 3)
	require.Equal(t, 1, capped.LastPage)
}

func TestListEmptyTable(t *testing.T) {
	svc, _ := newTestService(t)

	result, err := svc.List(context.Background(), ListNoticesInput{})
	require.NoError(t, err)
	require.Empty(t, result.Items)
	require.EqualValues(t, 0, result.Total)
	require.Equal(t, 0, result.LastPage)
}

func TestListOrdersByCreationDescending(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		notice := models.Notice{
			Title:      fmt.Sprintf("Notice %d", i),
			Department: "HR",
			Status:     models.StatusDraft,
			CreatedAt:  base.Add(time.Duration(i) * time.Hour),
			UpdatedAt:  base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, db.Create(&notice).Error)
	}

	result, err := svc.List(ctx, ListNoticesInput{})
	require.NoError(t, err)
	require.Len(t, result.Items, 3)
	require.Equal(t, "Notice 2", result.Items[0].Title)
	require.Equal(t, "Notice 0", result.Items[2].Title)
}

func TestListFiltersByStatusExactMatch(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateNoticeInput{Title: "Annual Review", Department: "HR", Status: "Published"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateNoticeInput{Title: "Annual Party", Department: "HR", Status: "Draft"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateNoticeInput{Title: "Annual Audit", Department: "HR", Status: "Archived"})
	require.NoError(t, err)

	result, err := svc.List(ctx, ListNoticesInput{Status: "Published"})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	require.Equal(t, "Annual Review", result.Items[0].Title)

	// status filter stays conjunctive even when search would match more rows
	combined, err := svc.List(ctx, ListNoticesInput{Status: "Published", Search: "annual"})
	require.NoError(t, err)
	require.Len(t, combined.Items, 1)
	require.EqualValues(t, 1, combined.Total)
	require.Equal(t, "Annual Review", combined.Items[0].Title)
}

func TestListFiltersByDepartment(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateNoticeInput{Title: "HR Update", Department: "HR"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateNoticeInput{Title: "Company Update", Department: "All Department"})
	require.NoError(t, err)

	result, err := svc.List(ctx, ListNoticesInput{Department: "HR"})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	require.Equal(t, "HR Update", result.Items[0].Title)
}

func TestListSearchMatchesTitleOrEmployeeName(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateNoticeInput{Title: "Holiday Notice", Department: "All Department"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateNoticeInput{
		Title:        "Annual Review",
		Department:   "HR",
		TargetType:   models.TargetIndividual,
		EmployeeID:   "EMP-002",
		EmployeeName: "Anna Lee",
		Position:     "Accountant",
	})
	require.NoError(t, err)

	// "Holiday Notice" has no "ann"; "Annual Review" matches on both title
	// and employee name but is returned once
	result, err := svc.List(ctx, ListNoticesInput{Search: "ann"})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	require.EqualValues(t, 1, result.Total)
	require.Equal(t, "Annual Review", result.Items[0].Title)

	uppercase, err := svc.List(ctx, ListNoticesInput{Search: "ANNUAL"})
	require.NoError(t, err)
	require.Len(t, uppercase.Items, 1)

	byName, err := svc.List(ctx, ListNoticesInput{Search: "lee"})
	require.NoError(t, err)
	require.Len(t, byName.Items, 1)
	require.Equal(t, "Anna Lee", byName.Items[0].EmployeeName)

	none, err := svc.List(ctx, ListNoticesInput{Search: "zzz"})
	require.NoError(t, err)
	require.Empty(t, none.Items)
	require.Equal(t, 0, none.LastPage)
}

func requireValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	appErr := apperrors.FromError(err)
	require.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func seedNotices(t *testing.T, db *gorm.DB, count int) {
	t.Helper()
	base := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < count; i++ {
		notice := models.Notice{
			Title:      fmt.Sprintf("Seeded Notice %02d", i),
			Department: "All Department",
			Status:     models.StatusPublished,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
			UpdatedAt:  base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(&notice).Error)
	}
}
