package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/nebs-hr/noticeboard/internal/models"
	apperrors "github.com/nebs-hr/noticeboard/pkg/errors"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// CreateNoticeInput defines attributes required to persist a notice.
// Date carries the ISO-8601 string form the API accepts.
type CreateNoticeInput struct {
	Title         string
	Type          models.TagList
	Department    string
	Status        string
	Date          string
	Content       string
	TargetType    string
	EmployeeID    string
	EmployeeName  string
	Position      string
	AttachmentURL string
}

// UpdateNoticeInput is a partial patch; nil fields are left untouched.
type UpdateNoticeInput struct {
	Title         *string
	Type          *models.TagList
	Department    *string
	Status        *string
	Date          *string
	Content       *string
	TargetType    *string
	EmployeeID    *string
	EmployeeName  *string
	Position      *string
	AttachmentURL *string
}

// ListNoticesInput selects and pages the notice listing. Zero or negative
// Page/Limit values are clamped to the defaults rather than rejected.
type ListNoticesInput struct {
	Page       int
	Limit      int
	Search     string
	Status     string
	Department string
}

// ListNoticesResult is one page of notices plus pagination metadata.
type ListNoticesResult struct {
	Items    []models.Notice
	Total    int64
	Page     int
	LastPage int
}

// NoticeService owns persistence and querying of notice records.
type NoticeService struct {
	db *gorm.DB
}

// NewNoticeService constructs a NoticeService.
func NewNoticeService(db *gorm.DB) (*NoticeService, error) {
	if db == nil {
		return nil, errors.New("notice service: db is required")
	}
	return &NoticeService{db: db}, nil
}

// Create validates and persists a new notice. Status defaults to Draft when
// omitted.
func (s *NoticeService) Create(ctx context.Context, input CreateNoticeInput) (*models.Notice, error) {
	ctx = ensureContext(ctx)

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewValidation("title is required")
	}
	department := strings.TrimSpace(input.Department)
	if department == "" {
		return nil, apperrors.NewValidation("department is required")
	}

	status := models.StatusDraft
	if raw := strings.TrimSpace(input.Status); raw != "" {
		status = models.Status(raw)
		if !status.Valid() {
			return nil, apperrors.NewValidation(fmt.Sprintf("unknown status %q", raw))
		}
	}

	targetType := strings.TrimSpace(input.TargetType)
	if targetType != "" && !models.ValidTargetType(targetType) {
		return nil, apperrors.NewValidation(fmt.Sprintf("unknown target type %q", targetType))
	}

	date, err := parseNoticeDate(input.Date)
	if err != nil {
		return nil, err
	}

	notice := models.Notice{
		Title:         title,
		Type:          input.Type,
		Department:    department,
		Status:        status,
		Date:          date,
		Content:       input.Content,
		TargetType:    targetType,
		EmployeeID:    strings.TrimSpace(input.EmployeeID),
		EmployeeName:  strings.TrimSpace(input.EmployeeName),
		Position:      strings.TrimSpace(input.Position),
		AttachmentURL: strings.TrimSpace(input.AttachmentURL),
	}

	if err := validateIndividualTarget(&notice); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(&notice).Error; err != nil {
		return nil, fmt.Errorf("notice service: create notice: %w", err)
	}

	return &notice, nil
}

// List returns one page of notices ordered by creation time descending. The
// filter is a conjunction of the provided fields; search matches a
// case-insensitive substring of the title or the employee name. The count and
// the page are two independent reads, so the total can briefly disagree with
// the page contents under concurrent writes.
func (s *NoticeService) List(ctx context.Context, input ListNoticesInput) (*ListNoticesResult, error) {
	ctx = ensureContext(ctx)

	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	query := s.db.WithContext(ctx).Model(&models.Notice{})
	query = applyNoticeFilters(query, input)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("notice service: count notices: %w", err)
	}

	var items []models.Notice
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("notice service: list notices: %w", err)
	}

	lastPage := 0
	if total > 0 {
		lastPage = int(math.Ceil(float64(total) / float64(limit)))
	}

	return &ListNoticesResult{
		Items:    items,
		Total:    total,
		Page:     page,
		LastPage: lastPage,
	}, nil
}

// Get loads a single notice by id.
func (s *NoticeService) Get(ctx context.Context, id uint) (*models.Notice, error) {
	ctx = ensureContext(ctx)

	var notice models.Notice
	if err := s.db.WithContext(ctx).First(&notice, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound(fmt.Sprintf("notice %d not found", id))
		}
		return nil, fmt.Errorf("notice service: load notice: %w", err)
	}

	return &notice, nil
}

// Update applies the provided fields to an existing notice. updated_at is
// refreshed even when the patch is empty.
func (s *NoticeService) Update(ctx context.Context, id uint, patch UpdateNoticeInput) (*models.Notice, error) {
	ctx = ensureContext(ctx)

	var notice models.Notice
	if err := s.db.WithContext(ctx).First(&notice, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound(fmt.Sprintf("notice %d not found", id))
		}
		return nil, fmt.Errorf("notice service: load notice: %w", err)
	}

	updates := map[string]any{}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, apperrors.NewValidation("title cannot be empty")
		}
		notice.Title = title
		updates["title"] = title
	}
	if patch.Type != nil {
		notice.Type = *patch.Type
		updates["type"] = *patch.Type
	}
	if patch.Department != nil {
		department := strings.TrimSpace(*patch.Department)
		if department == "" {
			return nil, apperrors.NewValidation("department cannot be empty")
		}
		notice.Department = department
		updates["department"] = department
	}
	if patch.Status != nil {
		status := models.Status(strings.TrimSpace(*patch.Status))
		if !status.Valid() {
			return nil, apperrors.NewValidation(fmt.Sprintf("unknown status %q", *patch.Status))
		}
		notice.Status = status
		updates["status"] = status
	}
	if patch.Date != nil {
		date, err := parseNoticeDate(*patch.Date)
		if err != nil {
			return nil, err
		}
		if date != nil {
			notice.Date = date
			updates["date"] = date
		}
	}
	if patch.Content != nil {
		notice.Content = *patch.Content
		updates["content"] = *patch.Content
	}
	if patch.TargetType != nil {
		targetType := strings.TrimSpace(*patch.TargetType)
		if targetType != "" && !models.ValidTargetType(targetType) {
			return nil, apperrors.NewValidation(fmt.Sprintf("unknown target type %q", targetType))
		}
		notice.TargetType = targetType
		updates["target_type"] = targetType
	}
	if patch.EmployeeID != nil {
		notice.EmployeeID = strings.TrimSpace(*patch.EmployeeID)
		updates["employee_id"] = notice.EmployeeID
	}
	if patch.EmployeeName != nil {
		notice.EmployeeName = strings.TrimSpace(*patch.EmployeeName)
		updates["employee_name"] = notice.EmployeeName
	}
	if patch.Position != nil {
		notice.Position = strings.TrimSpace(*patch.Position)
		updates["position"] = notice.Position
	}
	if patch.AttachmentURL != nil {
		notice.AttachmentURL = strings.TrimSpace(*patch.AttachmentURL)
		updates["attachment_url"] = notice.AttachmentURL
	}

	// Enforced against the merged record, so a patch cannot switch a notice
	// to an individual target without the employee fields in place.
	if err := validateIndividualTarget(&notice); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	notice.UpdatedAt = now
	updates["updated_at"] = now

	if err := s.db.WithContext(ctx).Model(&models.Notice{}).
		Where("id = ?", notice.ID).
		Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("notice service: update notice: %w", err)
	}

	return &notice, nil
}

// Remove permanently deletes a notice and returns its last known state.
func (s *NoticeService) Remove(ctx context.Context, id uint) (*models.Notice, error) {
	ctx = ensureContext(ctx)

	var notice models.Notice
	if err := s.db.WithContext(ctx).First(&notice, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound(fmt.Sprintf("notice %d not found", id))
		}
		return nil, fmt.Errorf("notice service: load notice: %w", err)
	}

	result := s.db.WithContext(ctx).Delete(&models.Notice{}, notice.ID)
	if result.Error != nil {
		return nil, fmt.Errorf("notice service: delete notice: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.NewNotFound(fmt.Sprintf("notice %d not found", id))
	}

	return &notice, nil
}

func applyNoticeFilters(query *gorm.DB, input ListNoticesInput) *gorm.DB {
	if status := strings.TrimSpace(input.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	if department := strings.TrimSpace(input.Department); department != "" {
		query = query.Where("department = ?", department)
	}
	if search := strings.TrimSpace(input.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(employee_name) LIKE ?", pattern, pattern)
	}
	return query
}

// The dashboard collects employee details only for individually targeted
// notices; the service refuses records that claim an individual target
// without them.
func validateIndividualTarget(n *models.Notice) error {
	if n.TargetType != models.TargetIndividual {
		return nil
	}
	if n.EmployeeID == "" || n.EmployeeName == "" || n.Position == "" {
		return apperrors.NewValidation("employeeId, employeeName and position are required for individually targeted notices")
	}
	return nil
}

// parseNoticeDate accepts the two ISO-8601 shapes the API has always taken:
// a full RFC 3339 timestamp or a bare calendar date. Empty input means no
// date.
func parseNoticeDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return &ts, nil
	}
	if ts, err := time.Parse("2006-01-02", raw); err == nil {
		ts = ts.UTC()
		return &ts, nil
	}

	return nil, apperrors.NewValidation(fmt.Sprintf("invalid date %q: expected an ISO-8601 timestamp", raw))
}
