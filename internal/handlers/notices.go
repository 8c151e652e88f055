package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/nebs-hr/noticeboard/internal/models"
	"github.com/nebs-hr/noticeboard/internal/services"
	appErrors "github.com/nebs-hr/noticeboard/pkg/errors"
	"github.com/nebs-hr/noticeboard/pkg/metrics"
	"github.com/nebs-hr/noticeboard/pkg/response"
	appValidator "github.com/nebs-hr/noticeboard/pkg/validator"
)

func init() {
	_ = appValidator.RegisterValidation("noticestatus", func(fl validator.FieldLevel) bool {
		return models.Status(fl.Field().String()).Valid()
	})
}

// NoticeHandler exposes HTTP endpoints for the notice board.
type NoticeHandler struct {
	service *services.NoticeService
}

// NewNoticeHandler constructs a notice handler.
func NewNoticeHandler(db *gorm.DB) (*NoticeHandler, error) {
	service, err := services.NewNoticeService(db)
	if err != nil {
		return nil, err
	}
	return &NoticeHandler{service: service}, nil
}

type createNoticeRequest struct {
	Title         string `json:"title" validate:"required"`
	Type          string `json:"type"`
	Department    string `json:"department" validate:"required"`
	Status        string `json:"status" validate:"omitempty,noticestatus"`
	Date          string `json:"date"`
	Content       string `json:"content"`
	TargetType    string `json:"targetType" validate:"omitempty,oneof=individual all department"`
	EmployeeID    string `json:"employeeId"`
	EmployeeName  string `json:"employeeName"`
	Position      string `json:"position"`
	AttachmentURL string `json:"attachmentUrl"`
}

// updateNoticeRequest mirrors createNoticeRequest with every field optional;
// nil means "leave untouched". Semantic rules are applied by the service
// against the merged record.
type updateNoticeRequest struct {
	Title         *string `json:"title"`
	Type          *string `json:"type"`
	Department    *string `json:"department"`
	Status        *string `json:"status"`
	Date          *string `json:"date"`
	Content       *string `json:"content"`
	TargetType    *string `json:"targetType"`
	EmployeeID    *string `json:"employeeId"`
	EmployeeName  *string `json:"employeeName"`
	Position      *string `json:"position"`
	AttachmentURL *string `json:"attachmentUrl"`
}

// Create registers a new notice.
func (h *NoticeHandler) Create(c *gin.Context) {
	var payload createNoticeRequest
	if !bindAndValidate(c, &payload) {
		return
	}

	notice, err := h.service.Create(c.Request.Context(), services.CreateNoticeInput{
		Title:         payload.Title,
		Type:          models.ParseTagList(payload.Type),
		Department:    payload.Department,
		Status:        payload.Status,
		Date:          payload.Date,
		Content:       payload.Content,
		TargetType:    payload.TargetType,
		EmployeeID:    payload.EmployeeID,
		EmployeeName:  payload.EmployeeName,
		Position:      payload.Position,
		AttachmentURL: payload.AttachmentURL,
	})
	if err != nil {
		metrics.NoticeOperations.WithLabelValues("create", "error").Inc()
		response.Error(c, err)
		return
	}

	metrics.NoticeOperations.WithLabelValues("create", "success").Inc()
	response.Success(c, http.StatusCreated, notice)
}

// List returns a filtered, paginated page of notices.
func (h *NoticeHandler) List(c *gin.Context) {
	result, err := h.service.List(c.Request.Context(), services.ListNoticesInput{
		Page:       parseIntQuery(c, "page", 1),
		Limit:      parseIntQuery(c, "limit", 10),
		Search:     c.Query("search"),
		Status:     c.Query("status"),
		Department: c.Query("department"),
	})
	if err != nil {
		metrics.NoticeOperations.WithLabelValues("list", "error").Inc()
		response.Error(c, err)
		return
	}

	metrics.NoticeOperations.WithLabelValues("list", "success").Inc()
	response.SuccessWithMeta(c, http.StatusOK, result.Items, &response.Meta{
		Total:    result.Total,
		Page:     result.Page,
		LastPage: result.LastPage,
	})
}

// Get returns a single notice by id.
func (h *NoticeHandler) Get(c *gin.Context) {
	id, ok := noticeIDParam(c)
	if !ok {
		return
	}

	notice, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, notice)
}

// Update applies a partial patch to a notice.
func (h *NoticeHandler) Update(c *gin.Context) {
	id, ok := noticeIDParam(c)
	if !ok {
		return
	}

	var payload updateNoticeRequest
	if !bindAndValidate(c, &payload) {
		return
	}

	input := services.UpdateNoticeInput{
		Title:         payload.Title,
		Department:    payload.Department,
		Status:        payload.Status,
		Date:          payload.Date,
		Content:       payload.Content,
		TargetType:    payload.TargetType,
		EmployeeID:    payload.EmployeeID,
		EmployeeName:  payload.EmployeeName,
		Position:      payload.Position,
		AttachmentURL: payload.AttachmentURL,
	}
	if payload.Type != nil {
		tags := models.ParseTagList(*payload.Type)
		input.Type = &tags
	}

	notice, err := h.service.Update(c.Request.Context(), id, input)
	if err != nil {
		metrics.NoticeOperations.WithLabelValues("update", "error").Inc()
		response.Error(c, err)
		return
	}

	metrics.NoticeOperations.WithLabelValues("update", "success").Inc()
	response.Success(c, http.StatusOK, notice)
}

// Delete removes a notice and echoes its last known state.
func (h *NoticeHandler) Delete(c *gin.Context) {
	id, ok := noticeIDParam(c)
	if !ok {
		return
	}

	notice, err := h.service.Remove(c.Request.Context(), id)
	if err != nil {
		metrics.NoticeOperations.WithLabelValues("delete", "error").Inc()
		response.Error(c, err)
		return
	}

	metrics.NoticeOperations.WithLabelValues("delete", "success").Inc()
	response.Success(c, http.StatusOK, notice)
}

func noticeIDParam(c *gin.Context) (uint, bool) {
	raw := strings.TrimSpace(c.Param("id"))
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		response.Error(c, appErrors.NewBadRequest("notice id must be a positive integer"))
		return 0, false
	}
	return uint(id), true
}
