package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tikrarapp/tikrar-backend/internal/controller"
	"github.com/tikrarapp/tikrar-backend/internal/dto"
	"github.com/tikrarapp/tikrar-backend/internal/service"
)

// HalaqahAdminController exposes halaqah management and the quota
// recalculation report.
type HalaqahAdminController struct {
	halaqahAdminSvc service.HalaqahAdminService
	quotaSvc        service.QuotaService
	registrationSvc service.RegistrationService
}

func NewHalaqahAdminController(
	halaqahAdminSvc service.HalaqahAdminService,
	quotaSvc service.QuotaService,
	registrationSvc service.RegistrationService,
) *HalaqahAdminController {
	return &HalaqahAdminController{
		halaqahAdminSvc: halaqahAdminSvc,
		quotaSvc:        quotaSvc,
		registrationSvc: registrationSvc,
	}
}

// CreateHalaqah godoc
// @Summary Create a halaqah
// @Description Add a new halaqah; capacity fields default to 20 seats and 5 waitlist slots
// @Tags admin-halaqah
// @Accept json
// @Produce json
// @Param body body dto.HalaqahCreateDTO true "Halaqah data"
// @Success 201 {object} dto.HalaqahSummaryDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/halaqah [post]
func (ctrl *HalaqahAdminController) CreateHalaqah(c *gin.Context) {
	var req dto.HalaqahCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.WriteBindError(c, err)
		return
	}

	halaqah, err := ctrl.halaqahAdminSvc.Create(req)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, halaqah)
}

// UpdateHalaqah godoc
// @Summary Update a halaqah
// @Description Partial update; only the provided fields change
// @Tags admin-halaqah
// @Accept json
// @Produce json
// @Param id path string true "Halaqah ID"
// @Param body body dto.HalaqahUpdateDTO true "Fields to update"
// @Success 200 {object} dto.HalaqahSummaryDTO
// @Failure 404 {object} dto.ErrorResponse "Halaqah not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/halaqah/{id} [patch]
func (ctrl *HalaqahAdminController) UpdateHalaqah(c *gin.Context) {
	halaqahID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "ID halaqah tidak valid"})
		return
	}
	var req dto.HalaqahUpdateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.WriteBindError(c, err)
		return
	}

	halaqah, err := ctrl.halaqahAdminSvc.Update(halaqahID, req)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, halaqah)
}

// PromoteWaitlist godoc
// @Summary Promote a waitlisted thalibah
// @Description Move a waitlist member to the active roster, re-checking seat capacity
// @Tags admin-halaqah
// @Accept json
// @Produce json
// @Param id path string true "Halaqah ID"
// @Param body body dto.PromoteWaitlistDTO true "Membership to promote"
// @Success 200 {object} dto.HalaqahStudentDTO
// @Failure 400 {object} dto.ErrorResponse "Not waitlisted or halaqah full"
// @Failure 404 {object} dto.ErrorResponse "Membership not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/halaqah/{id}/promote-waitlist [post]
func (ctrl *HalaqahAdminController) PromoteWaitlist(c *gin.Context) {
	halaqahID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "ID halaqah tidak valid"})
		return
	}
	var req dto.PromoteWaitlistDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.WriteBindError(c, err)
		return
	}

	student, err := ctrl.halaqahAdminSvc.PromoteWaitlist(halaqahID, req)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, student)
}

// RecalculateQuota godoc
// @Summary Recalculate halaqah quotas
// @Description Per-halaqah occupancy report counting active memberships and confirmed daftar-ulang submissions, deduplicated by member
// @Tags admin-halaqah
// @Produce json
// @Success 200 {object} dto.QuotaRecalcResultDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/halaqah/recalculate-quota [post]
func (ctrl *HalaqahAdminController) RecalculateQuota(c *gin.Context) {
	result, err := ctrl.quotaSvc.Recalculate()
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ApproveRegistration godoc
// @Summary Approve a pending registration
// @Tags admin-registration
// @Produce json
// @Param id path string true "Registration ID"
// @Success 200 {object} dto.RegistrationDTO
// @Failure 400 {object} dto.ErrorResponse "Registration not pending"
// @Failure 404 {object} dto.ErrorResponse "Registration not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/registrations/{id}/approve [post]
func (ctrl *HalaqahAdminController) ApproveRegistration(c *gin.Context) {
	registrationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "ID pendaftaran tidak valid"})
		return
	}
	registration, err := ctrl.registrationSvc.Approve(registrationID)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, registration)
}
