package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tikrarapp/tikrar-backend/internal/controller"
	"github.com/tikrarapp/tikrar-backend/internal/dto"
	"github.com/tikrarapp/tikrar-backend/internal/middleware"
	"github.com/tikrarapp/tikrar-backend/internal/service"
)

// HalaqahController exposes enrollment and occupancy endpoints for thalibah.
type HalaqahController struct {
	enrollmentSvc service.EnrollmentService
}

func NewHalaqahController(enrollmentSvc service.EnrollmentService) *HalaqahController {
	return &HalaqahController{enrollmentSvc: enrollmentSvc}
}

// ListHalaqah godoc
// @Summary List active halaqah
// @Description Retrieve all active halaqah ordered by schedule
// @Tags halaqah
// @Produce json
// @Success 200 {array} dto.HalaqahSummaryDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /halaqah [get]
func (ctrl *HalaqahController) ListHalaqah(c *gin.Context) {
	halaqahList, err := ctrl.enrollmentSvc.ListActive()
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, halaqahList)
}

// JoinHalaqah godoc
// @Summary Join a halaqah or its waitlist
// @Description Seat the thalibah if capacity allows, place on the waitlist otherwise. Repeating the request returns the existing placement.
// @Tags halaqah
// @Accept json
// @Produce json
// @Param id path string true "Halaqah ID"
// @Param body body dto.JoinHalaqahDTO true "Join request"
// @Success 200 {object} dto.JoinResultDTO
// @Failure 400 {object} dto.CapacityFullDTO "Halaqah and waitlist both full"
// @Failure 404 {object} dto.ErrorResponse "Halaqah not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /halaqah/{id}/join [post]
func (ctrl *HalaqahController) JoinHalaqah(c *gin.Context) {
	halaqahID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "ID halaqah tidak valid"})
		return
	}
	var req dto.JoinHalaqahDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.WriteBindError(c, err)
		return
	}

	result, err := ctrl.enrollmentSvc.RequestJoin(middleware.PrincipalFrom(c), halaqahID, req)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// LeaveHalaqah godoc
// @Summary Leave a halaqah
// @Description Drop the thalibah's membership. A freed active seat promotes the longest-waiting waitlist entry.
// @Tags halaqah
// @Accept json
// @Produce json
// @Param id path string true "Halaqah ID"
// @Param body body dto.LeaveHalaqahDTO true "Leave request"
// @Success 200 {object} dto.LeaveResultDTO
// @Failure 404 {object} dto.ErrorResponse "Membership not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /halaqah/{id}/leave [post]
func (ctrl *HalaqahController) LeaveHalaqah(c *gin.Context) {
	halaqahID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "ID halaqah tidak valid"})
		return
	}
	var req dto.LeaveHalaqahDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.WriteBindError(c, err)
		return
	}

	result, err := ctrl.enrollmentSvc.Leave(middleware.PrincipalFrom(c), halaqahID, req)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetOccupancy godoc
// @Summary Get halaqah occupancy
// @Description Current active and waitlist counts plus remaining capacity
// @Tags halaqah
// @Produce json
// @Param id path string true "Halaqah ID"
// @Success 200 {object} dto.OccupancyDTO
// @Failure 404 {object} dto.ErrorResponse "Halaqah not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /halaqah/{id}/occupancy [get]
func (ctrl *HalaqahController) GetOccupancy(c *gin.Context) {
	halaqahID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "ID halaqah tidak valid"})
		return
	}
	occupancy, err := ctrl.enrollmentSvc.GetOccupancy(halaqahID)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, occupancy)
}

// ListStudents godoc
// @Summary List halaqah members
// @Description Active members and the ordered waitlist. Restricted to admins and the halaqah's muallimah.
// @Tags halaqah
// @Produce json
// @Param id path string true "Halaqah ID"
// @Success 200 {object} dto.HalaqahStudentsDTO
// @Failure 403 {object} dto.ErrorResponse "Not the halaqah's muallimah"
// @Failure 404 {object} dto.ErrorResponse "Halaqah not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /halaqah/{id}/students [get]
func (ctrl *HalaqahController) ListStudents(c *gin.Context) {
	halaqahID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "ID halaqah tidak valid"})
		return
	}
	students, err := ctrl.enrollmentSvc.ListStudents(middleware.PrincipalFrom(c), halaqahID)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, students)
}
