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

// ExamController exposes the exam lifecycle for thalibah: eligibility,
// questions, start, submit and attempt history.
type ExamController struct {
	examSvc         service.ExamService
	registrationSvc service.RegistrationService
	daftarUlangSvc  service.DaftarUlangService
}

func NewExamController(
	examSvc service.ExamService,
	registrationSvc service.RegistrationService,
	daftarUlangSvc service.DaftarUlangService,
) *ExamController {
	return &ExamController{
		examSvc:         examSvc,
		registrationSvc: registrationSvc,
		daftarUlangSvc:  daftarUlangSvc,
	}
}

// GetEligibility godoc
// @Summary Check exam eligibility
// @Description Whether the caller may sit the exam for their required juz, with attempts used so far
// @Tags exam
// @Produce json
// @Success 200 {object} dto.EligibilityDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /exam/eligibility [get]
func (ctrl *ExamController) GetEligibility(c *gin.Context) {
	eligibility, err := ctrl.examSvc.Eligibility(middleware.PrincipalFrom(c))
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, eligibility)
}

// GetQuestions godoc
// @Summary Get exam questions for the caller
// @Description Active questions for the caller's required juz, answer key stripped
// @Tags exam
// @Produce json
// @Success 200 {object} dto.ExamQuestionsDTO
// @Failure 400 {object} dto.ErrorResponse "No exam required or attempts exhausted"
// @Failure 404 {object} dto.ErrorResponse "No approved registration or no questions"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /exam/questions [get]
func (ctrl *ExamController) GetQuestions(c *gin.Context) {
	questions, err := ctrl.examSvc.QuestionsForUser(middleware.PrincipalFrom(c))
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

// StartAttempt godoc
// @Summary Start or resume an exam attempt
// @Description Creates a new in-progress attempt, or returns the existing one if the caller already has an unfinished attempt for the juz
// @Tags exam
// @Accept json
// @Produce json
// @Param body body dto.ExamStartDTO true "Start request"
// @Success 200 {object} dto.StartAttemptResultDTO "Existing attempt resumed"
// @Success 201 {object} dto.StartAttemptResultDTO "New attempt created"
// @Failure 400 {object} dto.ErrorResponse "Juz mismatch, already completed, or attempts exhausted"
// @Failure 404 {object} dto.ErrorResponse "No approved registration or no questions"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /exam/start [post]
func (ctrl *ExamController) StartAttempt(c *gin.Context) {
	var req dto.ExamStartDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.WriteBindError(c, err)
		return
	}

	result, err := ctrl.examSvc.StartAttempt(middleware.PrincipalFrom(c), req)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	if result.Resumed {
		c.JSON(http.StatusOK, result)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// SubmitAttempt godoc
// @Summary Submit an exam attempt
// @Description Grades the answers, closes the attempt and returns the per-section breakdown. An attempt can only be submitted once.
// @Tags exam
// @Accept json
// @Produce json
// @Param body body dto.ExamSubmitDTO true "Submission"
// @Success 200 {object} dto.SubmitAttemptResultDTO
// @Failure 400 {object} dto.ErrorResponse "Attempt already submitted"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /exam/submit [post]
func (ctrl *ExamController) SubmitAttempt(c *gin.Context) {
	var req dto.ExamSubmitDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.WriteBindError(c, err)
		return
	}

	result, err := ctrl.examSvc.SubmitAttempt(middleware.PrincipalFrom(c), req)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListAttempts godoc
// @Summary List the caller's exam attempts
// @Tags exam
// @Produce json
// @Success 200 {array} dto.AttemptDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /exam/attempts [get]
func (ctrl *ExamController) ListAttempts(c *gin.Context) {
	attempts, err := ctrl.examSvc.ListAttempts(middleware.PrincipalFrom(c))
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, attempts)
}

// GetAttempt godoc
// @Summary Get one of the caller's exam attempts
// @Tags exam
// @Produce json
// @Param attempt_id path string true "Attempt ID"
// @Success 200 {object} dto.AttemptDTO
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /exam/attempts/{attempt_id} [get]
func (ctrl *ExamController) GetAttempt(c *gin.Context) {
	attemptID, err := uuid.Parse(c.Param("attempt_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "ID ujian tidak valid"})
		return
	}
	attempt, err := ctrl.examSvc.GetAttempt(middleware.PrincipalFrom(c), attemptID)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, attempt)
}

// MyRegistration godoc
// @Summary Get the caller's latest registration
// @Tags registration
// @Produce json
// @Success 200 {object} dto.RegistrationDTO
// @Failure 404 {object} dto.ErrorResponse "Registration not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /registrations/my [get]
func (ctrl *ExamController) MyRegistration(c *gin.Context) {
	registration, err := ctrl.registrationSvc.MyRegistration(middleware.PrincipalFrom(c))
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, registration)
}

// SubmitDaftarUlang godoc
// @Summary Submit re-enrollment confirmation
// @Description Confirms the caller's halaqah choices; the submission then occupies a slot in quota recalculation
// @Tags daftar-ulang
// @Accept json
// @Produce json
// @Param body body dto.DaftarUlangSubmitDTO true "Halaqah choices"
// @Success 200 {object} dto.DaftarUlangDTO
// @Failure 400 {object} dto.ErrorResponse "Already submitted or no halaqah chosen"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /daftar-ulang/submit [post]
func (ctrl *ExamController) SubmitDaftarUlang(c *gin.Context) {
	var req dto.DaftarUlangSubmitDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.WriteBindError(c, err)
		return
	}

	submission, err := ctrl.daftarUlangSvc.Submit(middleware.PrincipalFrom(c), req)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, submission)
}
