package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tikrarapp/tikrar-backend/internal/controller"
	"github.com/tikrarapp/tikrar-backend/internal/dto"
	"github.com/tikrarapp/tikrar-backend/internal/middleware"
	"github.com/tikrarapp/tikrar-backend/internal/model"
	"github.com/tikrarapp/tikrar-backend/internal/service"
)

// ExamAdminController manages the question bank, exam configurations and the
// flag review queue.
type ExamAdminController struct {
	examAdminSvc service.ExamAdminService
}

func NewExamAdminController(examAdminSvc service.ExamAdminService) *ExamAdminController {
	return &ExamAdminController{examAdminSvc: examAdminSvc}
}

// ListConfigurations godoc
// @Summary List exam configurations
// @Tags admin-exam
// @Produce json
// @Success 200 {array} model.ExamConfiguration
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/exam/configurations [get]
func (ctrl *ExamAdminController) ListConfigurations(c *gin.Context) {
	configurations, err := ctrl.examAdminSvc.ListConfigurations()
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, configurations)
}

// CreateConfiguration godoc
// @Summary Create an exam configuration
// @Description Activating the new configuration deactivates every other one
// @Tags admin-exam
// @Accept json
// @Produce json
// @Param body body dto.ConfigurationDTO true "Configuration data"
// @Success 201 {object} model.ExamConfiguration
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/exam/configurations [post]
func (ctrl *ExamAdminController) CreateConfiguration(c *gin.Context) {
	var req dto.ConfigurationDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.WriteBindError(c, err)
		return
	}

	configuration, err := ctrl.examAdminSvc.CreateConfiguration(middleware.PrincipalFrom(c), req)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, configuration)
}

// UpdateConfiguration godoc
// @Summary Update an exam configuration
// @Tags admin-exam
// @Accept json
// @Produce json
// @Param id path string true "Configuration ID"
// @Param body body dto.ConfigurationDTO true "Configuration data"
// @Success 200 {object} model.ExamConfiguration
// @Failure 404 {object} dto.ErrorResponse "Configuration not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/exam/configurations/{id} [put]
func (ctrl *ExamAdminController) UpdateConfiguration(c *gin.Context) {
	configurationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "ID konfigurasi tidak valid"})
		return
	}
	var req dto.ConfigurationDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.WriteBindError(c, err)
		return
	}

	configuration, err := ctrl.examAdminSvc.UpdateConfiguration(configurationID, req)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, configuration)
}

// ListQuestions godoc
// @Summary List active questions for a juz
// @Tags admin-exam
// @Produce json
// @Param juz_number query int true "Juz number"
// @Success 200 {array} model.ExamQuestion
// @Failure 400 {object} dto.ErrorResponse "Invalid juz_number"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/exam/questions [get]
func (ctrl *ExamAdminController) ListQuestions(c *gin.Context) {
	juzNumber, err := strconv.Atoi(c.Query("juz_number"))
	if err != nil || juzNumber < 1 || juzNumber > 30 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Parameter juz_number tidak valid"})
		return
	}
	questions, err := ctrl.examAdminSvc.ListQuestions(juzNumber)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

// CreateQuestion godoc
// @Summary Create an exam question
// @Tags admin-exam
// @Accept json
// @Produce json
// @Param body body dto.QuestionCreateDTO true "Question data, answer key included"
// @Success 201 {object} model.ExamQuestion
// @Failure 400 {object} dto.ErrorResponse "Invalid question or answer key"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/exam/questions [post]
func (ctrl *ExamAdminController) CreateQuestion(c *gin.Context) {
	var req dto.QuestionCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.WriteBindError(c, err)
		return
	}

	question, err := ctrl.examAdminSvc.CreateQuestion(middleware.PrincipalFrom(c), req)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, question)
}

// UpdateQuestion godoc
// @Summary Update an exam question
// @Tags admin-exam
// @Accept json
// @Produce json
// @Param id path string true "Question ID"
// @Param body body dto.QuestionCreateDTO true "Question data"
// @Success 200 {object} model.ExamQuestion
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/exam/questions/{id} [put]
func (ctrl *ExamAdminController) UpdateQuestion(c *gin.Context) {
	questionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "ID soal tidak valid"})
		return
	}
	var req dto.QuestionCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.WriteBindError(c, err)
		return
	}

	question, err := ctrl.examAdminSvc.UpdateQuestion(questionID, req)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

// DeleteQuestion godoc
// @Summary Delete an exam question
// @Tags admin-exam
// @Param id path string true "Question ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/exam/questions/{id} [delete]
func (ctrl *ExamAdminController) DeleteQuestion(c *gin.Context) {
	questionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "ID soal tidak valid"})
		return
	}
	if err := ctrl.examAdminSvc.DeleteQuestion(questionID); err != nil {
		controller.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListFlags godoc
// @Summary List question flags
// @Description Review queue of flags raised by thalibah, optionally filtered by status
// @Tags admin-exam
// @Produce json
// @Param status query string false "Flag status filter" Enums(pending, reviewed, resolved)
// @Success 200 {array} model.ExamQuestionFlag
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/exam/flags [get]
func (ctrl *ExamAdminController) ListFlags(c *gin.Context) {
	status := c.DefaultQuery("status", model.FlagStatusPending)
	flags, err := ctrl.examAdminSvc.ListFlags(status)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, flags)
}

// UpdateFlag godoc
// @Summary Update a question flag's review status
// @Tags admin-exam
// @Accept json
// @Produce json
// @Param id path string true "Flag ID"
// @Param body body dto.FlagUpdateDTO true "New status"
// @Success 200 {object} model.ExamQuestionFlag
// @Failure 404 {object} dto.ErrorResponse "Flag not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/exam/flags/{id} [put]
func (ctrl *ExamAdminController) UpdateFlag(c *gin.Context) {
	flagID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "ID laporan tidak valid"})
		return
	}
	var req dto.FlagUpdateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.WriteBindError(c, err)
		return
	}

	flag, err := ctrl.examAdminSvc.UpdateFlag(flagID, req)
	if err != nil {
		controller.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, flag)
}
