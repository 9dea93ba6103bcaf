package controller

import (
	"errors"

	"roadcode_backend/internal/service"
	"roadcode_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExamController struct {
	Service *service.ExamService
}

func NewExamController(svc *service.ExamService) *ExamController {
	return &ExamController{Service: svc}
}

// @Summary Start a new exam session
// @Description Selects a paper biased towards the user's weak questions and opens an in_progress session
// @Tags exam
// @Produce json
// @Security ApiKeyAuth
// @Success 201 {object} util.Response
// @Failure 404 {object} util.Response "empty question bank"
// @Router /exam/start [post]
func (c *ExamController) StartExam(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.Service.StartExam(ctx.Request.Context(), user.UserID)
	if err != nil {
		c.renderExamError(ctx, err)
		return
	}

	util.Created(ctx, view)
}

type submitAnswerRequest struct {
	QuestionID       string `json:"questionId" binding:"required"`
	SelectedOptionID string `json:"selectedOptionId" binding:"required"`
}

// @Summary Submit an answer
// @Description Records the selected option for one paper question; resubmitting replaces the prior answer
// @Tags exam
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "session id"
// @Param body body submitAnswerRequest true "answer"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response "session already completed"
// @Router /exam/{id}/answer [post]
func (c *ExamController) SubmitAnswer(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req submitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	err := c.Service.SubmitAnswer(ctx.Request.Context(), user.UserID, ctx.Param("id"), req.QuestionID, req.SelectedOptionID)
	if err != nil {
		c.renderExamError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"status": "recorded"})
}

// @Summary Finish an exam session
// @Description Grades the paper, closes the session and returns the result; finishing twice fails
// @Tags exam
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "session id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response "session already completed"
// @Router /exam/{id}/finish [post]
func (c *ExamController) FinishExam(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.Service.FinishExam(ctx.Request.Context(), user.UserID, ctx.Param("id"))
	if err != nil {
		c.renderExamError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// @Summary Get exam session details
// @Description Per-question breakdown; correct options are revealed only for completed sessions
// @Tags exam
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "session id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /exam/{id} [get]
func (c *ExamController) GetExamDetail(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	detail, err := c.Service.GetExamDetail(ctx.Request.Context(), user.UserID, ctx.Param("id"))
	if err != nil {
		c.renderExamError(ctx, err)
		return
	}

	util.Success(ctx, detail)
}

type trainingCheckRequest struct {
	QuestionID       string `json:"questionId" binding:"required"`
	SelectedOptionID string `json:"selectedOptionId" binding:"required"`
}

// @Summary Check a training answer
// @Description Single-question training mode: immediate correctness feedback with explanation
// @Tags training
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body trainingCheckRequest true "answer"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /training/check [post]
func (c *ExamController) CheckTraining(ctx *gin.Context) {
	var req trainingCheckRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.CheckTraining(ctx.Request.Context(), req.QuestionID, req.SelectedOptionID)
	if err != nil {
		c.renderExamError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// renderExamError maps core errors to distinct, stable status codes so a
// client can tell "nothing to answer" from "you're done" from "no such
// session".
func (c *ExamController) renderExamError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrExamNotFound):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrQuestionNotFound):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrEmptyPool):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrExamCompleted):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrQuestionNotOnPaper):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
