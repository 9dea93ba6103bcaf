package controller

import (
	"strconv"

	"roadcode_backend/internal/model"
	"roadcode_backend/internal/service"
	"roadcode_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	Service *service.QuestionService
}

func NewQuestionController(svc *service.QuestionService) *QuestionController {
	return &QuestionController{Service: svc}
}

// @Summary List questions
// @Tags questions
// @Produce json
// @Param category query string false "filter by category"
// @Param limit query int false "max results" default(100)
// @Success 200 {object} util.Response
// @Router /questions [get]
func (c *QuestionController) ListQuestions(ctx *gin.Context) {
	category := ctx.Query("category")
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "100"))

	questions, err := c.Service.List(category, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, questions)
}

// @Summary List question categories
// @Tags questions
// @Produce json
// @Success 200 {object} util.Response
// @Router /questions/categories [get]
func (c *QuestionController) ListCategories(ctx *gin.Context) {
	categories, err := c.Service.Categories()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, categories)
}

type questionRequest struct {
	Text        string                 `json:"text" binding:"required"`
	Category    string                 `json:"category" binding:"required"`
	ImageURL    string                 `json:"imageUrl"`
	Options     []model.QuestionOption `json:"options" binding:"required,min=2"`
	Explanation string                 `json:"explanation"`
}

// @Summary Create a question
// @Tags questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body questionRequest true "question"
// @Success 201 {object} util.Response
// @Router /questions [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	var req questionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question := &model.Question{
		Text:        req.Text,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Options:     req.Options,
		Explanation: req.Explanation,
	}

	if err := c.Service.Create(ctx.Request.Context(), question); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, question)
}

// @Summary Update a question
// @Tags questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "question id"
// @Param body body questionRequest true "question"
// @Success 200 {object} util.Response
// @Router /questions/{id} [put]
func (c *QuestionController) UpdateQuestion(ctx *gin.Context) {
	var req questionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.Service.ByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.NotFound(ctx, util.ErrQuestionNotFound.Error())
		return
	}

	question.Text = req.Text
	question.Category = req.Category
	question.ImageURL = req.ImageURL
	question.Options = req.Options
	question.Explanation = req.Explanation

	if err := c.Service.Update(ctx.Request.Context(), question); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, question)
}

// @Summary Delete a question
// @Tags questions
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "question id"
// @Success 200 {object} util.Response
// @Router /questions/{id} [delete]
func (c *QuestionController) DeleteQuestion(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := c.Service.Delete(ctx.Request.Context(), id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": id})
}
