package controller

import (
	"errors"

	"roadcode_backend/internal/model"
	"roadcode_backend/internal/service"
	"roadcode_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SignController struct {
	Service *service.SignService
}

func NewSignController(svc *service.SignService) *SignController {
	return &SignController{Service: svc}
}

// @Summary List traffic signs
// @Tags signs
// @Produce json
// @Param category query string false "filter by category"
// @Success 200 {object} util.Response
// @Router /signs [get]
func (c *SignController) ListSigns(ctx *gin.Context) {
	signs, err := c.Service.List(ctx.Query("category"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, signs)
}

// @Summary Get a traffic sign
// @Tags signs
// @Produce json
// @Param id path string true "sign id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /signs/{id} [get]
func (c *SignController) GetSign(ctx *gin.Context) {
	sign, err := c.Service.Get(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrSignNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, sign)
}

type signRequest struct {
	Name        string `json:"name" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// @Summary Create a traffic sign
// @Tags signs
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body signRequest true "sign"
// @Success 201 {object} util.Response
// @Router /signs [post]
func (c *SignController) CreateSign(ctx *gin.Context) {
	var req signRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sign := &model.TrafficSign{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}

	if err := c.Service.Create(sign); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, sign)
}

// @Summary Upload a sign image
// @Tags signs
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "image file"
// @Success 200 {object} util.Response
// @Router /signs/image [post]
func (c *SignController) UploadImage(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "missing file")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	url, err := c.Service.UploadImage(ctx.Request.Context(), file.Filename, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"imageUrl": url})
}
