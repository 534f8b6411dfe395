package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
	portssvc "github.com/SscSPs/currency_exchange_app/internal/core/ports/services"
	"github.com/SscSPs/currency_exchange_app/internal/dto"
	"github.com/SscSPs/currency_exchange_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type segmentationHandler struct {
	segmentationService portssvc.SegmentationSvcFacade
}

func registerSegmentationRoutes(rg *gin.RouterGroup, ss portssvc.SegmentationSvcFacade, checker portssvc.PermissionChecker) {
	h := &segmentationHandler{segmentationService: ss}

	segs := rg.Group("/segmentations", middleware.RequirePermission(checker, domain.PermSegmentationsManage))
	{
		segs.POST("", h.createSegmentation)
		segs.GET("", h.listSegmentations)
		segs.GET("/:segmentationID", h.getSegmentation)
		segs.PUT("/:segmentationID", h.updateSegmentation)
	}
}

// createSegmentation godoc
// @Summary Create a segmentation
// @Description Segmentations carry the commission discount applied to their clients.
// @Tags segmentations
// @Accept json
// @Produce json
// @Param segmentation body dto.CreateSegmentationRequest true "Segmentation"
// @Success 201 {object} dto.SegmentationResponse
// @Failure 400 {object} ErrorResponse "Discount outside 0-100"
// @Failure 409 {object} ErrorResponse "Name already exists"
// @Security BearerAuth
// @Router /segmentations [post]
func (h *segmentationHandler) createSegmentation(c *gin.Context) {
	var req dto.CreateSegmentationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "create segmentation request")
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	seg, err := h.segmentationService.CreateSegmentation(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "create segmentation")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Segmentation created", slog.String("segmentation_id", seg.SegmentationID))
	c.JSON(http.StatusCreated, dto.ToSegmentationResponse(seg))
}

// listSegmentations godoc
// @Summary List segmentations
// @Tags segmentations
// @Produce json
// @Success 200 {array} dto.SegmentationResponse
// @Security BearerAuth
// @Router /segmentations [get]
func (h *segmentationHandler) listSegmentations(c *gin.Context) {
	segs, err := h.segmentationService.ListSegmentations(c.Request.Context())
	if err != nil {
		respondError(c, err, "list segmentations")
		return
	}
	c.JSON(http.StatusOK, dto.ToListSegmentationResponse(segs))
}

// getSegmentation godoc
// @Summary Get a segmentation
// @Tags segmentations
// @Produce json
// @Param segmentationID path string true "Segmentation ID"
// @Success 200 {object} dto.SegmentationResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /segmentations/{segmentationID} [get]
func (h *segmentationHandler) getSegmentation(c *gin.Context) {
	seg, err := h.segmentationService.GetSegmentationByID(c.Request.Context(), c.Param("segmentationID"))
	if err != nil {
		respondError(c, err, "retrieve segmentation")
		return
	}
	c.JSON(http.StatusOK, dto.ToSegmentationResponse(seg))
}

// updateSegmentation godoc
// @Summary Update a segmentation
// @Tags segmentations
// @Accept json
// @Produce json
// @Param segmentationID path string true "Segmentation ID"
// @Param segmentation body dto.UpdateSegmentationRequest true "Fields to update"
// @Success 200 {object} dto.SegmentationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /segmentations/{segmentationID} [put]
func (h *segmentationHandler) updateSegmentation(c *gin.Context) {
	var req dto.UpdateSegmentationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "update segmentation request")
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	seg, err := h.segmentationService.UpdateSegmentation(c.Request.Context(), c.Param("segmentationID"), req, userID)
	if err != nil {
		respondError(c, err, "update segmentation")
		return
	}
	c.JSON(http.StatusOK, dto.ToSegmentationResponse(seg))
}
