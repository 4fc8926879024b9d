package controllers

import (
	"github.com/gin-gonic/gin"
	"net/http"
	"strconv"
	"tourway/internal/models/request_models"
	"tourway/internal/services"
	"tourway/pkg/utils"
)

type TourController struct {
	tourService services.TourServiceInterface
}

func NewTourController(tourService services.TourServiceInterface) *TourController {
	return &TourController{
		tourService: tourService,
	}
}

// CreateTour godoc
// @Summary Create a generated tour itinerary
// @Description Generate transportation, places to visit and places to stay for the given trip parameters and persist them under a new tour id
// @Tags Tours
// @Accept json
// @Produce json
// @Param request body request_models.CreateTourRequest true "Trip parameters"
// @Success 200 {object} response_models.CreateTourResponse
// @Failure 422 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Security BearerAuth
// @Router /tours/create [post]
func (t *TourController) CreateTour(c *gin.Context) {
	var req request_models.CreateTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	userId := c.GetString("user_id")

	result, err := t.tourService.CreateTour(c.Request.Context(), userId, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Tour created successfully")
}

// GetTourById godoc
// @Summary Get tour by ID
// @Tags Tours
// @Produce json
// @Param tourId path string true "Tour ID"
// @Success 200 {object} response_models.TourResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /tours/{tourId} [get]
func (t *TourController) GetTourById(c *gin.Context) {
	tourId := c.Param("tourId")
	if tourId == "" {
		utils.RespondError(c, http.StatusBadRequest, "Tour ID is required")
		return
	}

	tour, err := t.tourService.GetTourByID(c.Request.Context(), tourId)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, tour, "Tour fetched successfully")
}

// GetToursByUserId godoc
// @Summary Get tours created by the authenticated user
// @Tags Tours
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(5) minimum(1) maximum(100)
// @Success 200 {array} response_models.TourResponse
// @Security BearerAuth
// @Router /tours/get-by-user [get]
func (t *TourController) GetToursByUserId(c *gin.Context) {

	pageStr := c.DefaultQuery("page", "1")
	pageSizeStr := c.DefaultQuery("pageSize", "5")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return
	}

	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil || pageSize < 1 || pageSize > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size (must be 1-100)")
		return
	}

	userId := c.GetString("user_id")

	tours, err := t.tourService.GetToursByUserID(c.Request.Context(), userId, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, tours, "Tours fetched successfully")
}

// GetTransportations godoc
// @Summary Get transportation options of a tour
// @Tags Tours
// @Produce json
// @Param tourId path string true "Tour ID"
// @Success 200 {array} response_models.TransportationResponse
// @Security BearerAuth
// @Router /tours/{tourId}/transportations [get]
func (t *TourController) GetTransportations(c *gin.Context) {
	tourId := c.Param("tourId")
	if tourId == "" {
		utils.RespondError(c, http.StatusBadRequest, "Tour ID is required")
		return
	}

	rows, err := t.tourService.GetTransportations(c.Request.Context(), tourId)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, rows, "Transportations fetched successfully")
}

// GetPlacesToVisit godoc
// @Summary Get places to visit of a tour
// @Tags Tours
// @Produce json
// @Param tourId path string true "Tour ID"
// @Success 200 {array} response_models.PlaceToVisitResponse
// @Security BearerAuth
// @Router /tours/{tourId}/places-to-visit [get]
func (t *TourController) GetPlacesToVisit(c *gin.Context) {
	tourId := c.Param("tourId")
	if tourId == "" {
		utils.RespondError(c, http.StatusBadRequest, "Tour ID is required")
		return
	}

	rows, err := t.tourService.GetPlacesToVisit(c.Request.Context(), tourId)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, rows, "Places to visit fetched successfully")
}

// GetPlacesToStay godoc
// @Summary Get places to stay of a tour
// @Tags Tours
// @Produce json
// @Param tourId path string true "Tour ID"
// @Success 200 {array} response_models.PlaceToStayResponse
// @Security BearerAuth
// @Router /tours/{tourId}/places-to-stay [get]
func (t *TourController) GetPlacesToStay(c *gin.Context) {
	tourId := c.Param("tourId")
	if tourId == "" {
		utils.RespondError(c, http.StatusBadRequest, "Tour ID is required")
		return
	}

	rows, err := t.tourService.GetPlacesToStay(c.Request.Context(), tourId)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, rows, "Places to stay fetched successfully")
}

// UpdateDayVisits godoc
// @Summary Assign places to visit to days
// @Tags Tours
// @Accept json
// @Produce json
// @Param request body request_models.UpdateDayVisitsRequest true "Place/day pairs"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /tours/places-to-visit/day-visits [put]
func (t *TourController) UpdateDayVisits(c *gin.Context) {
	var req request_models.UpdateDayVisitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := t.tourService.UpdateDayVisits(c.Request.Context(), req.Updates); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Day visits updated successfully")
}

// UpdateStaySelections godoc
// @Summary Update selection flags of places to stay
// @Tags Tours
// @Accept json
// @Produce json
// @Param request body request_models.UpdateStaySelectionsRequest true "Place/flag pairs"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /tours/places-to-stay/selection [put]
func (t *TourController) UpdateStaySelections(c *gin.Context) {
	var req request_models.UpdateStaySelectionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := t.tourService.UpdateStaySelections(c.Request.Context(), req.Updates); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Stay selections updated successfully")
}

// SwapTransportation godoc
// @Summary Swap the selected transportation option
// @Description Deselect the old transportation row and select the new one
// @Tags Tours
// @Accept json
// @Produce json
// @Param request body request_models.SwapTransportationRequest true "Old and new transportation ids"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /tours/transportations/swap [put]
func (t *TourController) SwapTransportation(c *gin.Context) {
	var req request_models.SwapTransportationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := t.tourService.SwapTransportation(c.Request.Context(), req.OldID, req.NewID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Transportation selection swapped successfully")
}
