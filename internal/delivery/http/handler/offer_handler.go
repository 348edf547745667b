package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"service-market/internal/delivery/http/middleware"
	entity "service-market/internal/domain"
	service "service-market/internal/service/postgresql"
	utils "service-market/pkg"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	defaultPageSize = 6
	maxPageSize     = 100
)

type OfferHandler struct {
	offerService *service.OfferService
	mediaDir     string
}

func NewOfferHandler(offerService *service.OfferService, mediaDir string) *OfferHandler {
	return &OfferHandler{offerService: offerService, mediaDir: mediaDir}
}

// List handles GET /api/offers/: public, paginated, filtered on the
// computed per-offer minimums. Unparsable numeric parameters are
// ignored rather than rejected.
func (h *OfferHandler) List(c *gin.Context) {
	page := 1
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		page = v
	}
	pageSize := defaultPageSize
	if v, err := strconv.Atoi(c.Query("page_size")); err == nil && v > 0 {
		pageSize = v
		if pageSize > maxPageSize {
			pageSize = maxPageSize
		}
	}

	filter := entity.OfferFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		Ordering: c.Query("ordering"),
		Limit:    pageSize,
		Offset:   (page - 1) * pageSize,
	}
	if id, err := uuid.Parse(c.Query("creator_id")); err == nil {
		filter.CreatorID = &id
	}
	if v, err := strconv.ParseFloat(c.Query("min_price"), 64); err == nil && v >= 0 {
		filter.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(c.Query("max_price"), 64); err == nil && v >= 0 {
		filter.MaxPrice = &v
	}
	if v, err := strconv.Atoi(c.Query("max_delivery_time")); err == nil && v > 0 {
		filter.MaxDeliveryTime = &v
	}

	offers, total, err := h.offerService.List(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	results := make([]entity.OfferResponse, 0, len(offers))
	for i := range offers {
		results = append(results, offerResponse(c, &offers[i]))
	}

	c.JSON(http.StatusOK, entity.PagedOffers{
		Count:    total,
		Next:     pageLink(c, page+1, pageSize, page*pageSize < total),
		Previous: pageLink(c, page-1, pageSize, page > 1),
		Results:  results,
	})
}

func pageLink(c *gin.Context, page, pageSize int, exists bool) *string {
	if !exists {
		return nil
	}
	query := c.Request.URL.Query()
	query.Set("page", strconv.Itoa(page))
	query.Set("page_size", strconv.Itoa(pageSize))
	link := utils.AbsoluteURL(c, c.Request.URL.Path+"?"+query.Encode())
	return &link
}

// Create handles POST /api/offers/. Accepts JSON with an optional
// data-URI image, or multipart form data with a file upload and the
// details as a JSON-encoded field.
func (h *OfferHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	input, imagePath, ok := h.bindOfferInput(c)
	if !ok {
		return
	}

	offer, err := h.offerService.Create(user, input, imagePath)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, offerResponse(c, offer))
}

func (h *OfferHandler) bindOfferInput(c *gin.Context) (*entity.CreateOfferInput, string, bool) {
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		return h.bindOfferForm(c)
	}

	var input entity.CreateOfferInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondDetail(c, http.StatusBadRequest, "Invalid request body.")
		return nil, "", false
	}

	imagePath := ""
	if input.Image != "" {
		path, err := utils.SaveDataURIImage(input.Image, h.mediaDir, "offers")
		if err != nil {
			c.JSON(http.StatusBadRequest, entity.FieldErrors{"image": {err.Error()}})
			return nil, "", false
		}
		imagePath = path
	}
	return &input, imagePath, true
}

func (h *OfferHandler) bindOfferForm(c *gin.Context) (*entity.CreateOfferInput, string, bool) {
	input := entity.CreateOfferInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
	}
	if input.Title == "" {
		c.JSON(http.StatusBadRequest, entity.FieldErrors{"title": {"This field is required."}})
		return nil, "", false
	}
	if details := c.PostForm("details"); details != "" {
		if err := json.Unmarshal([]byte(details), &input.Details); err != nil {
			c.JSON(http.StatusBadRequest, entity.FieldErrors{"details": {"Invalid details payload."}})
			return nil, "", false
		}
	}

	imagePath := ""
	if file, err := c.FormFile("image"); err == nil {
		name := fmt.Sprintf("%s%s", uuid.New().String(), filepath.Ext(file.Filename))
		dst := filepath.Join(h.mediaDir, "offers", name)
		if err := c.SaveUploadedFile(file, dst); err != nil {
			respondDetail(c, http.StatusInternalServerError, "Internal server error.")
			return nil, "", false
		}
		imagePath = "offers/" + name
	}
	return &input, imagePath, true
}

// Get handles GET /api/offers/:id/ (authenticated).
func (h *OfferHandler) Get(c *gin.Context) {
	offerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondDetail(c, http.StatusNotFound, "Offer not found.")
		return
	}

	offer, err := h.offerService.Get(offerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, offerResponse(c, offer))
}

// Patch handles PATCH /api/offers/:id/, owner only. Accepts the same
// two body formats as Create: JSON with an optional data-URI image, or
// multipart form data.
func (h *OfferHandler) Patch(c *gin.Context) {
	user := middleware.CurrentUser(c)

	offerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondDetail(c, http.StatusNotFound, "Offer not found.")
		return
	}

	input, imagePath, ok := h.bindOfferPatch(c)
	if !ok {
		return
	}

	offer, err := h.offerService.Update(user, offerID, input, imagePath)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, offerResponse(c, offer))
}

func (h *OfferHandler) bindOfferPatch(c *gin.Context) (*entity.UpdateOfferInput, *string, bool) {
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		return h.bindOfferPatchForm(c)
	}

	var input entity.UpdateOfferInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondDetail(c, http.StatusBadRequest, "Invalid request body.")
		return nil, nil, false
	}

	var imagePath *string
	if input.Image != nil && *input.Image != "" {
		path, err := utils.SaveDataURIImage(*input.Image, h.mediaDir, "offers")
		if err != nil {
			c.JSON(http.StatusBadRequest, entity.FieldErrors{"image": {err.Error()}})
			return nil, nil, false
		}
		imagePath = &path
	}
	return &input, imagePath, true
}

// bindOfferPatchForm reads a partial update from multipart form data.
// Absent fields stay nil so the service leaves them untouched.
func (h *OfferHandler) bindOfferPatchForm(c *gin.Context) (*entity.UpdateOfferInput, *string, bool) {
	var input entity.UpdateOfferInput
	if title, ok := c.GetPostForm("title"); ok {
		input.Title = &title
	}
	if description, ok := c.GetPostForm("description"); ok {
		input.Description = &description
	}
	if details, ok := c.GetPostForm("details"); ok && details != "" {
		if err := json.Unmarshal([]byte(details), &input.Details); err != nil {
			c.JSON(http.StatusBadRequest, entity.FieldErrors{"details": {"Invalid details payload."}})
			return nil, nil, false
		}
	}

	var imagePath *string
	if file, err := c.FormFile("image"); err == nil {
		name := fmt.Sprintf("%s%s", uuid.New().String(), filepath.Ext(file.Filename))
		dst := filepath.Join(h.mediaDir, "offers", name)
		if err := c.SaveUploadedFile(file, dst); err != nil {
			respondDetail(c, http.StatusInternalServerError, "Internal server error.")
			return nil, nil, false
		}
		rel := "offers/" + name
		imagePath = &rel
	}
	return &input, imagePath, true
}

// Delete handles DELETE /api/offers/:id/, owner only, cascading to the
// details and their orders.
func (h *OfferHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)

	offerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondDetail(c, http.StatusNotFound, "Offer not found.")
		return
	}

	if err := h.offerService.Delete(user, offerID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetDetail handles GET /api/offerdetails/:id/ (public).
func (h *OfferHandler) GetDetail(c *gin.Context) {
	detailID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondDetail(c, http.StatusNotFound, "Offer detail not found.")
		return
	}

	detail, err := h.offerService.GetDetail(detailID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, offerDetailResponse(c, detail, false))
}
