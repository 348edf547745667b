package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"service-market/internal/delivery/http/middleware"
	entity "service-market/internal/domain"
	service "service-market/internal/service/postgresql"
	utils "service-market/pkg"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProfileHandler struct {
	profileService *service.ProfileService
	mediaDir       string
}

func NewProfileHandler(profileService *service.ProfileService, mediaDir string) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, mediaDir: mediaDir}
}

// Get handles GET /api/profile/:user_id/.
func (h *ProfileHandler) Get(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		respondDetail(c, http.StatusNotFound, "Profile not found.")
		return
	}

	profile, err := h.profileService.GetByUserID(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profileResponse(c, profile))
}

// Writable profile fields; everything else in a PATCH body is rejected.
var profileWritableFields = map[string]bool{
	"first_name": true, "last_name": true, "file": true, "location": true,
	"tel": true, "description": true, "working_hours": true, "email": true,
}

var profileImmutableFields = map[string]bool{
	"id": true, "user": true, "type": true, "username": true,
	"created_at": true, "updated_at": true, "uploaded_at": true,
}

// Patch handles PATCH /api/profile/:user_id/. Only the profile owner may
// update, the type is immutable, and unknown fields fail loudly.
func (h *ProfileHandler) Patch(c *gin.Context) {
	user := middleware.CurrentUser(c)

	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		respondDetail(c, http.StatusNotFound, "Profile not found.")
		return
	}

	raw, err := c.GetRawData()
	if err != nil {
		respondDetail(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		respondDetail(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	fieldErrs := entity.FieldErrors{}
	for name := range fields {
		if profileImmutableFields[name] {
			fieldErrs.Add(name, "This field cannot be modified.")
		} else if !profileWritableFields[name] {
			fieldErrs.Add(name, "Unknown field.")
		}
	}
	if !fieldErrs.Empty() {
		c.JSON(http.StatusBadRequest, fieldErrs)
		return
	}

	var input entity.UpdateProfileInput
	if err := json.Unmarshal(raw, &input); err != nil {
		respondDetail(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if input.File != nil && strings.HasPrefix(*input.File, "data:image") {
		path, err := utils.SaveDataURIImage(*input.File, h.mediaDir, "profiles")
		if err != nil {
			c.JSON(http.StatusBadRequest, entity.FieldErrors{"file": {err.Error()}})
			return
		}
		input.File = &path
	}

	profile, err := h.profileService.Update(user, userID, &input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profileResponse(c, profile))
}

// ListBusiness handles GET /api/profiles/business/.
func (h *ProfileHandler) ListBusiness(c *gin.Context) {
	h.list(c, entity.ProfileTypeBusiness)
}

// ListCustomer handles GET /api/profiles/customer/.
func (h *ProfileHandler) ListCustomer(c *gin.Context) {
	h.list(c, entity.ProfileTypeCustomer)
}

func (h *ProfileHandler) list(c *gin.Context, profileType string) {
	filter := entity.ProfileFilter{
		Type:     profileType,
		Search:   c.Query("search"),
		Ordering: c.Query("ordering"),
	}

	profiles, err := h.profileService.List(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses := make([]entity.ProfileResponse, 0, len(profiles))
	for i := range profiles {
		responses = append(responses, profileResponse(c, &profiles[i]))
	}
	c.JSON(http.StatusOK, responses)
}
