package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	profileUC "github.com/khoahotran/profile-directory/internal/application/usecase/profile"
	"github.com/khoahotran/profile-directory/pkg/apperror"
	"github.com/khoahotran/profile-directory/pkg/logger"
	"github.com/khoahotran/profile-directory/pkg/response"
)

type ProfileHandler struct {
	profileUseCase *profileUC.ProfileUseCase
	logger         logger.Logger
}

func NewProfileHandler(uc *profileUC.ProfileUseCase, log logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: uc,
		logger:         log,
	}
}

// bindBody decodes the JSON body into dst. A missing body binds as {}.
func bindBody(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return apperror.NewStoreValidation([]string{"request body must be a valid JSON object"}, err)
	}
	return nil
}

func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	var req CreateProfileRequest
	if err := bindBody(c, &req); err != nil {
		c.Error(err)
		return
	}

	output, err := h.profileUseCase.ExecuteCreate(c.Request.Context(), req.ToDomain())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Profile created successfully", ToProfileDTO(output.Profile))
}

func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	input := profileUC.ListProfilesInput{
		Page:   c.Query("page"),
		Limit:  c.Query("limit"),
		Search: c.Query("search"),
	}
	output, err := h.profileUseCase.ExecuteList(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profiles retrieved successfully", ProfileListDTO{
		Profiles:   ToProfileDTOs(output.Profiles),
		Pagination: output.Pagination,
	})
}

func (h *ProfileHandler) SearchBySkills(c *gin.Context) {
	output, err := h.profileUseCase.ExecuteSearchBySkills(c.Request.Context(), profileUC.SearchBySkillsInput{
		Skills: c.Query("skills"),
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profiles matching skills retrieved successfully", SkillSearchDTO{
		MatchCount:        output.MatchCount,
		Profiles:          ToProfileDTOs(output.Profiles),
		ParsedSkillTokens: output.ParsedSkillTokens,
	})
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	output, err := h.profileUseCase.ExecuteGet(c.Request.Context(), profileUC.GetProfileInput{ID: c.Param("id")})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile retrieved successfully", ToProfileDTO(output.Profile))
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := bindBody(c, &req); err != nil {
		c.Error(err)
		return
	}

	input := profileUC.UpdateProfileInput{
		ID:      c.Param("id"),
		Payload: req.ToDomain(),
	}
	output, err := h.profileUseCase.ExecuteUpdate(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated successfully", ToProfileDTO(output.Profile))
}
