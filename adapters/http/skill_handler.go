package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	skillUC "github.com/khoahotran/profile-directory/internal/application/usecase/skill"
	"github.com/khoahotran/profile-directory/pkg/response"
)

type SkillHandler struct {
	skillUseCase *skillUC.SkillUseCase
}

func NewSkillHandler(uc *skillUC.SkillUseCase) *SkillHandler {
	return &SkillHandler{skillUseCase: uc}
}

func (h *SkillHandler) PopularSkills(c *gin.Context) {
	output, err := h.skillUseCase.ExecutePopular(c.Request.Context(), skillUC.PopularSkillsInput{Limit: c.Query("limit")})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Popular skills retrieved successfully", output)
}
