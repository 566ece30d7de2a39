package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/devconnector/internal/application"
	"github.com/oksasatya/devconnector/pkg/response"
	"github.com/oksasatya/devconnector/pkg/validation"
)

type ProfileHandler struct {
	Svc    *application.ProfileService
	GitHub *application.GitHubService
	Logger *logrus.Logger
}

func NewProfileHandler(svc *application.ProfileService, gh *application.GitHubService, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{Svc: svc, GitHub: gh, Logger: logger}
}

type upsertProfileRequest struct {
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Bio            string `json:"bio"`
	Status         string `json:"status" binding:"required,notblank" msg:"Status is required"`
	GithubUsername string `json:"githubusername"`
	Skills         string `json:"skills" binding:"required,notblank" msg:"Skills is required"`
	Youtube        string `json:"youtube"`
	Facebook       string `json:"facebook"`
	Twitter        string `json:"twitter"`
	Instagram      string `json:"instagram"`
	Linkedin       string `json:"linkedin"`
}

type experienceRequest struct {
	Title       string `json:"title" binding:"required,notblank" msg:"Title is required."`
	Company     string `json:"company" binding:"required,notblank" msg:"Company is required"`
	Location    string `json:"location"`
	From        string `json:"from" binding:"required,notblank" msg:"From date is required"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type educationRequest struct {
	School       string `json:"school" binding:"required,notblank" msg:"School is required."`
	Degree       string `json:"degree" binding:"required,notblank" msg:"Degree is required"`
	FieldOfStudy string `json:"fieldofstudy" binding:"required,notblank" msg:"Field of Study is required"`
	From         string `json:"from" binding:"required,notblank" msg:"From date is required"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

// Me handles GET /api/profile/me.
func (h *ProfileHandler) Me(c *gin.Context) {
	uid, err := callerID(c)
	if err != nil {
		writeError(c, h.Logger, err, msgNoProfile)
		return
	}
	p, err := h.Svc.GetOwn(c.Request.Context(), uid)
	if err != nil {
		writeError(c, h.Logger, err, msgNoProfile)
		return
	}
	response.JSON(c, http.StatusOK, p)
}

// Upsert handles POST /api/profile.
func (h *ProfileHandler) Upsert(c *gin.Context) {
	uid, err := callerID(c)
	if err != nil {
		writeError(c, h.Logger, err, msgNoProfile)
		return
	}
	var req upsertProfileRequest
	if items := validation.BindJSON(c, &req); items != nil {
		response.Errors(c, items...)
		return
	}

	p, err := h.Svc.Upsert(c.Request.Context(), uid, application.UpsertInput{
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Bio:            req.Bio,
		Status:         req.Status,
		GithubUsername: req.GithubUsername,
		Skills:         req.Skills,
		Youtube:        req.Youtube,
		Facebook:       req.Facebook,
		Twitter:        req.Twitter,
		Instagram:      req.Instagram,
		Linkedin:       req.Linkedin,
	})
	if err != nil {
		writeError(c, h.Logger, err, msgNoProfile)
		return
	}
	response.JSON(c, http.StatusOK, p)
}

// List handles GET /api/profile.
func (h *ProfileHandler) List(c *gin.Context) {
	list, err := h.Svc.ListAll(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err, msgProfileNotFound)
		return
	}
	response.JSON(c, http.StatusOK, list)
}

// ByUser handles GET /api/profile/user/:user_id.
func (h *ProfileHandler) ByUser(c *gin.Context) {
	p, err := h.Svc.GetByOwner(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		writeError(c, h.Logger, err, msgProfileNotFound)
		return
	}
	response.JSON(c, http.StatusOK, p)
}

// Search handles GET /api/profile/search?q=&size=.
func (h *ProfileHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	hits, err := h.Svc.Search(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		writeError(c, h.Logger, err, msgProfileNotFound)
		return
	}
	response.JSON(c, http.StatusOK, hits)
}

// Delete handles DELETE /api/profile: profile and identity both go.
func (h *ProfileHandler) Delete(c *gin.Context) {
	uid, err := callerID(c)
	if err != nil {
		writeError(c, h.Logger, err, msgNoProfile)
		return
	}
	if err := h.Svc.DeleteOwn(c.Request.Context(), uid); err != nil {
		writeError(c, h.Logger, err, msgNoProfile)
		return
	}
	response.Message(c, http.StatusOK, "User deleted")
}

// AddExperience handles PUT /api/profile/experience.
func (h *ProfileHandler) AddExperience(c *gin.Context) {
	uid, err := callerID(c)
	if err != nil {
		writeError(c, h.Logger, err, msgNoProfile)
		return
	}
	var req experienceRequest
	if items := validation.BindJSON(c, &req); items != nil {
		response.Errors(c, items...)
		return
	}
	p, err := h.Svc.AddExperience(c.Request.Context(), uid, application.ExperienceInput{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		writeError(c, h.Logger, err, msgNoProfile)
		return
	}
	response.JSON(c, http.StatusOK, p)
}

// RemoveExperience handles DELETE /api/profile/experience/:exp_id.
func (h *ProfileHandler) RemoveExperience(c *gin.Context) {
	uid, err := callerID(c)
	if err != nil {
		writeError(c, h.Logger, err, msgNoProfile)
		return
	}
	p, err := h.Svc.RemoveExperience(c.Request.Context(), uid, c.Param("exp_id"))
	if err != nil {
		writeError(c, h.Logger, err, msgNoProfile)
		return
	}
	response.JSON(c, http.StatusOK, p)
}

// AddEducation handles PUT /api/profile/education.
func (h *ProfileHandler) AddEducation(c *gin.Context) {
	uid, err := callerID(c)
	if err != nil {
		writeError(c, h.Logger, err, msgNoProfile)
		return
	}
	var req educationRequest
	if items := validation.BindJSON(c, &req); items != nil {
		response.Errors(c, items...)
		return
	}
	p, err := h.Svc.AddEducation(c.Request.Context(), uid, application.EducationInput{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	})
	if err != nil {
		writeError(c, h.Logger, err, msgNoProfile)
		return
	}
	response.JSON(c, http.StatusOK, p)
}

// RemoveEducation handles DELETE /api/profile/education/:edu_id.
func (h *ProfileHandler) RemoveEducation(c *gin.Context) {
	uid, err := callerID(c)
	if err != nil {
		writeError(c, h.Logger, err, msgNoProfile)
		return
	}
	p, err := h.Svc.RemoveEducation(c.Request.Context(), uid, c.Param("edu_id"))
	if err != nil {
		writeError(c, h.Logger, err, msgNoProfile)
		return
	}
	response.JSON(c, http.StatusOK, p)
}

// GitHubRepos handles GET /api/profile/github/:username; the upstream body is
// passed through unchanged.
func (h *ProfileHandler) GitHubRepos(c *gin.Context) {
	body, err := h.GitHub.FetchRepos(c.Request.Context(), c.Param("username"))
	if err != nil {
		writeError(c, h.Logger, err, msgNoGithubProfile)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}
