package api

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/folio/internal/auth"
	"github.com/mesh-intelligence/folio/internal/content"
	"github.com/mesh-intelligence/folio/internal/service"
	"github.com/mesh-intelligence/folio/internal/uploads"
	"github.com/mesh-intelligence/folio/pkg/types"
)

// handleHealth - GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	dataResponse(w, HealthResponse{Status: "ok"})
}

// handlePortfolio - GET /api/portfolio
func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	dataResponse(w, s.cache.get(r.Context(), service.PathHome, s.svc.LoadPortfolioData))
}

// handlePortfolioSection - GET /api/portfolio/{section}
func (s *Server) handlePortfolioSection(w http.ResponseWriter, r *http.Request) {
	p := s.cache.get(r.Context(), service.PathHome, s.svc.LoadPortfolioData)

	data, ok := p.Section(r.PathValue("section"))
	if !ok {
		errorResponse(w, http.StatusNotFound, "Unknown section")
		return
	}
	dataResponse(w, data)
}

// handleLogin - POST /api/admin/login
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	cookie, err := s.gate.Login(req.Username, req.Password)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			s.logger.Error("login failed", zap.Error(err))
		}
		errorResponse(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	http.SetCookie(w, cookie)
	jsonResponse(w, http.StatusOK, StandardResponse{Success: true, Message: "Logged in"})
}

// handleLogout - POST /api/admin/logout
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, s.gate.Logout())
	jsonResponse(w, http.StatusOK, StandardResponse{Success: true, Message: "Logged out"})
}

// handleEditorData - GET /api/admin/portfolio
func (s *Server) handleEditorData(w http.ResponseWriter, r *http.Request) {
	dataResponse(w, s.svc.GetEditorData(r.Context()))
}

// handleUpdatePortfolio - PUT /api/admin/portfolio
func (s *Server) handleUpdatePortfolio(w http.ResponseWriter, r *http.Request) {
	var p content.Portfolio
	if !decodeJSON(w, r, &p) {
		return
	}
	resultResponse(w, s.svc.UpdatePortfolioData(r.Context(), p), http.StatusOK)
}

// handleUpdateProfile - PUT /api/admin/profile
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var p content.Profile
	if !decodeJSON(w, r, &p) {
		return
	}
	resultResponse(w, s.svc.UpdateProfile(r.Context(), p), http.StatusOK)
}

// handleUpdateSkills - PUT /api/admin/skills
func (s *Server) handleUpdateSkills(w http.ResponseWriter, r *http.Request) {
	var set content.SkillSet
	if !decodeJSON(w, r, &set) {
		return
	}
	resultResponse(w, s.svc.UpdateSkills(r.Context(), set), http.StatusOK)
}

// handleUpdateExperience - PUT /api/admin/experience
func (s *Server) handleUpdateExperience(w http.ResponseWriter, r *http.Request) {
	var items []content.Experience
	if !decodeJSON(w, r, &items) {
		return
	}
	resultResponse(w, s.svc.UpdateExperience(r.Context(), items), http.StatusOK)
}

// handleUpdateProjects - PUT /api/admin/projects
func (s *Server) handleUpdateProjects(w http.ResponseWriter, r *http.Request) {
	var items []content.Project
	if !decodeJSON(w, r, &items) {
		return
	}
	resultResponse(w, s.svc.UpdateProjects(r.Context(), items), http.StatusOK)
}

// handleUpdateEducation - PUT /api/admin/education
func (s *Server) handleUpdateEducation(w http.ResponseWriter, r *http.Request) {
	var items []content.Education
	if !decodeJSON(w, r, &items) {
		return
	}
	resultResponse(w, s.svc.UpdateEducation(r.Context(), items), http.StatusOK)
}

// handleUpdateAchievements - PUT /api/admin/achievements
func (s *Server) handleUpdateAchievements(w http.ResponseWriter, r *http.Request) {
	var items []content.Achievement
	if !decodeJSON(w, r, &items) {
		return
	}
	resultResponse(w, s.svc.UpdateAchievements(r.Context(), items), http.StatusOK)
}

// handleListProjects - GET /api/admin/projects
func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	dataResponse(w, s.svc.GetProjects(r.Context()))
}

// handleCreateProject - POST /api/admin/projects
func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var p content.Project
	if !decodeJSON(w, r, &p) {
		return
	}
	resultResponse(w, s.svc.CreateProject(r.Context(), p), http.StatusCreated)
}

// handleReorderProjects - PUT /api/admin/projects/order
func (s *Server) handleReorderProjects(w http.ResponseWriter, r *http.Request) {
	var updates []types.OrderUpdate
	if !decodeJSON(w, r, &updates) {
		return
	}
	resultResponse(w, s.svc.UpdateProjectOrder(r.Context(), updates), http.StatusOK)
}

// handleGetProject - GET /api/admin/projects/{id}
func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	p := s.svc.GetProject(r.Context(), r.PathValue("id"))
	if p == nil {
		errorResponse(w, http.StatusNotFound, "Project not found")
		return
	}
	dataResponse(w, p)
}

// handleUpdateProject - PUT /api/admin/projects/{id}
func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	var p content.Project
	if !decodeJSON(w, r, &p) {
		return
	}
	resultResponse(w, s.svc.UpdateProject(r.Context(), r.PathValue("id"), p), http.StatusOK)
}

// handleDeleteProject - DELETE /api/admin/projects/{id}
func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	resultResponse(w, s.svc.DeleteProject(r.Context(), r.PathValue("id")), http.StatusOK)
}

// handleUpload - POST /api/upload
// Stores the multipart "file" field and returns its public URL. The URL is
// then submitted through the ordinary update endpoints.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if s.files == nil {
		errorResponse(w, http.StatusNotFound, "Uploads are disabled")
		return
	}

	// Leave room for multipart framing around the file itself.
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload+(1<<20))
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		errorResponse(w, http.StatusBadRequest, "File too large or invalid")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "Missing 'file' field")
		return
	}
	defer file.Close()

	url, err := s.files.Store(file, header.Filename)
	switch {
	case errors.Is(err, uploads.ErrTooLarge):
		errorResponse(w, http.StatusRequestEntityTooLarge, "File too large")
		return
	case errors.Is(err, uploads.ErrEmptyName):
		errorResponse(w, http.StatusBadRequest, "Invalid file name")
		return
	case err != nil:
		s.logger.Error("upload failed", zap.String("name", header.Filename), zap.Error(err))
		errorResponse(w, http.StatusInternalServerError, "Failed to save file")
		return
	}
	jsonResponse(w, http.StatusCreated, StandardResponse{Success: true, Data: UploadResponse{URL: url}})
}
