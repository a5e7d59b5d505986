package handlers

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/tsukino/go-hanbai/httpx"
	"github.com/tsukino/go-hanbai/internal/models"
	"github.com/tsukino/go-hanbai/validation"
	"github.com/tsukino/go-hanbai/view"
)

type ProjectHandler struct {
	db *gorm.DB
}

func NewProjectHandler(db *gorm.DB) *ProjectHandler {
	return &ProjectHandler{db: db}
}

// customerOptions loads the customers for the form's select box.
func (h *ProjectHandler) customerOptions() []models.Customer {
	var customers []models.Customer
	if err := h.db.Order("name").Find(&customers).Error; err != nil {
		log.Error().Err(err).Msg("load customer options failed")
	}
	return customers
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	var projects []models.Project
	if err := h.db.Preload("Customer").Order("updated_at DESC").Find(&projects).Error; err != nil {
		log.Error().Err(err).Msg("list projects failed")
	}
	projects = filterByQuery(projects, query)

	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, httpx.ListResponse{Items: projects, Total: int64(len(projects))})
		return
	}
	render(w, r, "projects/index.html", map[string]any{
		"Projects": projects,
		"Query":    query,
	})
}

func (h *ProjectHandler) New(w http.ResponseWriter, r *http.Request) {
	render(w, r, "projects/new.html", map[string]any{
		"Project":   models.Project{Status: models.ProjectStatusActive},
		"Customers": h.customerOptions(),
		"Statuses":  models.ProjectStatuses,
	})
}

func (h *ProjectHandler) bindForm(r *http.Request, p *models.Project) {
	p.CustomerID = r.FormValue("customer_id")
	p.Code = strings.TrimSpace(r.FormValue("code"))
	p.Name = strings.TrimSpace(r.FormValue("name"))
	p.Status = models.ProjectStatus(r.FormValue("status"))
	p.StartDate = parseOptionalDate(r.FormValue("start_date"))
	p.EndDate = parseOptionalDate(r.FormValue("end_date"))
	p.Notes = r.FormValue("notes")
}

func (h *ProjectHandler) validate(p *models.Project) validation.Violations {
	v := make(validation.Violations)
	validation.Required("customer_id", p.CustomerID, v)
	validation.Required("name", p.Name, v)
	validation.OneOf("status", string(p.Status), models.ProjectStatuses, v)
	return v
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var project models.Project
	h.bindForm(r, &project)
	project.CreatedBy = actorRef(r)
	project.UpdatedBy = actorRef(r)

	if v := h.validate(&project); !v.Empty() {
		render(w, r, "projects/new.html", map[string]any{
			"Project":   project,
			"Customers": h.customerOptions(),
			"Statuses":  models.ProjectStatuses,
			"Errors":    v,
		})
		return
	}

	if err := h.db.Create(&project).Error; err != nil {
		log.Error().Err(err).Str("name", project.Name).Msg("create project failed")
		render(w, r, "projects/new.html", map[string]any{
			"Project":   project,
			"Customers": h.customerOptions(),
			"Statuses":  models.ProjectStatuses,
			"Error":     "save_failed",
		})
		return
	}

	view.SetFlash(w, view.FlashSuccess, "record_created")
	http.Redirect(w, r, "/projects", http.StatusSeeOther)
}

func (h *ProjectHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var project models.Project
	if err := h.db.First(&project, "id = ?", id).Error; err != nil {
		project = models.Project{Status: models.ProjectStatusActive}
	}

	render(w, r, "projects/edit.html", map[string]any{
		"Project":   project,
		"ID":        id,
		"Customers": h.customerOptions(),
		"Statuses":  models.ProjectStatuses,
	})
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var project models.Project
	if err := h.db.First(&project, "id = ?", id).Error; err != nil {
		http.NotFound(w, r)
		return
	}

	h.bindForm(r, &project)
	project.UpdatedBy = actorRef(r)

	if v := h.validate(&project); !v.Empty() {
		render(w, r, "projects/edit.html", map[string]any{
			"Project":   project,
			"ID":        id,
			"Customers": h.customerOptions(),
			"Statuses":  models.ProjectStatuses,
			"Errors":    v,
		})
		return
	}

	if err := h.db.Save(&project).Error; err != nil {
		log.Error().Err(err).Str("project_id", id).Msg("update project failed")
		render(w, r, "projects/edit.html", map[string]any{
			"Project":   project,
			"ID":        id,
			"Customers": h.customerOptions(),
			"Statuses":  models.ProjectStatuses,
			"Error":     "update_failed",
		})
		return
	}

	view.SetFlash(w, view.FlashSuccess, "record_updated")
	http.Redirect(w, r, "/projects", http.StatusSeeOther)
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.db.Delete(&models.Project{}, "id = ?", id).Error; err != nil {
		log.Error().Err(err).Str("project_id", id).Msg("delete project failed")
		view.SetFlash(w, view.FlashError, "delete_failed")
	} else {
		view.SetFlash(w, view.FlashSuccess, "record_deleted")
	}
	http.Redirect(w, r, "/projects", http.StatusSeeOther)
}
