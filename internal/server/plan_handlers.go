package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"neighborly/internal/core"
	"neighborly/internal/logger"
)

const maxPlanRequestBytes = 1 << 20

// IndexPageData is the view model for the planning form
type IndexPageData struct {
	Defaults    core.PlanningRequest
	LLMEnabled  bool
	CurrentYear int
}

// ResultsPageData is the view model for generated results
type ResultsPageData struct {
	Plan        *core.Plan
	Ideas       []core.IdeaCategory
	CurrentYear int
}

// handleIndexPage renders the planning form
func (s *Server) handleIndexPage(w http.ResponseWriter, r *http.Request) {
	data := IndexPageData{
		Defaults:    core.PlanningRequest{}.WithDefaults(),
		LLMEnabled:  s.planner.Enabled(),
		CurrentYear: time.Now().Year(),
	}
	s.renderHTML(w, r, "index.html", data)
}

// handlePlanForm generates a plan from the submitted form. HTMX requests get
// only the results fragment.
func (s *Server) handlePlanForm(w http.ResponseWriter, r *http.Request) {
	req, err := parsePlanningForm(r)
	if err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	plan := s.planner.Plan(r.Context(), req)
	data := ResultsPageData{
		Plan:        plan,
		Ideas:       plan.Ideas.Value.Categories(),
		CurrentYear: time.Now().Year(),
	}

	if isHTMXRequest(r) {
		if plan.Degraded() {
			if err := showToast(w, "Some suggestions are generic because the AI service was unavailable.", ToastWarning); err != nil {
				s.log.Warn("Failed to set toast trigger", "error", err)
			}
		} else {
			_ = showToast(w, "Your event plan is ready!", ToastSuccess)
		}
		s.renderHTML(w, r, "partials/results.html", data)
		return
	}

	s.renderHTML(w, r, "results.html", data)
}

// handlePlanAPI handles POST /api/plan with a JSON PlanningRequest body.
// Omitted fields take the same defaults as the form.
func (s *Server) handlePlanAPI(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPlanRequestBytes)

	// A missing guests key means the default; an explicit 0 is kept.
	req := core.PlanningRequest{Guests: core.DefaultGuests}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid JSON body: "+err.Error())
		return
	}
	req = req.WithDefaults()

	plan := s.planner.Plan(r.Context(), req)
	s.respondJSON(w, http.StatusOK, plan)
}

// renderHTML buffers the template output so a failed render never leaves a half-written page.
func (s *Server) renderHTML(w http.ResponseWriter, r *http.Request, name string, data interface{}) {
	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, name, data); err != nil {
		logger.FromContext(r.Context()).Error("Failed to render page", "template", name, "error", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		logger.FromContext(r.Context()).Warn("Failed to write page", "template", name, "error", err)
	}
}

// parsePlanningForm reads the planning form fields. Free-text fields are
// trimmed; a missing, invalid or negative guest count becomes the default.
func parsePlanningForm(r *http.Request) (core.PlanningRequest, error) {
	if err := r.ParseForm(); err != nil {
		return core.PlanningRequest{}, err
	}

	field := func(name string) string {
		return strings.TrimSpace(r.PostFormValue(name))
	}

	req := core.PlanningRequest{
		EventType: field("event_type"),
		Guests:    parseGuests(field("guests")),
		Budget:    field("budget"),
		Location:  field("location"),
		Organizer: field("organizing_group"),
		EventDate: field("event_date"),
		EventTime: field("event_time"),
		Venue:     field("venue"),
		Tone:      field("tone"),
	}
	return req.WithDefaults(), nil
}

func parseGuests(value string) int {
	if value == "" {
		return core.DefaultGuests
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return core.DefaultGuests
	}
	return n
}
