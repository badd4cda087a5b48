package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Dosada05/pairs-tournament/brackets"
	"github.com/Dosada05/pairs-tournament/models"
	"github.com/Dosada05/pairs-tournament/services"
)

type CategoryHandler struct {
	categoryService services.CategoryService
	validate        *validator.Validate
}

func NewCategoryHandler(cs services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: cs,
		validate:        newValidator(),
	}
}

type registerTeamRequest struct {
	Player1 playerRequest `json:"player1" validate:"required"`
	Player2 playerRequest `json:"player2" validate:"required"`
	Club    *string       `json:"club,omitempty" validate:"omitempty,max=100"`
}

type playerRequest struct {
	Name  string  `json:"name" validate:"required,max=100"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,max=32"`
}

type manualZonesRequest struct {
	Zones []manualZoneRequest `json:"zones" validate:"required,min=1,dive"`
}

type manualZoneRequest struct {
	Name      string   `json:"name" validate:"max=50"`
	TeamNames []string `json:"team_names" validate:"required,min=2,dive,required,max=100"`
}

type scoreRequest struct {
	ScoreA      []int      `json:"score_a" validate:"max=3,dive,min=0,max=99"`
	ScoreB      []int      `json:"score_b" validate:"max=3,dive,min=0,max=99"`
	Status      string     `json:"status" validate:"required,oneof=pending in_progress finished"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Place       *string    `json:"place,omitempty" validate:"omitempty,max=100"`
}

type categoryPath struct {
	tournamentID string
	categoryID   string
}

func categoryParams(r *http.Request) (categoryPath, error) {
	tid, err := urlParam(r, "tournamentID")
	if err != nil {
		return categoryPath{}, err
	}
	cid, err := urlParam(r, "categoryID")
	if err != nil {
		return categoryPath{}, err
	}
	return categoryPath{tournamentID: tid, categoryID: cid}, nil
}

// GetHandler godoc
// @Summary Get a category with its zones and playoff rounds
// @Tags categories
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param categoryID path string true "Category ID"
// @Success 200 {object} models.Category
// @Failure 404 {object} map[string]string
// @Router /tournaments/{tournamentID}/categories/{categoryID} [get]
func (h *CategoryHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	p, err := categoryParams(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	category, err := h.categoryService.Get(r.Context(), p.tournamentID, p.categoryID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"category": category}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RegisterTeamHandler godoc
// @Summary Register a pair in a category
// @Tags categories
// @Accept json
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param categoryID path string true "Category ID"
// @Success 201 {object} models.Team
// @Failure 409 {object} map[string]string
// @Router /tournaments/{tournamentID}/categories/{categoryID}/teams [post]
func (h *CategoryHandler) RegisterTeamHandler(w http.ResponseWriter, r *http.Request) {
	p, err := categoryParams(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var req registerTeamRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := validateRequest(r.Context(), h.validate, req); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	team, err := h.categoryService.RegisterTeam(r.Context(), p.tournamentID, p.categoryID, services.RegisterTeamInput{
		Player1: models.Player{Name: req.Player1.Name, Phone: req.Player1.Phone},
		Player2: models.Player{Name: req.Player2.Name, Phone: req.Player2.Phone},
		Club:    req.Club,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CloseRegistrationHandler godoc
// @Summary Close team registration
// @Tags categories
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param categoryID path string true "Category ID"
// @Success 200 {object} models.Category
// @Router /tournaments/{tournamentID}/categories/{categoryID}/close-registration [post]
func (h *CategoryHandler) CloseRegistrationHandler(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, h.categoryService.CloseRegistration)
}

// DrawZonesHandler godoc
// @Summary Draw the zones of one category
// @Tags categories
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param categoryID path string true "Category ID"
// @Success 200 {object} models.Category
// @Router /tournaments/{tournamentID}/categories/{categoryID}/draw [post]
func (h *CategoryHandler) DrawZonesHandler(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, h.categoryService.DrawZones)
}

// SetupManualZonesHandler godoc
// @Summary Create zones from organizer-typed team names
// @Tags categories
// @Accept json
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param categoryID path string true "Category ID"
// @Success 200 {object} models.Category
// @Router /tournaments/{tournamentID}/categories/{categoryID}/manual-zones [post]
func (h *CategoryHandler) SetupManualZonesHandler(w http.ResponseWriter, r *http.Request) {
	p, err := categoryParams(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var req manualZonesRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := validateRequest(r.Context(), h.validate, req); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	zones := make([]brackets.ManualZone, len(req.Zones))
	for i, z := range req.Zones {
		zones[i] = brackets.ManualZone{Name: z.Name, TeamNames: z.TeamNames}
	}
	category, err := h.categoryService.SetupManualZones(r.Context(), p.tournamentID, p.categoryID, zones)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"category": category}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RecordScoreHandler godoc
// @Summary Record the score of a zone or playoff match
// @Tags categories
// @Accept json
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param categoryID path string true "Category ID"
// @Param matchID path string true "Match ID, e.g. ZA_M1 or R1_M2"
// @Success 200 {object} models.Category
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /tournaments/{tournamentID}/categories/{categoryID}/matches/{matchID}/score [put]
func (h *CategoryHandler) RecordScoreHandler(w http.ResponseWriter, r *http.Request) {
	p, err := categoryParams(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	matchID, err := urlParam(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var req scoreRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := validateRequest(r.Context(), h.validate, req); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	category, err := h.categoryService.RecordScore(r.Context(), p.tournamentID, p.categoryID, matchID, brackets.ScoreUpdate{
		ScoreA:      req.ScoreA,
		ScoreB:      req.ScoreB,
		Status:      models.MatchStatus(req.Status),
		ScheduledAt: req.ScheduledAt,
		Place:       req.Place,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"category": category}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// StartPlayoffsHandler godoc
// @Summary Close zone play and build the first playoff round
// @Tags categories
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param categoryID path string true "Category ID"
// @Success 200 {object} models.Category
// @Router /tournaments/{tournamentID}/categories/{categoryID}/playoffs [post]
func (h *CategoryHandler) StartPlayoffsHandler(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, h.categoryService.StartPlayoffs)
}

// AdvanceBracketHandler godoc
// @Summary Build the next playoff round
// @Tags categories
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param categoryID path string true "Category ID"
// @Success 200 {object} models.Category
// @Router /tournaments/{tournamentID}/categories/{categoryID}/advance [post]
func (h *CategoryHandler) AdvanceBracketHandler(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, h.categoryService.AdvanceBracket)
}

// FinishHandler godoc
// @Summary Record the final placements
// @Tags categories
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param categoryID path string true "Category ID"
// @Success 200 {object} models.Category
// @Router /tournaments/{tournamentID}/categories/{categoryID}/finish [post]
func (h *CategoryHandler) FinishHandler(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, h.categoryService.Finish)
}

// StandingsHandler serves the ranked table of every zone.
func (h *CategoryHandler) StandingsHandler(w http.ResponseWriter, r *http.Request) {
	p, err := categoryParams(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	standings, err := h.categoryService.Standings(r.Context(), p.tournamentID, p.categoryID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type categoryStep func(ctx context.Context, tournamentID, categoryID string) (*models.Category, error)

func (h *CategoryHandler) step(w http.ResponseWriter, r *http.Request, op categoryStep) {
	p, err := categoryParams(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	category, err := op(r.Context(), p.tournamentID, p.categoryID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"category": category}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
