package handlers

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/Dosada05/pairs-tournament/models"
	"github.com/Dosada05/pairs-tournament/repositories"
	"github.com/Dosada05/pairs-tournament/services"
)

const defaultListLimit = 20

type TournamentHandler struct {
	tournamentService services.TournamentService
	validate          *validator.Validate
}

func NewTournamentHandler(ts services.TournamentService) *TournamentHandler {
	return &TournamentHandler{
		tournamentService: ts,
		validate:          newValidator(),
	}
}

// CreateHandler godoc
// @Summary Create a tournament with its categories
// @Tags tournaments
// @Accept json
// @Produce json
// @Param input body services.CreateTournamentInput true "Tournament"
// @Success 201 {object} models.Tournament
// @Failure 422 {object} map[string]string
// @Router /tournaments [post]
func (h *TournamentHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input services.CreateTournamentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := validateRequest(r.Context(), h.validate, input); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	tournament, err := h.tournamentService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetByIDHandler godoc
// @Summary Get a tournament
// @Tags tournaments
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Success 200 {object} models.Tournament
// @Failure 404 {object} map[string]string
// @Router /tournaments/{tournamentID} [get]
func (h *TournamentHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListHandler serves GET /tournaments?status=&limit=&offset=
func (h *TournamentHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := listFilter(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournaments, err := h.tournamentService.List(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournaments": tournaments}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// OverviewHandler serves GET /tournaments/overview with the same filters as ListHandler.
func (h *TournamentHandler) OverviewHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := listFilter(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	overviews, err := h.tournamentService.ListOverviews(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournaments": overviews}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// AddCategoryHandler godoc
// @Summary Add a category to a tournament
// @Tags tournaments
// @Accept json
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param input body services.CreateCategoryInput true "Category"
// @Success 201 {object} models.Category
// @Router /tournaments/{tournamentID}/categories [post]
func (h *TournamentHandler) AddCategoryHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.CreateCategoryInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := validateRequest(r.Context(), h.validate, input); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	category, err := h.tournamentService.AddCategory(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"category": category}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DrawHandler godoc
// @Summary Draw zones for every category whose registration is closed
// @Tags tournaments
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Success 200 {object} models.Tournament
// @Failure 422 {object} map[string]string
// @Router /tournaments/{tournamentID}/draw [post]
func (h *TournamentHandler) DrawHandler(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.tournamentService.Draw)
}

func (h *TournamentHandler) CancelHandler(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.tournamentService.Cancel)
}

func (h *TournamentHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := urlParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.tournamentService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TournamentHandler) mutate(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id string) (*models.Tournament, error)) {
	id, err := urlParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := op(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func listFilter(r *http.Request) (repositories.ListTournamentsFilter, error) {
	var filter repositories.ListTournamentsFilter
	if s := r.URL.Query().Get("status"); s != "" {
		status := models.TournamentStatus(s)
		filter.Status = &status
	}
	limit, err := queryInt(r, "limit", defaultListLimit, 1)
	if err != nil {
		return filter, err
	}
	offset, err := queryInt(r, "offset", 0, 0)
	if err != nil {
		return filter, err
	}
	filter.Limit = limit
	filter.Offset = offset
	return filter, nil
}
