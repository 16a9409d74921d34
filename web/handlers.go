package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/keysesh/keeper-league-manager-sub004/controller"
	"github.com/keysesh/keeper-league-manager-sub004/db"
	"github.com/keysesh/keeper-league-manager-sub004/model"
	"github.com/keysesh/keeper-league-manager-sub004/sleeper"
	"github.com/unrolled/render"
)

type errorResponse struct {
	Error string `json:"error"`
}

// renderError maps the storage and platform sentinels onto HTTP statuses.
// Everything unrecognized is a 500.
func renderError(render *render.Render, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, db.ErrLeagueNotFound),
		errors.Is(err, db.ErrPlayerNotFound),
		errors.Is(err, db.ErrRosterNotFound),
		errors.Is(err, db.ErrKeeperNotFound),
		errors.Is(err, sleeper.ErrLeagueNotFound),
		errors.Is(err, sleeper.ErrUserNotFound):
		status = http.StatusNotFound
	}
	render.JSON(w, status, errorResponse{Error: err.Error()})
}

func badRequest(render *render.Render, w http.ResponseWriter, format string, args ...any) {
	render.JSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf(format, args...)})
}

// leagueID pulls the league id out of the URL. The route pattern already
// guarantees it is numeric.
func leagueID(r *http.Request) int32 {
	id, _ := strconv.Atoi(chi.URLParam(r, "leagueID"))
	return int32(id)
}

func rootHandler(_ controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.Text(w, http.StatusOK, "keeper league manager")
	}
}

func getPlayerHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := ctrl.GetPlayer(r.Context(), chi.URLParam(r, "playerID"))
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, p)
	}
}

func listLeaguesHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leagues, err := ctrl.ListLeagues(r.Context())
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, leagues)
	}
}

func addLeagueHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ExternalID string `json:"externalId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			badRequest(render, w, "error parsing request body: %v", err)
			return
		}
		if body.ExternalID == "" {
			badRequest(render, w, "externalId is required")
			return
		}

		l, err := ctrl.AddLeague(r.Context(), body.ExternalID)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusCreated, l)
	}
}

func userLeaguesHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		season := r.URL.Query().Get("season")
		if season == "" {
			badRequest(render, w, "season query parameter is required")
			return
		}

		leagues, err := ctrl.GetLeaguesForUser(r.Context(), chi.URLParam(r, "username"), season)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, leagues)
	}
}

func getLeagueHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l, err := ctrl.GetLeague(r.Context(), leagueID(r))
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, l)
	}
}

func deleteLeagueHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ctrl.DeleteLeague(r.Context(), leagueID(r)); err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

func chainHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l, err := ctrl.GetLeague(r.Context(), leagueID(r))
		if err != nil {
			renderError(render, w, err)
			return
		}

		chain, err := ctrl.ResolveChain(r.Context(), l.ExternalID, controller.DefaultChainDepth)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, chain)
	}
}

func championHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		champ, err := ctrl.GetChampion(r.Context(), leagueID(r))
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, champ)
	}
}

// syncActionHandler is the single dispatch point for everything that writes.
// "full-sync" is a deprecated alias of "sync-history" kept for old clients.
func syncActionHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Action string `json:"action"`
			Force  bool   `json:"force"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			badRequest(render, w, "error parsing request body: %v", err)
			return
		}

		id := leagueID(r)
		ctx := r.Context()

		action := body.Action
		if action == "full-sync" {
			action = "sync-history"
		}

		switch action {
		case "refresh":
			result, err := ctrl.RefreshLeague(ctx, id)
			if err != nil {
				renderError(render, w, err)
				return
			}
			render.JSON(w, http.StatusOK, result)
		case "sync":
			result, err := ctrl.SyncLeague(ctx, id)
			if err != nil {
				renderError(render, w, err)
				return
			}
			render.JSON(w, http.StatusOK, result)
		case "sync-history":
			result, err := ctrl.SyncLeagueHistory(ctx, id)
			if err != nil {
				renderError(render, w, err)
				return
			}
			render.JSON(w, http.StatusOK, result)
		case "sync-drafts":
			result, err := ctrl.SyncLeagueDrafts(ctx, id)
			if err != nil {
				renderError(render, w, err)
				return
			}
			render.JSON(w, http.StatusOK, result)
		case "update-keepers":
			comp, err := ctrl.UpdateKeepers(ctx, id, body.Force)
			if err != nil {
				renderError(render, w, err)
				return
			}
			render.JSON(w, http.StatusOK, comp)
		case "sync-players":
			count, err := ctrl.UpdatePlayers(ctx)
			if err != nil {
				renderError(render, w, err)
				return
			}
			render.JSON(w, http.StatusOK, &model.SyncResult{
				Players: count,
				Message: "player catalog updated",
			})
		default:
			badRequest(render, w, "unknown sync action: %s", body.Action)
		}
	}
}

func syncStatusHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := ctrl.GetSyncStatus(r.Context(), leagueID(r))
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, status)
	}
}

func getKeepersHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		season := 0
		if s := r.URL.Query().Get("season"); s != "" {
			var err error
			season, err = strconv.Atoi(s)
			if err != nil {
				badRequest(render, w, "error parsing season: %v", err)
				return
			}
		}

		keepers, err := ctrl.GetKeepers(r.Context(), leagueID(r), season)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, keepers)
	}
}

func overrideKeeperHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req controller.OverrideRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badRequest(render, w, "error parsing request body: %v", err)
			return
		}
		req.LeagueID = leagueID(r)

		if err := ctrl.OverrideKeeper(r.Context(), req); err != nil {
			if errors.Is(err, db.ErrLeagueNotFound) || errors.Is(err, db.ErrKeeperNotFound) {
				renderError(render, w, err)
			} else {
				badRequest(render, w, "%v", err)
			}
			return
		}
		render.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func getOverridesHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		overrides, err := ctrl.GetKeeperOverrides(r.Context(), leagueID(r))
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, overrides)
	}
}

func getSettingsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := ctrl.GetKeeperSettings(r.Context(), leagueID(r))
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, settings)
	}
}

func saveSettingsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var settings model.KeeperSettings
		if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
			badRequest(render, w, "error parsing request body: %v", err)
			return
		}

		if err := ctrl.SaveKeeperSettings(r.Context(), leagueID(r), &settings); err != nil {
			if errors.Is(err, db.ErrLeagueNotFound) {
				renderError(render, w, err)
			} else {
				badRequest(render, w, "%v", err)
			}
			return
		}
		render.JSON(w, http.StatusOK, settings)
	}
}

func timelineHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events, err := ctrl.GetPlayerTimeline(r.Context(), leagueID(r), chi.URLParam(r, "playerID"))
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, events)
	}
}

func forceUpdatePlayers(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := ctrl.UpdatePlayers(r.Context())
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, map[string]int{"players": count})
	}
}
