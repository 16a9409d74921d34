package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/keysesh/keeper-league-manager-sub004/controller"
	"github.com/keysesh/keeper-league-manager-sub004/controller/mockcontroller"
	"github.com/keysesh/keeper-league-manager-sub004/db"
	"github.com/keysesh/keeper-league-manager-sub004/model"
	"github.com/stretchr/testify/mock"
	"github.com/unrolled/render"
)

var testAdmin = AdminCreds{User: "admin", Password: "pa55word"}

func newTestServer(ctrl controller.C) *httptest.Server {
	return httptest.NewServer(getRouter(ctrl, render.New(), testAdmin))
}

func TestGetLeagueHandler(t *testing.T) {
	ctrl := &mockcontroller.C{}
	ctrl.On("GetLeague", mock.Anything, int32(7)).Return(&model.LeagueSeason{
		ID:         7,
		ExternalID: "ext-7",
		Name:       "The Keeper League",
		Season:     2024,
	}, nil)
	ctrl.On("GetLeague", mock.Anything, int32(8)).Return(nil, db.ErrLeagueNotFound)

	s := newTestServer(ctrl)
	defer s.Close()

	resp, err := http.Get(s.URL + "/leagues/7")
	if err != nil {
		t.Fatalf("error making request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("unexpected status code. Got: %d", resp.StatusCode)
	}

	var l model.LeagueSeason
	if err := json.NewDecoder(resp.Body).Decode(&l); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if l.ID != 7 || l.Name != "The Keeper League" {
		t.Errorf("league not as expected: %+v", l)
	}

	resp, err = http.Get(s.URL + "/leagues/8")
	if err != nil {
		t.Fatalf("error making request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for an unknown league, got: %d", resp.StatusCode)
	}
}

func TestSyncActionHandler(t *testing.T) {
	tests := map[string]struct {
		action   string
		setup    func(ctrl *mockcontroller.C)
		exStatus int
	}{
		"refresh": {
			action:   "refresh",
			exStatus: http.StatusOK,
			setup: func(ctrl *mockcontroller.C) {
				ctrl.On("RefreshLeague", mock.Anything, int32(7)).
					Return(&model.SyncResult{LeagueID: 7, Rosters: 12}, nil)
			},
		},
		"sync": {
			action:   "sync",
			exStatus: http.StatusOK,
			setup: func(ctrl *mockcontroller.C) {
				ctrl.On("SyncLeague", mock.Anything, int32(7)).
					Return(&model.SyncResult{LeagueID: 7, Picks: 180}, nil)
			},
		},
		"sync-history": {
			action:   "sync-history",
			exStatus: http.StatusOK,
			setup: func(ctrl *mockcontroller.C) {
				ctrl.On("SyncLeagueHistory", mock.Anything, int32(7)).
					Return(&model.SyncResult{LeagueID: 7, Seasons: 3}, nil)
			},
		},
		"deprecated full-sync alias": {
			action:   "full-sync",
			exStatus: http.StatusOK,
			setup: func(ctrl *mockcontroller.C) {
				ctrl.On("SyncLeagueHistory", mock.Anything, int32(7)).
					Return(&model.SyncResult{LeagueID: 7, Seasons: 3}, nil)
			},
		},
		"sync-drafts": {
			action:   "sync-drafts",
			exStatus: http.StatusOK,
			setup: func(ctrl *mockcontroller.C) {
				ctrl.On("SyncLeagueDrafts", mock.Anything, int32(7)).
					Return(&model.SyncResult{LeagueID: 7, Picks: 180}, nil)
			},
		},
		"update-keepers": {
			action:   "update-keepers",
			exStatus: http.StatusOK,
			setup: func(ctrl *mockcontroller.C) {
				ctrl.On("UpdateKeepers", mock.Anything, int32(7), false).
					Return(&controller.KeeperComputation{}, nil)
			},
		},
		"sync-players": {
			action:   "sync-players",
			exStatus: http.StatusOK,
			setup: func(ctrl *mockcontroller.C) {
				ctrl.On("UpdatePlayers", mock.Anything).Return(4200, nil)
			},
		},
		"unknown action": {
			action:   "reticulate-splines",
			exStatus: http.StatusBadRequest,
			setup:    func(ctrl *mockcontroller.C) {},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			ctrl := &mockcontroller.C{}
			tc.setup(ctrl)

			s := newTestServer(ctrl)
			defer s.Close()

			body := strings.NewReader(`{"action": "` + tc.action + `"}`)
			resp, err := http.Post(s.URL+"/leagues/7/sync", "application/json", body)
			if err != nil {
				t.Fatalf("error making request: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tc.exStatus {
				b, _ := io.ReadAll(resp.Body)
				t.Errorf("unexpected status code. Got: %d, body: %s", resp.StatusCode, b)
			}
			ctrl.AssertExpectations(t)
		})
	}
}

func TestSaveSettingsHandler(t *testing.T) {
	ctrl := &mockcontroller.C{}
	ctrl.On("SaveKeeperSettings", mock.Anything, int32(7), mock.Anything).
		Return(errors.New("maxFranchiseTags (3) + maxRegularKeepers (5) exceeds maxKeepers (7)"))

	s := newTestServer(ctrl)
	defer s.Close()

	body := strings.NewReader(`{"maxKeepers": 7, "maxFranchiseTags": 3, "maxRegularKeepers": 5,
		"regularKeeperMaxYears": 2, "undraftedRound": 8, "minimumRound": 1, "costReductionPerYear": 1}`)
	req, err := http.NewRequest(http.MethodPut, s.URL+"/leagues/7/settings", body)
	if err != nil {
		t.Fatalf("error creating request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("error making request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid settings, got: %d", resp.StatusCode)
	}
	b, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(b), "exceeds maxKeepers") {
		t.Errorf("response body does not contain expected string: %s", b)
	}
}

func TestOverrideKeeperHandler(t *testing.T) {
	ctrl := &mockcontroller.C{}
	ctrl.On("OverrideKeeper", mock.Anything, mock.MatchedBy(func(req controller.OverrideRequest) bool {
		return req.LeagueID == 7 && req.PlayerID == "2374" && req.Action == "add"
	})).Return(nil)

	s := newTestServer(ctrl)
	defer s.Close()

	body := strings.NewReader(`{"rosterId": 3, "playerId": "2374", "action": "add", "reason": "missed deadline"}`)
	resp, err := http.Post(s.URL+"/leagues/7/keepers/override", "application/json", body)
	if err != nil {
		t.Fatalf("error making request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("unexpected status code. Got: %d", resp.StatusCode)
	}
	ctrl.AssertExpectations(t)
}

func TestTimelineHandler(t *testing.T) {
	ctrl := &mockcontroller.C{}
	ctrl.On("GetPlayerTimeline", mock.Anything, int32(7), "2374").Return([]model.TimelineEvent{
		{Type: model.EventDrafted, LeagueID: 7, Season: 2023, Round: 3, PlayerID: "2374", ToOwner: "owner-a"},
	}, nil)

	s := newTestServer(ctrl)
	defer s.Close()

	resp, err := http.Get(s.URL + "/leagues/7/players/2374/timeline")
	if err != nil {
		t.Fatalf("error making request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("unexpected status code. Got: %d", resp.StatusCode)
	}

	var events []model.TimelineEvent
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if len(events) != 1 || events[0].Type != model.EventDrafted {
		t.Errorf("timeline not as expected: %+v", events)
	}
}

func TestAdminPlayersHandler_auth(t *testing.T) {
	ctrl := &mockcontroller.C{}
	ctrl.On("UpdatePlayers", mock.Anything).Return(100, nil)

	s := newTestServer(ctrl)
	defer s.Close()

	// No credentials.
	resp, err := http.Post(s.URL+"/admin/players", "application/json", nil)
	if err != nil {
		t.Fatalf("error making request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 without credentials, got: %d", resp.StatusCode)
	}

	// With credentials.
	req, err := http.NewRequest(http.MethodPost, s.URL+"/admin/players", nil)
	if err != nil {
		t.Fatalf("error creating request: %v", err)
	}
	req.SetBasicAuth(testAdmin.User, testAdmin.Password)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("error making request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("unexpected status code. Got: %d", resp.StatusCode)
	}
}
