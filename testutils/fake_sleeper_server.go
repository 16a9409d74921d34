package testutils

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
)

// FakeSleeperServer serves canned JSON keyed by request path. Paths with no
// fixture answer 200 with a "null" body, which is what the real platform does
// for unknown objects.
type FakeSleeperServer struct {
	s *httptest.Server

	mu        sync.Mutex
	responses map[string]string
}

func NewFakeSleeperServer() *FakeSleeperServer {
	f := &FakeSleeperServer{
		responses: make(map[string]string),
	}
	f.s = httptest.NewServer(http.HandlerFunc(f.handle))
	return f
}

func (f *FakeSleeperServer) Close() {
	f.s.Close()
}

func (f *FakeSleeperServer) URL() string {
	return f.s.URL
}

// SetResponse installs the raw JSON body served for a path.
func (f *FakeSleeperServer) SetResponse(path, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[path] = body
}

func (f *FakeSleeperServer) SetLeague(leagueID, body string) {
	f.SetResponse(fmt.Sprintf("/v1/league/%s", leagueID), body)
}

func (f *FakeSleeperServer) SetRosters(leagueID, body string) {
	f.SetResponse(fmt.Sprintf("/v1/league/%s/rosters", leagueID), body)
}

func (f *FakeSleeperServer) SetUsers(leagueID, body string) {
	f.SetResponse(fmt.Sprintf("/v1/league/%s/users", leagueID), body)
}

func (f *FakeSleeperServer) SetDrafts(leagueID, body string) {
	f.SetResponse(fmt.Sprintf("/v1/league/%s/drafts", leagueID), body)
}

func (f *FakeSleeperServer) SetDraftPicks(draftID, body string) {
	f.SetResponse(fmt.Sprintf("/v1/draft/%s/picks", draftID), body)
}

func (f *FakeSleeperServer) SetTradedPicks(leagueID, body string) {
	f.SetResponse(fmt.Sprintf("/v1/league/%s/traded_picks", leagueID), body)
}

func (f *FakeSleeperServer) SetTransactions(leagueID string, week int, body string) {
	f.SetResponse(fmt.Sprintf("/v1/league/%s/transactions/%d", leagueID, week), body)
}

func (f *FakeSleeperServer) SetWinnersBracket(leagueID, body string) {
	f.SetResponse(fmt.Sprintf("/v1/league/%s/winners_bracket", leagueID), body)
}

func (f *FakeSleeperServer) SetUser(username, body string) {
	f.SetResponse(fmt.Sprintf("/v1/user/%s", username), body)
}

func (f *FakeSleeperServer) SetUserLeagues(userID, season, body string) {
	f.SetResponse(fmt.Sprintf("/v1/user/%s/leagues/nfl/%s", userID, season), body)
}

func (f *FakeSleeperServer) SetPlayers(body string) {
	f.SetResponse("/v1/players/nfl", body)
}

func (f *FakeSleeperServer) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	body, ok := f.responses[r.URL.Path]
	f.mu.Unlock()

	if !ok {
		// requesting an object that doesn't exist returns a 200 with "null"
		// as the response body as of 2024-08-12
		body = "null"
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
}
