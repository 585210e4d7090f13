package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/debattle/engine/internal/adapters/http/api"
	service "github.com/debattle/engine/internal/app"
	"github.com/debattle/engine/internal/domain/model"
)

// mockEngine implements api.Dependencies with canned responses.
type mockEngine struct {
	debate    *model.Debate
	user      *model.User
	board     *model.Leaderboard
	catalog   []model.Achievement
	topics    []model.Topic
	duplicate bool
	err       error
}

func (m *mockEngine) CreateDebate(_ context.Context, _ service.CreateDebateRequest) (*model.Debate, error) {
	return m.debate, m.err
}

func (m *mockEngine) StartDebate(_ context.Context, _ string) (*model.Debate, error) {
	return m.debate, m.err
}

func (m *mockEngine) CancelDebate(_ context.Context, _ string) (*model.Debate, error) {
	return m.debate, m.err
}

func (m *mockEngine) SubmitJudgment(_ context.Context, _ string, _ model.Judgment) (*model.Debate, bool, error) {
	return m.debate, m.duplicate, m.err
}

func (m *mockEngine) Debate(_ context.Context, _ string) (*model.Debate, error) {
	return m.debate, m.err
}

func (m *mockEngine) User(_ context.Context, _ string) (*model.User, error) {
	return m.user, m.err
}

func (m *mockEngine) Leaderboard(_ context.Context, limit int) (*model.Leaderboard, error) {
	if m.err != nil {
		return nil, m.err
	}
	board := *m.board
	if limit > 0 && len(board.Entries) > limit {
		board.Entries = board.Entries[:limit]
	}
	return &board, nil
}

func (m *mockEngine) Achievements(_ context.Context) ([]model.Achievement, error) {
	return m.catalog, m.err
}

func (m *mockEngine) Topics(_ context.Context) ([]model.Topic, error) {
	return m.topics, m.err
}

func (m *mockEngine) GetStats() map[string]interface{} {
	return map[string]interface{}{"started": true}
}

func newTestServer(engine *mockEngine, opts ...api.Option) *httptest.Server {
	mux := http.NewServeMux()
	api.NewServer(engine, engine, opts...).Register(context.Background(), mux)
	return httptest.NewServer(mux)
}

func sampleDebate(status model.Status) *model.Debate {
	return &model.Debate{
		ID:      "debate-1",
		TopicID: "topic-1",
		Topic:   "Cities should ban cars",
		Status:  status,
		Participants: [2]model.Participant{
			{UserID: "alice", Stance: model.StancePro, Rating: 1200},
			{UserID: "bob", Stance: model.StanceCon, Rating: 1200},
		},
	}
}

func TestDebateEndpoints(t *testing.T) {
	Convey("Given the API over a mocked engine", t, func() {
		Convey("When POST /debates has a valid body", func() {
			srv := newTestServer(&mockEngine{debate: sampleDebate(model.StatusCreated)})
			defer srv.Close()

			body := `{"topic_id":"topic-1","format":"standard","pro_user_id":"alice","con_user_id":"bob"}`
			resp, err := http.Post(srv.URL+"/debates", "application/json", strings.NewReader(body))
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the debate is returned with 201", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusCreated)
				var debate model.Debate
				So(json.NewDecoder(resp.Body).Decode(&debate), ShouldBeNil)
				So(debate.ID, ShouldEqual, "debate-1")
			})
		})

		Convey("When POST /debates misses a participant", func() {
			srv := newTestServer(&mockEngine{})
			defer srv.Close()

			body := `{"topic_id":"topic-1","pro_user_id":"alice"}`
			resp, err := http.Post(srv.URL+"/debates", "application/json", strings.NewReader(body))
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the engine rejects the participants", func() {
			srv := newTestServer(&mockEngine{err: service.ErrUnknownUser})
			defer srv.Close()

			body := `{"topic_id":"topic-1","pro_user_id":"alice","con_user_id":"ghost"}`
			resp, err := http.Post(srv.URL+"/debates", "application/json", strings.NewReader(body))
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When GET /debates/{id} misses", func() {
			srv := newTestServer(&mockEngine{err: service.ErrNotFound})
			defer srv.Close()

			resp, err := http.Get(srv.URL + "/debates/ghost")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		})

		Convey("When an action hits a terminal debate", func() {
			srv := newTestServer(&mockEngine{err: service.ErrInvalidTransition})
			defer srv.Close()

			resp, err := http.Post(srv.URL+"/debates/debate-1/start", "application/json", nil)
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusConflict)
		})

		Convey("When an unsupported action is requested", func() {
			srv := newTestServer(&mockEngine{debate: sampleDebate(model.StatusActive)})
			defer srv.Close()

			resp, err := http.Post(srv.URL+"/debates/debate-1/pause", "application/json", nil)
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusMethodNotAllowed)
		})
	})
}

func TestJudgmentEndpoint(t *testing.T) {
	Convey("Given the API over a mocked engine", t, func() {
		judgmentBody := `{"id":"judgment-1","winner":"alice","confidence":0.9,` +
			`"scores":{"alice":{"logic":80,"evidence":75,"clarity":70,"rebuttal":85,"engagement":90},` +
			`"bob":{"logic":60,"evidence":65,"clarity":70,"rebuttal":55,"engagement":50}}}`

		Convey("When a fresh judgment is accepted", func() {
			srv := newTestServer(&mockEngine{debate: sampleDebate(model.StatusCompleted)})
			defer srv.Close()

			resp, err := http.Post(srv.URL+"/debates/debate-1/judgment", "application/json", strings.NewReader(judgmentBody))
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the ack reports completion", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				var ack struct {
					Status    string `json:"status"`
					Duplicate bool   `json:"duplicate"`
				}
				So(json.NewDecoder(resp.Body).Decode(&ack), ShouldBeNil)
				So(ack.Status, ShouldEqual, "completed")
				So(ack.Duplicate, ShouldBeFalse)
			})
		})

		Convey("When the judgment id was seen before", func() {
			srv := newTestServer(&mockEngine{debate: sampleDebate(model.StatusCompleted), duplicate: true})
			defer srv.Close()

			resp, err := http.Post(srv.URL+"/debates/debate-1/judgment", "application/json", strings.NewReader(judgmentBody))
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the ack is a duplicate, still 200", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				var ack struct {
					Status    string `json:"status"`
					Duplicate bool   `json:"duplicate"`
				}
				So(json.NewDecoder(resp.Body).Decode(&ack), ShouldBeNil)
				So(ack.Status, ShouldEqual, "duplicate")
				So(ack.Duplicate, ShouldBeTrue)
			})
		})

		Convey("When the judgment fails validation", func() {
			srv := newTestServer(&mockEngine{err: service.ErrValidation})
			defer srv.Close()

			resp, err := http.Post(srv.URL+"/debates/debate-1/judgment", "application/json", strings.NewReader(judgmentBody))
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the commit keeps losing the concurrency race", func() {
			srv := newTestServer(&mockEngine{err: service.ErrCommitExhausted})
			defer srv.Close()

			resp, err := http.Post(srv.URL+"/debates/debate-1/judgment", "application/json", strings.NewReader(judgmentBody))
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusServiceUnavailable)
		})
	})
}

func TestReadEndpoints(t *testing.T) {
	Convey("Given the API over a mocked engine", t, func() {
		engine := &mockEngine{
			user: &model.User{UID: "alice", DisplayName: "Alice", Rating: 1232},
			board: &model.Leaderboard{Entries: []model.LeaderboardEntry{
				{Rank: 1, UserID: "alice", Rating: 1232},
				{Rank: 2, UserID: "bob", Rating: 1168},
			}},
			catalog: []model.Achievement{{ID: "first_win"}},
			topics:  []model.Topic{{ID: "topic-1", Title: "Cities should ban cars"}},
		}

		Convey("When GET /leaderboard is limited", func() {
			srv := newTestServer(engine)
			defer srv.Close()

			resp, err := http.Get(srv.URL + "/leaderboard?limit=1")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then only the top entry returns", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				var board model.Leaderboard
				So(json.NewDecoder(resp.Body).Decode(&board), ShouldBeNil)
				So(len(board.Entries), ShouldEqual, 1)
				So(board.Entries[0].UserID, ShouldEqual, "alice")
			})
		})

		Convey("When the limit is out of range", func() {
			srv := newTestServer(engine, api.WithMaxLeaderboardLimit(10))
			defer srv.Close()

			for _, q := range []string{"limit=0", "limit=11", "limit=abc"} {
				resp, err := http.Get(srv.URL + "/leaderboard?" + q)
				So(err, ShouldBeNil)
				resp.Body.Close()
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			}
		})

		Convey("When GET /users/{id} finds the user", func() {
			srv := newTestServer(engine)
			defer srv.Close()

			resp, err := http.Get(srv.URL + "/users/alice")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			var user model.User
			So(json.NewDecoder(resp.Body).Decode(&user), ShouldBeNil)
			So(user.Rating, ShouldEqual, 1232)
		})

		Convey("When GET /users/ has a nested path", func() {
			srv := newTestServer(engine)
			defer srv.Close()

			resp, err := http.Get(srv.URL + "/users/alice/history")
			So(err, ShouldBeNil)
			resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the catalogs are fetched", func() {
			srv := newTestServer(engine)
			defer srv.Close()

			for _, path := range []string{"/achievements", "/topics"} {
				resp, err := http.Get(srv.URL + path)
				So(err, ShouldBeNil)
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				resp.Body.Close()
			}
		})

		Convey("When GET /stats is fetched", func() {
			srv := newTestServer(engine)
			defer srv.Close()

			resp, err := http.Get(srv.URL + "/stats")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			var stats map[string]interface{}
			So(json.NewDecoder(resp.Body).Decode(&stats), ShouldBeNil)
			So(stats["started"], ShouldEqual, true)
		})
	})
}

func TestRateLimiting(t *testing.T) {
	Convey("Given a server with a one-token bucket", t, func() {
		engine := &mockEngine{debate: sampleDebate(model.StatusCreated)}
		srv := newTestServer(engine, api.WithRateLimit(0.001, 1))
		defer srv.Close()

		body := `{"topic_id":"topic-1","pro_user_id":"alice","con_user_id":"bob"}`

		Convey("When two writes arrive back to back", func() {
			first, err := http.Post(srv.URL+"/debates", "application/json", strings.NewReader(body))
			So(err, ShouldBeNil)
			first.Body.Close()

			second, err := http.Post(srv.URL+"/debates", "application/json", strings.NewReader(body))
			So(err, ShouldBeNil)
			second.Body.Close()

			Convey("Then the second is rejected with 429", func() {
				So(first.StatusCode, ShouldEqual, http.StatusCreated)
				So(second.StatusCode, ShouldEqual, http.StatusTooManyRequests)
			})

			Convey("Then reads stay unaffected", func() {
				resp, err := http.Get(srv.URL + "/debates/debate-1")
				So(err, ShouldBeNil)
				resp.Body.Close()
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
			})
		})
	})
}
