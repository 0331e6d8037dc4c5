package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	adaudio "github.com/dkeye/VoiceClient/internal/adapters/audio"
	"github.com/dkeye/VoiceClient/internal/adapters/signal"
	"github.com/dkeye/VoiceClient/internal/adapters/store"
	"github.com/dkeye/VoiceClient/internal/app"
	"github.com/dkeye/VoiceClient/internal/app/audio"
	"github.com/dkeye/VoiceClient/internal/app/orch"
	"github.com/dkeye/VoiceClient/internal/config"
	"github.com/dkeye/VoiceClient/internal/core"
	"github.com/dkeye/VoiceClient/internal/i18n"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type testAPI struct {
	router *gin.Engine
	view   *ViewState
}

func newTestAPI(t *testing.T, token string) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	st := store.NewMemory()
	text, err := i18n.New(ctx, i18n.Options{Language: "en", Store: st, Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("i18n.New: %v", err)
	}
	loop := core.NewEventLoop(0, zerolog.Nop())
	go func() { _ = loop.Run(ctx) }()

	view := NewViewState(text)
	var pipe *audio.Pipeline
	mgr := signal.NewManager(signal.Options{URL: "ws://127.0.0.1:1/ws"}, loop, playerFunc(func(s []float32) { pipe.Playback(s) }), zerolog.Nop())
	pipe = audio.NewPipeline(adaudio.Null{}, mgr, loop, audio.Options{}, zerolog.Nop())

	o := &orch.Orchestrator{
		Channel:   mgr,
		Media:     pipe,
		Session:   app.NewSession(st, zerolog.Nop()),
		Snapshots: &app.Snapshots{},
		Invites:   app.NewInvitations(zerolog.Nop()),
		Renderer:  view,
		Prompter:  view,
		Text:      text,
		Log:       zerolog.Nop(),
		Ctx:       ctx,
	}
	cfg := &config.Config{Mode: "test", ControlToken: token}
	return &testAPI{
		router: SetupRouter(cfg, &Controller{Loop: loop, Orch: o, View: view}),
		view:   view,
	}
}

type playerFunc func([]float32)

func (f playerFunc) Playback(s []float32) { f(s) }

func (a *testAPI) do(t *testing.T, method, path, body string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func TestStatusStartsInSetup(t *testing.T) {
	api := newTestAPI(t, "")
	w := api.do(t, http.MethodGet, "/api/status", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status code = %d, body %s", w.Code, w.Body)
	}
	var st struct {
		State    string `json:"state"`
		Language string `json:"language"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &st); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if st.State != "setup" || st.Language != "en" {
		t.Fatalf("status = %+v", st)
	}
}

func TestLoginValidation(t *testing.T) {
	api := newTestAPI(t, "")
	w := api.do(t, http.MethodPost, "/api/login", `{"username":"","password":"pw"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("code = %d, want 400", w.Code)
	}
	notices := api.view.Snapshot().Notices
	if len(notices) != 1 || notices[0].Level != core.NoticeError {
		t.Fatalf("notices = %+v", notices)
	}

	if w := api.do(t, http.MethodPost, "/api/login", `not json`); w.Code != http.StatusBadRequest {
		t.Fatalf("malformed body code = %d", w.Code)
	}
}

func TestErrorMapping(t *testing.T) {
	api := newTestAPI(t, "")
	cases := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"join unauthenticated", http.MethodPost, "/api/rooms/1/join", "", http.StatusConflict},
		{"bad room id", http.MethodPost, "/api/rooms/abc/join", "", http.StatusBadRequest},
		{"voice unauthenticated", http.MethodPost, "/api/voice/start", "", http.StatusConflict},
		{"admin without role", http.MethodPost, "/api/admin/panel/open", "", http.StatusForbidden},
		{"unknown invitation", http.MethodPost, "/api/invitations/" + uuid.NewString(), `{"accept":true}`, http.StatusNotFound},
		{"bad invitation id", http.MethodPost, "/api/invitations/nope", `{"accept":true}`, http.StatusBadRequest},
		{"unsupported language", http.MethodPut, "/api/language", `{"language":"fr"}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := api.do(t, tc.method, tc.path, tc.body)
			if w.Code != tc.want {
				t.Fatalf("code = %d, want %d, body %s", w.Code, tc.want, w.Body)
			}
		})
	}
}

func TestLanguageChangesLabels(t *testing.T) {
	api := newTestAPI(t, "")
	before := api.view.Snapshot().Call.MuteLabel
	if w := api.do(t, http.MethodPut, "/api/language", `{"language":"zh"}`); w.Code != http.StatusNoContent {
		t.Fatalf("code = %d, body %s", w.Code, w.Body)
	}
	after := api.view.Snapshot().Call.MuteLabel
	if before == after {
		t.Fatalf("mute label unchanged: %q", after)
	}
}

func TestControlToken(t *testing.T) {
	api := newTestAPI(t, "secret")
	if w := api.do(t, http.MethodGet, "/api/view", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("no token code = %d", w.Code)
	}
	if w := api.do(t, http.MethodGet, "/api/view", "", "Authorization", "Bearer wrong"); w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong token code = %d", w.Code)
	}
	if w := api.do(t, http.MethodGet, "/api/view", "", "Authorization", "Bearer secret"); w.Code != http.StatusOK {
		t.Fatalf("good token code = %d", w.Code)
	}
}
