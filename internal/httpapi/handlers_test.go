package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/2024eb03012-afk/recruitment-os/internal/config"
	"github.com/2024eb03012-afk/recruitment-os/internal/dataset"
	"github.com/2024eb03012-afk/recruitment-os/internal/events"
	"github.com/2024eb03012-afk/recruitment-os/internal/history"
	"github.com/2024eb03012-afk/recruitment-os/internal/lead"
	"github.com/2024eb03012-afk/recruitment-os/internal/poll"
	"github.com/2024eb03012-afk/recruitment-os/internal/sheet"
	"github.com/2024eb03012-afk/recruitment-os/internal/signal"
	"github.com/2024eb03012-afk/recruitment-os/internal/webhook"
	"github.com/stretchr/testify/assert"
)

type testEnv struct {
	srv  *httptest.Server
	deps Deps
}

func baseConfig() config.Config {
	var cfg config.Config
	cfg.App.Port = 38471
	cfg.Sheets.Leads = config.Sheet{RefreshSeconds: 30}
	cfg.Sheets.Signals = config.Sheet{RefreshSeconds: 300}
	cfg.Webhooks.RatePerSec = 100
	cfg.Webhooks.Burst = 100
	cfg.Webhooks.TimeoutSeconds = 5
	return cfg
}

func newTestEnv(t *testing.T, cfg config.Config) *testEnv {
	t.Helper()

	db, err := history.Open()
	assert.NoError(t, err)
	assert.NoError(t, history.Migrate(db.Pool))
	t.Cleanup(func() { _ = db.Close() })

	hub := events.NewHub()
	leads := dataset.NewStore[*lead.Lead]()
	signals := dataset.NewStore[*signal.Signal]()

	runner := &poll.Runner{
		Sheets:  sheet.NewClient(5 * time.Second),
		Leads:   leads,
		Signals: signals,
		History: db,
		Hub:     hub,
	}

	cfgPath := filepath.Join(t.TempDir(), "config.yml")
	assert.NoError(t, config.SaveAtomic(cfgPath, cfg))

	var cfgVal, tokenVal atomic.Value
	cfgVal.Store(cfg)
	tokenVal.Store("")

	deps := Deps{
		History:     db,
		Hub:         hub,
		Leads:       leads,
		Signals:     signals,
		Runner:      runner,
		Webhooks:    webhook.NewClient(5*time.Second, webhook.NewHostLimiter(100, 100), nil),
		CfgVal:      &cfgVal,
		TokenVal:    &tokenVal,
		UserCfgPath: cfgPath,
		LoadCfg:     func() (config.Config, error) { return config.Load(cfgPath) },
	}

	srv := httptest.NewServer(NewMux(deps))
	t.Cleanup(srv.Close)
	return &testEnv{srv: srv, deps: deps}
}

func (e *testEnv) get(t *testing.T, path string, out any) int {
	t.Helper()
	resp, err := http.Get(e.srv.URL + path)
	assert.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (e *testEnv) post(t *testing.T, path, body string, out any) int {
	t.Helper()
	resp, err := http.Post(e.srv.URL+path, "application/json", strings.NewReader(body))
	assert.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func seedLeads(e *testEnv, rows ...*lead.Lead) {
	e.deps.Leads.Replace(rows)
}

func TestHealth(t *testing.T) {
	e := newTestEnv(t, baseConfig())
	assert.Equal(t, http.StatusOK, e.get(t, "/health", nil))
}

func TestLeadsList_NewestFirst(t *testing.T) {
	e := newTestEnv(t, baseConfig())
	seedLeads(e,
		&lead.Lead{CompanyName: "Old", Title: "Eng"},
		&lead.Lead{CompanyName: "New", Title: "Eng"},
	)

	var got []lead.Lead
	assert.Equal(t, http.StatusOK, e.get(t, "/leads", &got))
	assert.Len(t, got, 2)
	assert.Equal(t, "New", got[0].CompanyName)
	assert.Equal(t, "Old", got[1].CompanyName)
}

func TestLeadsTable(t *testing.T) {
	e := newTestEnv(t, baseConfig())
	seedLeads(e, &lead.Lead{CompanyName: "Acme", Title: "Eng"})

	var got struct {
		HTML  string `json:"html"`
		Count string `json:"count"`
		Error string `json:"error"`
	}
	assert.Equal(t, http.StatusOK, e.get(t, "/leads/table", &got))
	assert.Equal(t, "1 records", got.Count)
	assert.Contains(t, got.HTML, "Acme")
	assert.Empty(t, got.Error)
}

func TestLeadsTable_AfterFailedRefresh(t *testing.T) {
	e := newTestEnv(t, baseConfig())
	seedLeads(e, &lead.Lead{CompanyName: "Kept", Title: "Eng"})

	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusInternalServerError)
	}))
	defer bad.Close()

	err := e.deps.Runner.RefreshLeads(context.Background(), bad.URL)
	assert.Error(t, err)

	var got struct {
		HTML  string `json:"html"`
		Count string `json:"count"`
		Error string `json:"error"`
	}
	assert.Equal(t, http.StatusOK, e.get(t, "/leads/table", &got))
	assert.Equal(t, "0 records", got.Count)
	assert.NotEmpty(t, got.Error)

	// every dependent view clears, not just the table
	var list []lead.Lead
	e.get(t, "/leads", &list)
	assert.Empty(t, list)

	var metrics map[string]any
	e.get(t, "/leads/metrics", &metrics)
	assert.Equal(t, float64(0), metrics["totalJobs"])
	assert.Equal(t, float64(0), metrics["avgMatchScore"])
	assert.Equal(t, float64(0), metrics["outreachReady"])

	var charts map[string]struct {
		Labels []string `json:"labels"`
	}
	e.get(t, "/leads/charts", &charts)
	assert.Empty(t, charts["companies"].Labels)

	// the held dataset resurfaces once a refresh succeeds again
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Company name,Title\nAcme,Eng\n"))
	}))
	defer good.Close()
	assert.NoError(t, e.deps.Runner.RefreshLeads(context.Background(), good.URL))

	e.get(t, "/leads", &list)
	assert.Len(t, list, 1)
}

func TestSignalsViews_AfterFailedRefresh(t *testing.T) {
	e := newTestEnv(t, baseConfig())
	e.deps.Signals.Replace([]*signal.Signal{{CompanyName: "Kept", FundingAmount: "$5M"}})

	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusInternalServerError)
	}))
	defer bad.Close()

	assert.Error(t, e.deps.Runner.RefreshSignals(context.Background(), bad.URL))

	var got struct {
		Count string `json:"count"`
		Error string `json:"error"`
	}
	assert.Equal(t, http.StatusOK, e.get(t, "/signals/table", &got))
	assert.Equal(t, "0 signals", got.Count)
	assert.NotEmpty(t, got.Error)

	var list []signal.Signal
	e.get(t, "/signals", &list)
	assert.Empty(t, list)

	var st map[string]any
	e.get(t, "/signals/stats", &st)
	assert.Equal(t, float64(0), st["total"])
	assert.Equal(t, float64(0), st["funded"])
}

func TestLeadsMetrics(t *testing.T) {
	e := newTestEnv(t, baseConfig())
	seedLeads(e,
		&lead.Lead{CompanyName: "Acme", JobType: "Remote", MatchScore: "80", DecisionMakerEmail: "a@b.co"},
		&lead.Lead{CompanyName: "Beta", JobType: "Remote", MatchScore: "90"},
	)

	var got map[string]any
	assert.Equal(t, http.StatusOK, e.get(t, "/leads/metrics", &got))
	assert.Equal(t, float64(2), got["totalJobs"])
	assert.Equal(t, float64(2), got["uniqueCompanies"])
	assert.Equal(t, "Remote", got["topJobType"])
	assert.Equal(t, float64(85), got["avgMatchScore"])
	assert.Equal(t, float64(1), got["outreachReady"])
}

func TestSaveEdit(t *testing.T) {
	e := newTestEnv(t, baseConfig())
	seedLeads(e, &lead.Lead{CompanyName: "Acme", Title: "Eng"})

	code := e.post(t, "/leads/edits",
		`{"companyName":"Acme","title":"Eng","field":"city","value":"Berlin"}`, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Berlin", e.deps.Leads.Snapshot()[0].City)

	code = e.post(t, "/leads/edits",
		`{"companyName":"Nope","title":"Eng","field":"city","value":"x"}`, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code = e.post(t, "/leads/edits", `{"companyName":"Acme","title":"Eng","value":"x"}`, nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestSignalsTable_Filter(t *testing.T) {
	e := newTestEnv(t, baseConfig())
	e.deps.Signals.Replace([]*signal.Signal{
		{CompanyName: "A", CompanyRecentNews: "raised a round"},
		{CompanyName: "B", FundingAmount: "$5M"},
		{CompanyName: "C"},
	})

	var got struct {
		Count string `json:"count"`
	}
	assert.Equal(t, http.StatusOK, e.get(t, "/signals/table", &got))
	assert.Equal(t, "3 signals", got.Count)

	assert.Equal(t, http.StatusOK, e.get(t, "/signals/table?filter=news", &got))
	assert.Equal(t, "1 of 3 signals", got.Count)
}

func TestSignalsStats(t *testing.T) {
	e := newTestEnv(t, baseConfig())
	e.deps.Signals.Replace([]*signal.Signal{
		{CompanyName: "A", FundingAmount: "$5M"},
		{CompanyName: "B"},
	})

	var got map[string]any
	assert.Equal(t, http.StatusOK, e.get(t, "/signals/stats", &got))
	assert.Equal(t, float64(2), got["total"])
	assert.Equal(t, float64(1), got["funded"])
}

func TestRefreshStatus(t *testing.T) {
	e := newTestEnv(t, baseConfig())

	var got map[string]poll.RefreshStatus
	assert.Equal(t, http.StatusOK, e.get(t, "/refresh/status", &got))
	assert.Contains(t, got, "leads")
	assert.Contains(t, got, "signals")
}

func TestRefresh_LeadsLane(t *testing.T) {
	csv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Company name,Title\nAcme,Eng\n"))
	}))
	defer csv.Close()

	cfg := baseConfig()
	cfg.Sheets.Leads.URL = csv.URL
	e := newTestEnv(t, cfg)

	var got map[string]any
	assert.Equal(t, http.StatusOK, e.post(t, "/refresh?lane=leads", "", &got))
	assert.Equal(t, true, got["ok"])

	assert.Eventually(t, func() bool {
		return e.deps.Leads.Len() == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSubmitScrape(t *testing.T) {
	var gotPayload map[string]any
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotPayload)
	}))
	defer hook.Close()

	cfg := baseConfig()
	cfg.Webhooks.ScrapeURL = hook.URL
	e := newTestEnv(t, cfg)

	code := e.post(t, "/scrape", `not json`, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code = e.post(t, "/scrape", `{"jobTitle":"","numJobs":5}`, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	body := `{"jobTitle":"Engineer","numJobs":5,"platforms":["indeed"],"jobTypes":["remote"]}`
	code = e.post(t, "/scrape", body, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Engineer", gotPayload["jobTitle"])
	assert.NotEmpty(t, gotPayload["timestamp"])
}

func TestSubmitScrape_HookDown(t *testing.T) {
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer hook.Close()

	cfg := baseConfig()
	cfg.Webhooks.ScrapeURL = hook.URL
	e := newTestEnv(t, cfg)

	code := e.post(t, "/scrape", `{"jobTitle":"Engineer","numJobs":1}`, nil)
	assert.Equal(t, http.StatusBadGateway, code)
}

func TestSendSignalEmail(t *testing.T) {
	var gotPayload map[string]any
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotPayload)
	}))
	defer hook.Close()

	cfg := baseConfig()
	cfg.Webhooks.SignalEmailURL = hook.URL
	e := newTestEnv(t, cfg)

	code := e.post(t, "/signals/send-email", `{"email":"","content":"hi"}`, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	body := `{"email":"a@b.co","content":"{\"subject\":\"Hi Acme\",\"body\":\"let's talk\"}","companyName":"Acme"}`
	code = e.post(t, "/signals/send-email", body, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Hi Acme", gotPayload["subject"])
	assert.Equal(t, "let's talk", gotPayload["message"])
	assert.Equal(t, "Acme", gotPayload["companyName"])
}

func TestSendLeadEmail_RequiresBody(t *testing.T) {
	e := newTestEnv(t, baseConfig())

	code := e.post(t, "/leads/send-email", `{"title":"Eng","email":"a@b.co","body":"  "}`, nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestStartTracking(t *testing.T) {
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]webhook.TrackingResult{{RunID: "r9", ProfilesProcessed: 1}})
	}))
	defer hook.Close()

	cfg := baseConfig()
	cfg.Webhooks.JobChangeURL = hook.URL
	e := newTestEnv(t, cfg)

	code := e.post(t, "/track", `{"profile_urls":[],"email_recipients":[]}`, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	var got webhook.TrackingResult
	body := `{"profile_urls":["https://www.linkedin.com/in/jane"],"email_recipients":["a@b.co"]}`
	code = e.post(t, "/track", body, &got)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "r9", got.RunID)
	assert.Equal(t, 1, got.ProfilesProcessed)
}

func TestHistoryEndpoint(t *testing.T) {
	e := newTestEnv(t, baseConfig())

	var got []history.Run
	assert.Equal(t, http.StatusOK, e.get(t, "/history", &got))
	assert.Empty(t, got)

	assert.NoError(t, history.InsertRun(context.Background(), e.deps.History.Pool,
		&history.Run{Source: "leads", Records: 3}))

	assert.Equal(t, http.StatusOK, e.get(t, "/history", &got))
	assert.Len(t, got, 1)
	assert.Equal(t, "leads", got[0].Source)
}

func TestConfigGetPut(t *testing.T) {
	e := newTestEnv(t, baseConfig())

	var got config.Config
	assert.Equal(t, http.StatusOK, e.get(t, "/config", &got))
	assert.Equal(t, 38471, got.App.Port)

	got.Sheets.Leads.URL = "https://docs.google.com/pub?output=csv"
	buf, err := json.Marshal(got)
	assert.NoError(t, err)

	req, err := http.NewRequest(http.MethodPut, e.srv.URL+"/config", bytes.NewReader(buf))
	assert.NoError(t, err)
	res, err := http.DefaultClient.Do(req)
	assert.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var after config.Config
	e.get(t, "/config", &after)
	assert.Equal(t, "https://docs.google.com/pub?output=csv", after.Sheets.Leads.URL)
}

func TestConfigPut_RejectsInvalid(t *testing.T) {
	e := newTestEnv(t, baseConfig())

	bad := baseConfig()
	bad.Webhooks.Burst = 0
	buf, _ := json.Marshal(bad)

	req, _ := http.NewRequest(http.MethodPut, e.srv.URL+"/config", bytes.NewReader(buf))
	res, err := http.DefaultClient.Do(req)
	assert.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	var vr config.Validation
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&vr))
	assert.NotEmpty(t, vr.Errors)
}

func TestMethodNotAllowed(t *testing.T) {
	e := newTestEnv(t, baseConfig())

	code := e.post(t, "/leads", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, code)
}
