package handler

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DukeRupert/leadshift/internal/csrf"
	"github.com/DukeRupert/leadshift/internal/domain"
	"github.com/DukeRupert/leadshift/internal/email"
	"github.com/DukeRupert/leadshift/internal/queue"
	"github.com/DukeRupert/leadshift/internal/repository"
	"github.com/DukeRupert/leadshift/internal/service"
	"github.com/DukeRupert/leadshift/internal/storage"
	"github.com/DukeRupert/leadshift/internal/testutil"
)

const (
	testToken     = "test-csrf-token"
	testMaxUpload = 64 << 10
)

const sampleCSV = "Company Name,Email,Phone,Industry,Location,Score\n" +
	"Techlify,hi@techlify.com,555-0100,Software,Austin,91\n" +
	"CodeCraft,,555-0101,Finance,Berlin,42\n"

type testApp struct {
	handler http.Handler
	db      *sql.DB
	leads   service.LeadService
	mailer  *email.LogMailer
	calls   *queue.LogQueue
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	logger := discardLogger()
	db := testutil.OpenDB(t)
	store, err := storage.NewLocalStorage(storage.LocalConfig{BasePath: t.TempDir()}, logger)
	require.NoError(t, err)

	repo := repository.New(db, repository.DialectSQLite)
	leads := service.NewLeadService(repo, store, service.LeadConfig{
		MaxUploadBytes: testMaxUpload,
		FallbackCount:  15,
		FallbackSeed:   7,
	}, logger)
	mailer := email.NewLogMailer("LeadShift", logger)
	calls := queue.NewLogQueue(logger)

	app := &testApp{db: db, leads: leads, mailer: mailer, calls: calls}
	app.handler = NewRouter(RouterConfig{
		Leads:          leads,
		Insights:       service.NewInsightService(leads, 7, logger),
		Outreach:       service.NewOutreachService(repo, mailer, calls, logger),
		Reports:        service.NewReportService(logger),
		MaxUploadBytes: testMaxUpload,
		CORSOrigins:    []string{"*"},
		Logger:         logger,
	})
	return app
}

func (a *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) get(path string) *httptest.ResponseRecorder {
	return a.do(httptest.NewRequest(http.MethodGet, path, nil))
}

// postForm submits a url-encoded form carrying a valid CSRF token.
func (a *testApp) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	form.Set(csrf.FormFieldName, testToken)
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: csrf.CookieName, Value: testToken})
	return a.do(req)
}

// seed stores sampleCSV and returns the stored leads.
func (a *testApp) seed(t *testing.T) []domain.Lead {
	t.Helper()
	_, err := a.leads.Upload(context.Background(), "seed.csv", strings.NewReader(sampleCSV), int64(len(sampleCSV)))
	require.NoError(t, err)
	leads, err := a.leads.List(context.Background())
	require.NoError(t, err)
	return leads
}

// multipartBody encodes fields plus an optional file under "file".
func multipartBody(t *testing.T, fields map[string]string, filename, content string) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = io.WriteString(fw, content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

// flash returns the decoded flash message set on the response.
func flash(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == flashCookie {
			msg, err := url.QueryUnescape(c.Value)
			require.NoError(t, err)
			return msg
		}
	}
	return ""
}

func leadByName(t *testing.T, leads []domain.Lead, name string) domain.Lead {
	t.Helper()
	for _, l := range leads {
		if l.CompanyName == name {
			return l
		}
	}
	t.Fatalf("lead %q not found", name)
	return domain.Lead{}
}

func httptestDo(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
