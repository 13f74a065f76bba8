package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DukeRupert/leadshift/internal/csrf"
	"github.com/DukeRupert/leadshift/internal/service"
	"github.com/DukeRupert/leadshift/internal/table"
)

// =============================================================================
// Page and table partial
// =============================================================================

func TestLeads_PageLoadsTableLazily(t *testing.T) {
	app := newTestApp(t)

	rec := app.get("/leads?q=tech")
	require.Equal(t, http.StatusOK, rec.Code)

	html := rec.Body.String()
	assert.Contains(t, html, `id="leads-table"`)
	assert.Contains(t, html, "data-init=")
	assert.Contains(t, html, "/leads/table?q=tech")
	assert.Contains(t, html, table.LoadingMessage)
	assert.Contains(t, html, service.NoticeDemoData, "empty store falls back to demo data")
}

func TestLeads_TableShowsFallback(t *testing.T) {
	app := newTestApp(t)

	rec := app.get("/leads/table")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Showing 15 of 15 leads")
	assert.NotContains(t, rec.Body.String(), "<html")
}

func TestLeads_TableFiltersAndSorts(t *testing.T) {
	app := newTestApp(t)
	app.seed(t)

	rec := app.get("/leads/table?q=techlify")
	require.Equal(t, http.StatusOK, rec.Code)
	html := rec.Body.String()
	assert.Contains(t, html, "Showing 1 of 2 leads")
	assert.Contains(t, html, "Techlify")
	assert.NotContains(t, html, "CodeCraft")

	rec = app.get("/leads/table?sort=score&dir=desc")
	html = rec.Body.String()
	assert.Less(t, strings.Index(html, "Techlify"), strings.Index(html, "CodeCraft"))

	rec = app.get("/leads/table?sort=score&dir=asc")
	html = rec.Body.String()
	assert.Less(t, strings.Index(html, "CodeCraft"), strings.Index(html, "Techlify"))
}

func TestLeads_TableEmptyMessage(t *testing.T) {
	app := newTestApp(t)
	app.seed(t)

	rec := app.get("/leads/table?q=nothing-matches-this")
	assert.Contains(t, rec.Body.String(), EmptyLeadsMessage)
	assert.Contains(t, rec.Body.String(), "Showing 0 of 2 leads")
}

func TestLeads_SelectionShowsActionBar(t *testing.T) {
	app := newTestApp(t)
	leads := app.seed(t)
	id := leadByName(t, leads, "Techlify").ID

	rec := app.get("/leads/table?selected=" + id)
	html := rec.Body.String()
	assert.Contains(t, html, `action="/leads/actions"`)
	assert.Contains(t, html, `value="`+id+`"`)
	assert.Contains(t, html, `aria-checked="mixed"`)
}

func TestLeads_SelectionSurvivesFilters(t *testing.T) {
	app := newTestApp(t)
	leads := app.seed(t)
	techlify := leadByName(t, leads, "Techlify").ID
	codecraft := leadByName(t, leads, "CodeCraft").ID
	selected := "selected=" + techlify + "&selected=" + codecraft

	// CodeCraft is filtered out but stays selected.
	html := app.get("/leads/table?q=techlify&" + selected).Body.String()
	assert.NotContains(t, html, ">CodeCraft<")
	assert.Contains(t, html, "2 selected")
	assert.Contains(t, html, `name="selected" value="`+codecraft+`"`)

	// The filter form and its reset link carry the selection.
	html = app.get("/leads?q=techlify&" + selected).Body.String()
	assert.Contains(t, html, `<input type="hidden" name="selected" value="`+codecraft+`">`)
	assert.Contains(t, html, `href="/leads?selected=`+techlify+`&amp;selected=`+codecraft+`"`)

	// Clearing the filter shows both rows checked.
	html = app.get("/leads/table?" + selected).Body.String()
	assert.Contains(t, html, "2 selected")
	assert.Equal(t, 3, strings.Count(html, `aria-checked="true"`), "select-all plus both rows")
}

func TestLeads_SelectionDropsUnknownIDs(t *testing.T) {
	app := newTestApp(t)
	leads := app.seed(t)
	id := leadByName(t, leads, "Techlify").ID

	html := app.get("/leads/table?selected=" + id + "&selected=gone").Body.String()
	assert.Contains(t, html, "1 selected")
	assert.NotContains(t, html, `value="gone"`)
}

func TestParseLeadsState_SortKeys(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"company_name", true},
		{"score", true},
		{"location", true},
		{"status", false},
		{"created_at", false},
		{"capital", false},
		{"actions", false},
		{"bogus", false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			st := parseLeadsState(url.Values{"sort": {tt.key}, "dir": {"desc"}})
			assert.Equal(t, tt.want, st.Sort.Active())
		})
	}
}

func TestLeads_ExportIgnoresHiddenSortKeys(t *testing.T) {
	app := newTestApp(t)
	app.seed(t)

	page := app.get("/leads/table?sort=status&dir=desc").Body.String()
	export := app.get("/leads/export.csv?sort=status&dir=desc").Body.String()

	assert.Less(t, strings.Index(page, "Techlify"), strings.Index(page, "CodeCraft"))
	assert.Less(t, strings.Index(export, "Techlify"), strings.Index(export, "CodeCraft"))
	assert.NotContains(t, page, `aria-sort="descending"`)
}

func TestLeads_UploadPanelListsUploads(t *testing.T) {
	app := newTestApp(t)
	app.seed(t)

	rec := app.get("/leads?upload=1")
	html := rec.Body.String()
	assert.Contains(t, html, `action="/leads/upload"`)
	assert.Contains(t, html, "seed.csv")
	assert.NotContains(t, html, service.NoticeDemoData)
}

// =============================================================================
// Upload form
// =============================================================================

func TestLeads_UploadForm(t *testing.T) {
	app := newTestApp(t)

	body, contentType := multipartBody(t, map[string]string{csrf.FormFieldName: testToken}, "leads.csv", sampleCSV)
	req := httptest.NewRequest(http.MethodPost, "/leads/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(&http.Cookie{Name: csrf.CookieName, Value: testToken})

	rec := app.do(req)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/leads", rec.Header().Get("Location"))
	assert.Equal(t, "Successfully uploaded 2 leads", flash(t, rec))
}

func TestLeads_UploadForm_Failures(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		message  string
	}{
		{"no file", "", MsgChooseFile},
		{"not csv", "leads.txt", service.MsgNotCSV},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)

			body, contentType := multipartBody(t, map[string]string{csrf.FormFieldName: testToken}, tt.filename, sampleCSV)
			req := httptest.NewRequest(http.MethodPost, "/leads/upload", body)
			req.Header.Set("Content-Type", contentType)
			req.AddCookie(&http.Cookie{Name: csrf.CookieName, Value: testToken})

			rec := app.do(req)
			require.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, "/leads?upload=1", rec.Header().Get("Location"), "panel stays open for retry")
			assert.Equal(t, tt.message, flash(t, rec))
		})
	}
}

func TestLeads_UploadForm_RequiresCSRF(t *testing.T) {
	app := newTestApp(t)

	body, contentType := multipartBody(t, nil, "leads.csv", sampleCSV)
	req := httptest.NewRequest(http.MethodPost, "/leads/upload", body)
	req.Header.Set("Content-Type", contentType)

	rec := app.do(req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLeads_FlashIsShownOnce(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/leads", nil)
	req.AddCookie(&http.Cookie{Name: flashCookie, Value: url.QueryEscape("Successfully uploaded 2 leads")})
	rec := app.do(req)

	assert.Contains(t, rec.Body.String(), "Successfully uploaded 2 leads")
	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == flashCookie && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}

// =============================================================================
// Bulk actions
// =============================================================================

func TestLeads_ActionEmail(t *testing.T) {
	app := newTestApp(t)
	leads := app.seed(t)

	form := url.Values{
		"action":   {ActionEmail},
		"selected": {leadByName(t, leads, "Techlify").ID, leadByName(t, leads, "CodeCraft").ID},
		"return":   {"/leads?q=c"},
	}
	rec := app.postForm("/leads/actions", form)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/leads?q=c", rec.Header().Get("Location"))
	assert.Equal(t, "Preparing email campaign for 2 leads", flash(t, rec))

	sent := app.mailer.Sent()
	require.Len(t, sent, 1, "leads without an email are skipped")
	assert.Equal(t, "hi@techlify.com", sent[0].To)
}

func TestLeads_ActionCall(t *testing.T) {
	app := newTestApp(t)
	leads := app.seed(t)

	rec := app.postForm("/leads/actions", url.Values{
		"action":   {ActionCall},
		"selected": {leadByName(t, leads, "CodeCraft").ID},
	})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "Preparing AI calls for 1 leads", flash(t, rec))
	assert.Len(t, app.calls.Published(), 1)
}

func TestLeads_ActionWithoutSelection(t *testing.T) {
	app := newTestApp(t)
	app.seed(t)

	rec := app.postForm("/leads/actions", url.Values{
		"action":   {ActionEmail},
		"selected": {"not-a-lead"},
	})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, MsgSelectLeads, flash(t, rec))
	assert.Empty(t, app.mailer.Sent())
}

func TestLeads_ActionRejectsOffsiteReturn(t *testing.T) {
	app := newTestApp(t)

	rec := app.postForm("/leads/actions", url.Values{
		"action": {ActionEmail},
		"return": {"https://evil.example.com"},
	})
	assert.Equal(t, "/leads", rec.Header().Get("Location"))
}

func TestLeads_ActionExport(t *testing.T) {
	app := newTestApp(t)
	leads := app.seed(t)

	rec := app.postForm("/leads/actions", url.Values{
		"action":   {ActionExport},
		"selected": {leadByName(t, leads, "Techlify").ID},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "leads-selected-")
	assert.Contains(t, rec.Body.String(), "Techlify")
	assert.NotContains(t, rec.Body.String(), "CodeCraft")
}

func TestLeads_ActionReport(t *testing.T) {
	app := newTestApp(t)
	leads := app.seed(t)

	rec := app.postForm("/leads/actions", url.Values{
		"action":   {ActionReport},
		"selected": {leadByName(t, leads, "Techlify").ID},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))
}

func TestLeads_ActionUnknown(t *testing.T) {
	app := newTestApp(t)
	leads := app.seed(t)

	rec := app.postForm("/leads/actions", url.Values{
		"action":   {"delete"},
		"selected": {leads[0].ID},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLeads_ActionRequiresCSRF(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/leads/actions", strings.NewReader("action=email"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: csrf.CookieName, Value: testToken})

	rec := app.do(req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

// =============================================================================
// Detail and downloads
// =============================================================================

func TestLeads_Show(t *testing.T) {
	app := newTestApp(t)
	lead := leadByName(t, app.seed(t), "Techlify")

	rec := app.get("/leads/" + lead.ID)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Techlify")
	assert.Contains(t, rec.Body.String(), "hi@techlify.com")
}

func TestLeads_ShowFallbackLead(t *testing.T) {
	app := newTestApp(t)
	ds := app.leads.Dataset(t.Context())
	require.NotEmpty(t, ds.Leads)

	rec := app.get("/leads/" + ds.Leads[0].ID)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ds.Leads[0].CompanyName)
}

func TestLeads_ShowNotFound(t *testing.T) {
	app := newTestApp(t)

	rec := app.get("/leads/does-not-exist")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "This lead does not exist")
}

func TestLeads_ExportCSV(t *testing.T) {
	app := newTestApp(t)
	app.seed(t)

	rec := app.get("/leads/export.csv?industry=Finance")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, rec.Body.String(), "CodeCraft")
	assert.NotContains(t, rec.Body.String(), "Techlify")
}

func TestLeads_DownloadUpload(t *testing.T) {
	app := newTestApp(t)
	app.seed(t)

	uploads, err := app.leads.Uploads(t.Context(), 1)
	require.NoError(t, err)
	require.Len(t, uploads, 1)

	rec := app.get("/uploads/" + uploads[0].ID + "/file")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, sampleCSV, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "seed.csv")

	rec = app.get("/uploads/missing/file")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
