package handler

import (
	"strconv"

	"github.com/DukeRupert/leadshift/internal/domain"
	"github.com/DukeRupert/leadshift/internal/fakedata"
	"github.com/DukeRupert/leadshift/internal/pipeline"
	"github.com/DukeRupert/leadshift/internal/table"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// EmptyLeadsMessage is shown when no lead passes the filters.
const EmptyLeadsMessage = "No leads found. Upload a CSV file to get started."

const leadsTableID = "leads-table"

var statusOptions = []string{
	domain.FilterAll,
	string(domain.LeadStatusNew),
	string(domain.LeadStatusContacted),
	string(domain.LeadStatusQualified),
	string(domain.LeadStatusDisqualified),
	domain.FilterPending,
}

func leadsPage(m pageMeta, st leadsState, ds domain.Dataset, uploads []domain.Upload) Node {
	facets := pipeline.Facets(ds.Leads)

	uploadToggle := st
	uploadToggle.UploadOpen = !st.UploadOpen

	return page(m,
		Div(
			Class("mb-4 flex flex-wrap items-center justify-between gap-3"),
			P(Class(mutedClass), Textf("%d leads in the %s dataset", len(ds.Leads), ds.Source)),
			Div(
				Class("flex gap-2"),
				A(Href(st.href("/leads/export.csv")), Class(buttonClass("secondary")), Text("Export CSV")),
				A(Href(uploadToggle.href("/leads")), Class(buttonClass("primary")), Text("Upload CSV")),
			),
		),
		If(st.UploadOpen, uploadPanel(m, uploads)),
		filterPanel(st, facets),
		// Replaced by the partial once datastar fetches it.
		leadsTablePartial(m, st, ds.Leads, true),
		NoScript(P(Class("mt-2"), A(Href(st.href("/leads/table")), Class("underline"), Text("Show leads")))),
	)
}

func uploadPanel(m pageMeta, uploads []domain.Upload) Node {
	return card("Upload leads",
		Form(
			Method("post"),
			Action("/leads/upload"),
			EncType("multipart/form-data"),
			Class("flex flex-wrap items-center gap-3"),
			csrfField(m.CSRFToken),
			Input(Type("file"), Name("file"), Accept(".csv,text/csv"), Required(), Class(inputClass)),
			Button(Type("submit"), Class(buttonClass("primary")), Text("Upload")),
		),
		P(Class("mt-2 "+mutedClass), Text("Columns: company_name, email, phone, industry, location, capital, website. Uploads add to the existing leads.")),
		If(len(uploads) > 0, Div(
			Class("mt-4"),
			H3(Class("mb-2 text-sm font-medium"), Text("Recent uploads")),
			Ul(Class("space-y-1 text-sm"), Map(uploads, func(u domain.Upload) Node {
				return Li(
					A(Href("/uploads/"+u.ID+"/file"), Class("underline"), Text(u.Filename)),
					Span(Class(mutedClass), Textf(" · %d rows · %s", u.RowCount, formatDateTime(u.CreatedAt))),
				)
			})),
		)),
	)
}

func filterPanel(st leadsState, facets domain.Facets) Node {
	f := st.Filters
	return Form(
		Method("get"),
		Action("/leads"),
		Class("mb-4 flex flex-wrap items-end gap-3 "+cardClass),
		filterField("Search", Input(Type("search"), Name("q"), Value(f.Query), Placeholder("Company, email, industry..."), Class(inputClass))),
		filterField("Industry", selectField("industry", f.Industry, append([]string{domain.FilterAll}, facets.Industries...))),
		filterField("Location", selectField("location", f.Location, append([]string{domain.FilterAll}, facets.Locations...))),
		filterField("Status", selectField("status", f.Status, statusOptions)),
		filterField("Min score", Input(Type("number"), Name("score_min"), Min("0"), Max("100"), Value(strconv.Itoa(f.ScoreMin)), Class(inputClass+" w-20"))),
		filterField("Max score", Input(Type("number"), Name("score_max"), Min("0"), Max("100"), Value(strconv.Itoa(f.ScoreMax)), Class(inputClass+" w-20"))),
		If(st.Sort.Active(), Group([]Node{
			Input(Type("hidden"), Name("sort"), Value(st.Sort.Key)),
			Input(Type("hidden"), Name("dir"), Value(string(st.Sort.Direction))),
		})),
		Map(st.Selected.IDs(), func(id string) Node {
			return Input(Type("hidden"), Name("selected"), Value(id))
		}),
		Button(Type("submit"), Class(buttonClass("primary")), Text("Apply")),
		If(!f.IsDefault() || f.Query != "", A(Href(st.withFilters(domain.DefaultFilterState()).href("/leads")), Class(buttonClass("secondary")), Text("Reset"))),
	)
}

func filterField(label string, control Node) Node {
	return Label(Class("flex flex-col gap-1 text-xs font-medium text-slate-500"), Text(label), control)
}

func selectField(name, current string, options []string) Node {
	return Select(Name(name), Class(inputClass), Map(options, func(o string) Node {
		label := o
		if o == domain.FilterAll {
			label = "All"
		}
		return Option(Value(o), If(o == current, Selected()), Text(label))
	}))
}

// leadsTablePartial is the element datastar swaps in by id.
func leadsTablePartial(m pageMeta, st leadsState, all []domain.Lead, loading bool) Node {
	rows := st.rows(all)
	// Selected leads hidden by the filters stay selected.
	st.Selected = st.Selected.Retain(domain.LeadIDs(all))

	tbl := leadTable(st)
	tbl.Loading = loading

	return Div(
		ID(leadsTableID),
		If(loading, Attr("data-init", "@get('"+st.href("/leads/table")+"')")),
		Class("space-y-3"),
		If(!loading && st.Selected.Len() > 0, actionBar(m, st)),
		Div(Class("overflow-x-auto "+cardClass+" p-0"), tbl.Render(rows)),
		If(!loading, P(Class(mutedClass), Textf("Showing %d of %d leads", len(rows), len(all)))),
	)
}

func actionBar(m pageMeta, st leadsState) Node {
	ids := st.Selected.IDs()
	hidden := make([]Node, 0, len(ids)+2)
	hidden = append(hidden, csrfField(m.CSRFToken), Input(Type("hidden"), Name("return"), Value(st.href("/leads"))))
	for _, id := range ids {
		hidden = append(hidden, Input(Type("hidden"), Name("selected"), Value(id)))
	}

	return Form(
		Method("post"),
		Action("/leads/actions"),
		ID("bulk-actions"),
		Class("flex flex-wrap items-center gap-2 rounded-md bg-slate-900 px-4 py-2 text-white dark:bg-slate-100 dark:text-slate-900"),
		Group(hidden),
		Span(Class("mr-2 text-sm font-medium"), Textf("%d selected", len(ids))),
		actionButton(ActionEmail, "Send email"),
		actionButton(ActionCall, "AI call"),
		actionButton(ActionExport, "Export"),
		actionButton(ActionReport, "PDF report"),
		A(Href(st.withSelection(domain.Selection{}).href("/leads")), Class("ml-auto text-sm underline"), Text("Clear selection")),
	)
}

func actionButton(action, label string) Node {
	return Button(Type("submit"), Name("action"), Value(action), Class(buttonClass("secondary")+" text-slate-900"), Text(label))
}

func leadTable(st leadsState) table.Table[domain.Lead] {
	return table.Table[domain.Lead]{
		ID:           "leads",
		Columns:      leadColumns(),
		KeyFunc:      domain.LeadKey,
		Selectable:   true,
		Selected:     st.Selected,
		Sort:         st.Sort,
		EmptyMessage: EmptyLeadsMessage,
		SortHref: func(s domain.SortState) string {
			return st.withSort(s).href("/leads")
		},
		SelectHref: func(s domain.Selection) string {
			return st.withSelection(s).href("/leads")
		},
	}
}

func sortValue(key string) func(domain.Lead) any {
	fn, _ := pipeline.LeadValue(key)
	return fn
}

func leadColumns() []table.Column[domain.Lead] {
	return []table.Column[domain.Lead]{
		{
			Key: pipeline.KeyCompanyName, Header: "Company", Sortable: true,
			Value: sortValue(pipeline.KeyCompanyName),
			Cell: func(l domain.Lead) Node {
				if site := domain.StringValue(l.Website); site != "" {
					return A(Href(site), Target("_blank"), Rel("noopener noreferrer"), Class("font-medium underline"), Text(l.CompanyName))
				}
				return Span(Class("font-medium"), Text(l.CompanyName))
			},
		},
		{
			Key: pipeline.KeyEmail, Header: "Email", Sortable: true,
			Value: sortValue(pipeline.KeyEmail),
			Cell:  func(l domain.Lead) Node { return orDash(l.Email) },
		},
		{
			Key: pipeline.KeyPhone, Header: "Phone", Sortable: true,
			Value: sortValue(pipeline.KeyPhone),
			Cell:  func(l domain.Lead) Node { return orDash(l.Phone) },
		},
		{
			Key: pipeline.KeyIndustry, Header: "Industry", Sortable: true,
			Value: sortValue(pipeline.KeyIndustry),
			Cell: func(l domain.Lead) Node {
				if v := domain.StringValue(l.Industry); v != "" {
					return Text(v)
				}
				return Text("Unknown")
			},
		},
		{
			Key: pipeline.KeyLocation, Header: "Location", Sortable: true,
			Value: sortValue(pipeline.KeyLocation),
			Cell:  func(l domain.Lead) Node { return orDash(l.Location) },
		},
		{
			Key: pipeline.KeyScore, Header: "Score", Sortable: true,
			Value: sortValue(pipeline.KeyScore),
			Cell:  func(l domain.Lead) Node { return bandBadge(l.Score) },
		},
		{
			Key: "actions", Header: "Actions",
			Cell: func(l domain.Lead) Node {
				return A(Href("/leads/"+l.ID), Class("text-sky-700 underline dark:text-sky-300"), Text("View"))
			},
		},
	}
}

func leadDetailPage(m pageMeta, l domain.Lead, a fakedata.LeadActivity) Node {
	return page(m,
		P(Class("mb-4"), A(Href("/leads"), Class("text-sm underline"), Text("← Back to leads"))),
		Div(
			Class("grid gap-6 lg:grid-cols-3"),
			card("Company",
				Dl(
					definition("Score", bandBadge(l.Score)),
					definition("Status", statusBadge(l.Status)),
					definition("Email", orDash(l.Email)),
					definition("Phone", orDash(l.Phone)),
					definition("Industry", orDash(l.Industry)),
					definition("Location", orDash(l.Location)),
					definition("Capital", orDash(l.Capital)),
					definition("Website", orDash(l.Website)),
					definition("Added", Text(formatDate(l.CreatedAt))),
				),
			),
			Div(
				Class("space-y-6 lg:col-span-2"),
				card("Contacts", Ul(Class("divide-y divide-slate-100 dark:divide-slate-800"), Map(a.Contacts, func(c fakedata.Contact) Node {
					return Li(
						Class("py-2"),
						P(Class("font-medium"), Text(c.Name)),
						P(Class(mutedClass), Textf("%s · %s · %s", c.Title, c.Email, c.Phone)),
					)
				}))),
				card("Calls", Div(Class("space-y-4"), Map(a.Calls, callEntry))),
				card("Emails", Ul(Class("space-y-3"), Map(a.Emails, emailEntry))),
			),
		),
	)
}

func callEntry(c fakedata.Call) Node {
	return Article(
		Class("border-l-2 border-slate-200 pl-3 dark:border-slate-700"),
		P(Class("font-medium"), Text(c.Title)),
		P(Class(mutedClass), Textf("%s · %d min · %s", formatDateTime(c.Date), c.Duration, c.Sentiment)),
		P(Class("mt-1 text-sm"), Text(c.Summary)),
		If(len(c.KeyPoints) > 0, Ul(Class("mt-1 list-disc pl-5 text-sm"), Map(c.KeyPoints, func(k string) Node { return Li(Text(k)) }))),
		If(len(c.ActionItems) > 0, Ul(Class("mt-1 text-sm"), Map(c.ActionItems, func(ai fakedata.ActionItem) Node {
			mark := "☐ "
			if ai.Completed {
				mark = "☑ "
			}
			return Li(Text(mark + ai.Text))
		}))),
	)
}

func emailEntry(e fakedata.Email) Node {
	return Li(
		Class("text-sm"),
		P(Span(Class("font-medium"), Text(e.Subject)), If(e.Status != "", Span(Class(mutedClass), Text(" · "+e.Status)))),
		P(Class(mutedClass), Textf("%s · %s", e.Direction, formatDateTime(e.Date))),
		P(Text(e.Preview)),
	)
}
