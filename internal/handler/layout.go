package handler

import (
	twmerge "github.com/Oudwins/tailwind-merge-go"

	"github.com/DukeRupert/leadshift/internal/csrf"
	"github.com/DukeRupert/leadshift/internal/domain"

	. "maragu.dev/gomponents"
	data "maragu.dev/gomponents-datastar"
	. "maragu.dev/gomponents/html"
)

const (
	datastarSrc = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.7/bundles/datastar.js"
	tailwindSrc = "https://cdn.tailwindcss.com"
)

type navItem struct {
	Label string
	Href  string
	Key   string
}

var navItems = []navItem{
	{Label: "Dashboard", Href: "/dashboard", Key: "dashboard"},
	{Label: "Leads", Href: "/leads", Key: "leads"},
	{Label: "Engagement", Href: "/engagement", Key: "engagement"},
	{Label: "Reports", Href: "/reports", Key: "reports"},
	{Label: "Outreach", Href: "/outreach", Key: "outreach"},
	{Label: "Settings", Href: "/settings", Key: "settings"},
}

// page wraps body in the dashboard shell: sidebar navigation, the page
// header with the theme toggle, then the flash and dataset notice.
func page(m pageMeta, body ...Node) Node {
	nav := make([]Node, 0, len(navItems))
	for _, item := range navItems {
		class := "block rounded-md px-3 py-2 text-sm font-medium text-slate-600 hover:bg-slate-100 dark:text-slate-300 dark:hover:bg-slate-800"
		if item.Key == m.Active {
			class = twmerge.Merge(class, "bg-slate-900 text-white hover:bg-slate-900 dark:bg-slate-100 dark:text-slate-900")
		}
		nav = append(nav, A(Href(item.Href), Class(class), If(item.Key == m.Active, Attr("aria-current", "page")), Text(item.Label)))
	}

	return Doctype(
		HTML(
			Lang("en"),
			If(m.Theme == domain.ThemeDark, Class("dark")),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				TitleEl(Text(m.Title+" | LeadShift")),
				Link(Rel("icon"), Href("data:,")),
				Script(Src(tailwindSrc)),
				Script(Raw("tailwind.config = { darkMode: 'class' };")),
				Link(Rel("stylesheet"), Href("/static/app.css")),
				Script(Type("module"), Src(datastarSrc)),
			),
			Body(
				Class("min-h-screen bg-slate-50 text-slate-900 dark:bg-slate-950 dark:text-slate-100"),
				Div(
					Class("flex min-h-screen"),
					Aside(
						Class("w-60 shrink-0 border-r border-slate-200 bg-white p-4 dark:border-slate-800 dark:bg-slate-900"),
						A(Href("/dashboard"), Class("mb-6 block text-xl font-bold tracking-tight"), Text("LeadShift")),
						Nav(Class("space-y-1"), Group(nav)),
					),
					Main(
						Class("flex-1 p-8"),
						Header(
							Class("mb-6 flex items-center justify-between"),
							H1(Class("text-2xl font-semibold"), Text(m.Title)),
							themeToggle(m),
						),
						flashBanner(m.Flash),
						noticeBanner(m.Notice),
						Group(body),
					),
				),
			),
		),
	)
}

func themeToggle(m pageMeta) Node {
	label := "Dark mode"
	if m.Theme == domain.ThemeDark {
		label = "Light mode"
	}
	return Form(
		Method("post"),
		Action("/settings/theme"),
		csrfField(m.CSRFToken),
		Input(Type("hidden"), Name("return"), Value(m.Path)),
		Button(Type("submit"), Class(buttonClass("secondary")), Text(label)),
	)
}

func flashBanner(msg string) Node {
	if msg == "" {
		return nil
	}
	return Div(
		Role("status"),
		Class("mb-4 rounded-md border border-sky-200 bg-sky-50 px-4 py-3 text-sm text-sky-900 dark:border-sky-900 dark:bg-sky-950 dark:text-sky-100"),
		Text(msg),
	)
}

// noticeBanner is dismissable client side.
func noticeBanner(msg string) Node {
	if msg == "" {
		return nil
	}
	return Div(
		ID("dataset-notice"),
		data.Signals(map[string]any{"notice": true}),
		data.Show("$notice"),
		Role("status"),
		Class("mb-4 flex items-center justify-between rounded-md border border-amber-200 bg-amber-50 px-4 py-3 text-sm text-amber-900 dark:border-amber-900 dark:bg-amber-950 dark:text-amber-100"),
		Span(Text(msg)),
		Button(Type("button"), Attr("data-on:click", "$notice = false"), Attr("aria-label", "Dismiss"), Text("×")),
	)
}

func csrfField(token string) Node {
	return Input(Type("hidden"), Name(csrf.FormFieldName), Value(token))
}

// errorPage is a bare page for 404s and failures outside the shell.
func errorPage(m pageMeta, message string) Node {
	return page(m,
		card("",
			P(Class("text-slate-600 dark:text-slate-300"), Text(message)),
			P(Class("mt-4"), A(Href("/dashboard"), Class("text-sky-700 underline dark:text-sky-300"), Text("Back to the dashboard"))),
		),
	)
}
