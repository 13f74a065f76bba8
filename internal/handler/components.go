package handler

import (
	"strconv"
	"time"

	twmerge "github.com/Oudwins/tailwind-merge-go"

	"github.com/DukeRupert/leadshift/internal/domain"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

const (
	cardClass  = "rounded-lg border border-slate-200 bg-white p-5 shadow-sm dark:border-slate-800 dark:bg-slate-900"
	mutedClass = "text-sm text-slate-500 dark:text-slate-400"
	inputClass = "rounded-md border border-slate-300 bg-white px-3 py-1.5 text-sm dark:border-slate-700 dark:bg-slate-800"
	thClass    = "px-3 py-2 text-left font-medium text-slate-500 dark:text-slate-400"
	tdClass    = "border-t border-slate-100 px-3 py-2 dark:border-slate-800"
)

func buttonClass(variant string) string {
	base := "inline-flex items-center rounded-md px-3 py-1.5 text-sm font-medium"
	switch variant {
	case "primary":
		return twmerge.Merge(base, "bg-slate-900 text-white hover:bg-slate-700 dark:bg-slate-100 dark:text-slate-900")
	case "danger":
		return twmerge.Merge(base, "bg-red-600 text-white hover:bg-red-500")
	default:
		return twmerge.Merge(base, "border border-slate-300 bg-white hover:bg-slate-100 dark:border-slate-700 dark:bg-slate-800")
	}
}

func card(title string, children ...Node) Node {
	return Section(
		Class(cardClass),
		If(title != "", H2(Class("mb-3 text-base font-semibold"), Text(title))),
		Group(children),
	)
}

func statCard(label, value, sub string) Node {
	return Div(
		Class(cardClass),
		P(Class(mutedClass), Text(label)),
		P(Class("mt-1 text-3xl font-semibold"), Text(value)),
		If(sub != "", P(Class("mt-1 text-xs text-slate-500"), Text(sub))),
	)
}

// bandBadge shows the score with its band colour.
func bandBadge(score *int) Node {
	band := domain.BandFor(score)
	label := band.Label()
	if score != nil {
		label = strconv.Itoa(*score) + " · " + label
	}
	return Span(
		Class("inline-flex items-center rounded-full px-2 py-0.5 text-xs font-medium text-white"),
		Style("background-color: "+band.Color()),
		Attr("data-band", string(band)),
		Text(label),
	)
}

func statusBadge(s domain.LeadStatus) Node {
	class := "inline-flex rounded-full px-2 py-0.5 text-xs font-medium "
	switch s {
	case domain.LeadStatusQualified:
		class += "bg-green-100 text-green-800"
	case domain.LeadStatusContacted:
		class += "bg-sky-100 text-sky-800"
	case domain.LeadStatusDisqualified:
		class += "bg-red-100 text-red-800"
	default:
		class += "bg-slate-100 text-slate-700"
	}
	return Span(Class(class), Text(string(s)))
}

// bar is a horizontal percentage bar.
func bar(pct int, color string) Node {
	pct = max(0, min(100, pct))
	return Div(
		Class("h-2 w-full rounded-full bg-slate-100 dark:bg-slate-800"),
		Div(Class("h-2 rounded-full"), Style("width: "+strconv.Itoa(pct)+"%; background-color: "+color)),
	)
}

func definition(term string, value Node) Node {
	return Div(
		Class("py-2"),
		Dt(Class(mutedClass), Text(term)),
		Dd(Class("mt-0.5"), value),
	)
}

// orDash renders an optional string, with "-" when empty.
func orDash(s *string) Node {
	if v := domain.StringValue(s); v != "" {
		return Text(v)
	}
	return Span(Class("text-slate-400"), Text("-"))
}

func percent(n int) string {
	return strconv.Itoa(n) + "%"
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("Jan 2, 2006")
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("Jan 2, 2006 15:04")
}
