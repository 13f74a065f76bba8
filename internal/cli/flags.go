package cli

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/DukeRupert/leadshift/internal/domain"
	"github.com/DukeRupert/leadshift/internal/pipeline"
)

// leadQuery holds the filter and sort flags shared by list and report.
type leadQuery struct {
	query    string
	scoreMin int
	scoreMax int
	industry string
	location string
	status   string
	sortKey  string
	sortDir  string
}

func (q *leadQuery) register(fs *pflag.FlagSet) {
	fs.StringVarP(&q.query, "query", "q", "", "Case-insensitive search over name, email, phone, industry and location")
	fs.IntVar(&q.scoreMin, "score-min", domain.MinScore, "Lowest score to include")
	fs.IntVar(&q.scoreMax, "score-max", domain.MaxScore, "Highest score to include")
	fs.StringVar(&q.industry, "industry", domain.FilterAll, "Exact industry, or 'all'")
	fs.StringVar(&q.location, "location", domain.FilterAll, "Exact location, or 'all'")
	fs.StringVar(&q.status, "status", domain.FilterAll, "Lead status, 'pending' for unscored leads, or 'all'")
	fs.StringVar(&q.sortKey, "sort", "", "Column to sort by")
	fs.StringVar(&q.sortDir, "dir", string(domain.SortAsc), "Sort direction (asc, desc)")
}

// state validates the flags and converts them to pipeline inputs.
func (q *leadQuery) state() (domain.FilterState, domain.SortState, error) {
	if q.scoreMin > q.scoreMax {
		return domain.FilterState{}, domain.SortState{}, fmt.Errorf("--score-min %d is above --score-max %d", q.scoreMin, q.scoreMax)
	}
	filters := domain.FilterState{
		Query:    q.query,
		ScoreMin: q.scoreMin,
		ScoreMax: q.scoreMax,
		Industry: q.industry,
		Location: q.location,
		Status:   q.status,
	}

	if q.sortKey == "" {
		return filters, domain.SortState{}, nil
	}
	if !pipeline.IsSortableKey(q.sortKey) {
		return filters, domain.SortState{}, fmt.Errorf("cannot sort by %q", q.sortKey)
	}
	dir := domain.SortDirection(q.sortDir)
	if dir != domain.SortAsc && dir != domain.SortDesc {
		return filters, domain.SortState{}, fmt.Errorf("unsupported sort direction %q: use 'asc' or 'desc'", q.sortDir)
	}
	return filters, domain.SortState{Key: q.sortKey, Direction: dir}, nil
}

// apply filters then sorts all.
func (q *leadQuery) apply(all []domain.Lead) ([]domain.Lead, error) {
	filters, sort, err := q.state()
	if err != nil {
		return nil, err
	}
	rows := pipeline.Visible(all, filters)
	if sort.Active() {
		rows = pipeline.ApplySort(rows, sort.Key, sort.Direction)
	}
	return rows, nil
}
