package web

import (
	"net/url"
	"strconv"

	"mini-admin/internal/model"
)

// pageWindow is how many page links are shown either side of the current
// page.
const pageWindow = 2

// Column describes one column of a Table over rows of type T.
type Column[T any] struct {
	Header string
	Value  func(T) string
	// Link, if set, renders the cell as a link to the returned URL.
	Link func(T) string
}

// Cell is one rendered table cell.
type Cell struct {
	Text string
	Href string
}

// RowAction is a per-row control: a link, or a delete button when Delete is
// set.
type RowAction struct {
	Label  string
	Href   string
	Delete *DeleteModal
}

// Row is one rendered table row.
type Row struct {
	Cells   []Cell
	Actions []RowAction
}

// PageLink is one numbered pagination link.
type PageLink struct {
	Number  int
	URL     string
	Current bool
}

// Table is an entity-agnostic data table with optional row actions and
// pagination links. Build it with NewTable.
type Table struct {
	Headers    []string
	Rows       []Row
	HasActions bool
	Colspan    int
	Empty      string
	Pagination model.Pagination
	Pages      []PageLink
	PrevURL    string
	NextURL    string
}

// NewTable renders items through columns. actions may be nil. Pagination
// links point at current with only the page parameter changed, so search
// and filter parameters survive paging.
func NewTable[T any](columns []Column[T], items []T, actions func(T) []RowAction, p model.Pagination, current *url.URL) Table {
	t := Table{
		Headers:    make([]string, 0, len(columns)),
		Rows:       make([]Row, 0, len(items)),
		Empty:      "データがありません",
		Pagination: p,
	}
	for _, c := range columns {
		t.Headers = append(t.Headers, c.Header)
	}

	for _, item := range items {
		row := Row{Cells: make([]Cell, 0, len(columns))}
		for _, c := range columns {
			cell := Cell{Text: c.Value(item)}
			if c.Link != nil {
				cell.Href = c.Link(item)
			}
			row.Cells = append(row.Cells, cell)
		}
		if actions != nil {
			row.Actions = actions(item)
			if len(row.Actions) > 0 {
				t.HasActions = true
			}
		}
		t.Rows = append(t.Rows, row)
	}

	t.Colspan = len(columns)
	if t.HasActions {
		t.Colspan++
	}

	if current == nil || p.TotalPages <= 1 {
		return t
	}

	first := max(1, p.Page-pageWindow)
	last := min(p.TotalPages, p.Page+pageWindow)
	for n := first; n <= last; n++ {
		t.Pages = append(t.Pages, PageLink{Number: n, URL: pageURL(current, n), Current: n == p.Page})
	}
	if p.HasPrev {
		t.PrevURL = pageURL(current, p.Page-1)
	}
	if p.HasNext {
		t.NextURL = pageURL(current, p.Page+1)
	}

	return t
}

func pageURL(current *url.URL, page int) string {
	q := current.Query()
	q.Set("page", strconv.Itoa(page))
	return current.Path + "?" + q.Encode()
}

// DeleteModal is a delete button that opens a confirmation dialog. Confirming
// posts the target id to Action.
type DeleteModal struct {
	DialogID string
	Action   string
	TargetID string
	Name     string
}

// NewDeleteModal creates a confirmation for deleting the record targetID,
// shown to the user as name.
func NewDeleteModal(action, targetID, name string) *DeleteModal {
	return &DeleteModal{
		DialogID: "delete-" + targetID,
		Action:   action,
		TargetID: targetID,
		Name:     name,
	}
}
