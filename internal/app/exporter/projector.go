package exporter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/daabcontech/navisexport/internal/domain/viewpoint"
)

// projection holds the state of one depth-first flattening pass. Each call
// to projectDocument owns a fresh instance, so repeated exports never share
// the view counter or the dedup set.
type projection struct {
	imagePrefix string
	onView      func(name string)
	onTrace     func(line string)

	path       []string
	seen       map[viewpoint.RowKey]struct{}
	views      int
	duplicates int
	rows       []viewpoint.Row
	trace      []string
}

type projectionResult struct {
	Rows       []viewpoint.Row
	Trace      []string
	Views      int
	Duplicates int
}

// projectDocument flattens the viewpoint tree into ordered table rows.
// Output order is traversal order of surviving rows; duplicates by
// (GUID, CommentID) are dropped, first occurrence wins.
func projectDocument(doc viewpoint.Document, imagePrefix string, onView func(string), onTrace func(string)) projectionResult {
	p := &projection{
		imagePrefix: imagePrefix,
		onView:      onView,
		onTrace:     onTrace,
		seen:        make(map[viewpoint.RowKey]struct{}),
	}
	p.walk(doc.Children)
	return projectionResult{
		Rows:       p.rows,
		Trace:      p.trace,
		Views:      p.views,
		Duplicates: p.duplicates,
	}
}

func (p *projection) log(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	p.trace = append(p.trace, line)
	if p.onTrace != nil {
		p.onTrace(line)
	}
}

func (p *projection) walk(children []viewpoint.Child) {
	for _, child := range children {
		switch {
		case child.Folder != nil:
			p.enterFolder(child.Folder)
		case child.View != nil:
			p.visitView(child.View)
		}
	}
}

func (p *projection) enterFolder(folder *viewpoint.FolderNode) {
	p.path = append(p.path, folder.Name)
	p.log("entering folder: %s", joinNonEmpty(p.path))
	p.walk(folder.Children)
	p.path = p.path[:len(p.path)-1]
}

func (p *projection) visitView(view *viewpoint.ViewNode) {
	p.views++
	image := fmt.Sprintf("%s%04d.jpg", p.imagePrefix, p.views)
	p.log("  found view: %s (guid=%s) image=%s", view.Name, view.GUID, image)
	if p.onView != nil {
		p.onView(view.Name)
	}

	if len(view.Comments) == 0 {
		p.log("    no comments for view %s", view.Name)
		p.addRow(p.baseRow(view, image))
		return
	}

	for _, comment := range view.Comments {
		p.log("    comment id=%s status=%s user=%s", comment.ID, comment.Status, comment.User)
		row := p.baseRow(view, image)
		row.CommentID = comment.ID
		row.Status = comment.Status
		row.User = comment.User
		row.Body = comment.Body
		row.CreatedDate = p.formatCreated(comment)
		p.addRow(row)
	}
}

// baseRow derives the folder-path columns from the current stack: Category
// is the first-level ancestor, Level the second, Subfolder everything from
// depth three down joined with " > ". Row fields keep raw names, empty ones
// included.
func (p *projection) baseRow(view *viewpoint.ViewNode, image string) viewpoint.Row {
	row := viewpoint.Row{ViewName: view.Name, GUID: view.GUID, ImagePath: image}
	if len(p.path) > 0 {
		row.Category = p.path[0]
	}
	if len(p.path) > 1 {
		row.Level = p.path[1]
	}
	if len(p.path) > 2 {
		row.Subfolder = strings.Join(p.path[2:], " > ")
	}
	return row
}

func (p *projection) addRow(row viewpoint.Row) {
	key := row.Key()
	if _, dup := p.seen[key]; dup {
		p.duplicates++
		p.log("duplicate skipped: guid=%s commentid=%s", key.GUID, key.CommentID)
		return
	}
	p.seen[key] = struct{}{}
	p.rows = append(p.rows, row)
}

// formatCreated renders the comment creation date as yyyy/mm/dd. Year 0 and
// anything before 1900 is the export's "no date" sentinel and renders empty
// without a trace; attribute text that does not parse as an integer logs a
// trace line instead. Day-of-month is not checked against the month; the
// export itself is that permissive.
func (p *projection) formatCreated(comment viewpoint.CommentRecord) string {
	created := comment.Created
	if created == nil {
		return ""
	}
	year, okYear := dateInt(created.Year)
	month, okMonth := dateInt(created.Month)
	day, okDay := dateInt(created.Day)
	if !okYear || !okMonth || !okDay {
		p.log("failed to parse createddate for comment %s: year=%q month=%q day=%q",
			comment.ID, created.Year, created.Month, created.Day)
		return ""
	}
	if year < 1900 || month <= 0 || day <= 0 {
		return ""
	}
	return fmt.Sprintf("%04d/%02d/%02d", year, month, day)
}

// dateInt treats a missing attribute as 0, matching the export's sentinel
// convention.
func dateInt(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

func joinNonEmpty(segments []string) string {
	kept := make([]string, 0, len(segments))
	for _, segment := range segments {
		if segment != "" {
			kept = append(kept, segment)
		}
	}
	return strings.Join(kept, " > ")
}
