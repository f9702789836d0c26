package viewpoint

// Document is the materialized viewpoint tree: the children of the export's
// <viewpoints> section, in document order.
type Document struct {
	Children []Child
}

// Child is a tagged union node. Exactly one of Folder or View is set.
type Child struct {
	Folder *FolderNode
	View   *ViewNode
}

type FolderNode struct {
	Name     string
	Children []Child
}

// ViewNode is a saved view. GUID is an opaque identifier taken verbatim from
// the export; it is not required to be canonical GUID syntax.
type ViewNode struct {
	Name     string
	GUID     string
	Comments []CommentRecord
}

type CommentRecord struct {
	ID      string
	Status  string
	User    string
	Body    string
	Created *CreatedDate
}

// CreatedDate keeps the raw year/month/day attribute values. The export uses
// year 0 and other pre-1900 values as a "no date" sentinel, so validation is
// deferred to projection time.
type CreatedDate struct {
	Year  string
	Month string
	Day   string
}

// CountViews walks the tree and counts view leaves.
func (d Document) CountViews() int {
	total := 0
	var walk func(children []Child)
	walk = func(children []Child) {
		for _, child := range children {
			if child.View != nil {
				total++
			}
			if child.Folder != nil {
				walk(child.Folder.Children)
			}
		}
	}
	walk(d.Children)
	return total
}

// Header returns the fixed 11-column contract consumed by the downstream
// reporting tool. Order and count must not change.
func Header() []string {
	return []string{
		"Category",
		"Level",
		"Subfolder",
		"ViewName",
		"GUID",
		"CommentID",
		"Status",
		"User",
		"Body",
		"CreatedDate",
		"ImagePath",
	}
}

// Row is one flattened output record.
type Row struct {
	Category    string
	Level       string
	Subfolder   string
	ViewName    string
	GUID        string
	CommentID   string
	Status      string
	User        string
	Body        string
	CreatedDate string
	ImagePath   string
}

func (r Row) Fields() []string {
	return []string{
		r.Category,
		r.Level,
		r.Subfolder,
		r.ViewName,
		r.GUID,
		r.CommentID,
		r.Status,
		r.User,
		r.Body,
		r.CreatedDate,
		r.ImagePath,
	}
}

// RowKey identifies a row for duplicate suppression. An empty CommentID
// identifies the "no comment" row of a view.
type RowKey struct {
	GUID      string
	CommentID string
}

func (r Row) Key() RowKey {
	return RowKey{GUID: r.GUID, CommentID: r.CommentID}
}
