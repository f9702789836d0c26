package navisxml

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/daabcontech/navisexport/internal/domain/viewpoint"
)

func TestParseKeepsDocumentOrder(t *testing.T) {
	doc, err := Parse(strings.NewReader(`
<exchange>
  <viewpoints>
    <viewfolder name="Plumbing">
      <view name="Overview" guid="g-1"/>
      <viewfolder name="L3">
        <view name="Riser" guid="g-2"/>
      </viewfolder>
      <view name="Closeout" guid="g-3"/>
    </viewfolder>
    <view name="Loose" guid="g-4"/>
  </viewpoints>
</exchange>`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if len(doc.Children) != 2 {
		t.Fatalf("expected 2 top-level children, got %d", len(doc.Children))
	}
	folder := doc.Children[0].Folder
	if folder == nil || folder.Name != "Plumbing" {
		t.Fatalf("expected first child to be folder Plumbing, got %+v", doc.Children[0])
	}
	if doc.Children[1].View == nil || doc.Children[1].View.GUID != "g-4" {
		t.Fatalf("expected second child to be view g-4, got %+v", doc.Children[1])
	}

	if len(folder.Children) != 3 {
		t.Fatalf("expected 3 folder children, got %d", len(folder.Children))
	}
	if folder.Children[0].View == nil || folder.Children[0].View.GUID != "g-1" {
		t.Fatalf("expected view g-1 first, got %+v", folder.Children[0])
	}
	if folder.Children[1].Folder == nil || folder.Children[1].Folder.Name != "L3" {
		t.Fatalf("expected subfolder L3 second, got %+v", folder.Children[1])
	}
	if folder.Children[2].View == nil || folder.Children[2].View.GUID != "g-3" {
		t.Fatalf("expected view g-3 third, got %+v", folder.Children[2])
	}

	if got := doc.CountViews(); got != 4 {
		t.Fatalf("expected 4 views counted, got %d", got)
	}
}

func TestParseReadsCommentFields(t *testing.T) {
	doc, err := Parse(strings.NewReader(`
<exchange>
  <viewpoints>
    <view name="Clash A" guid="not-a-canonical-guid">
      <comments>
        <comment id="12" status="open">
          <user>abner</user>
          <body>pipe clashes with duct</body>
          <createddate><date year="2024" month="3" day="15"/></createddate>
        </comment>
        <comment id="13" status="">
          <body>no user, no date</body>
        </comment>
      </comments>
    </view>
  </viewpoints>
</exchange>`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	view := doc.Children[0].View
	if view == nil {
		t.Fatalf("expected a view, got %+v", doc.Children[0])
	}
	if view.GUID != "not-a-canonical-guid" {
		t.Fatalf("expected opaque guid preserved, got %q", view.GUID)
	}
	if len(view.Comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(view.Comments))
	}

	first := view.Comments[0]
	if first.ID != "12" || first.Status != "open" || first.User != "abner" {
		t.Fatalf("unexpected comment fields: %+v", first)
	}
	if first.Created == nil || first.Created.Year != "2024" || first.Created.Month != "3" || first.Created.Day != "15" {
		t.Fatalf("expected raw date parts preserved, got %+v", first.Created)
	}

	second := view.Comments[1]
	if second.User != "" || second.Created != nil {
		t.Fatalf("expected absent fields to stay empty, got %+v", second)
	}
}

func TestParseEmptyCommentsElement(t *testing.T) {
	doc, err := Parse(strings.NewReader(`
<exchange>
  <viewpoints>
    <view name="Bare" guid="g-1"><comments/></view>
  </viewpoints>
</exchange>`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := len(doc.Children[0].View.Comments); got != 0 {
		t.Fatalf("expected no comments, got %d", got)
	}
}

func TestParseSkipsUnknownSections(t *testing.T) {
	doc, err := Parse(strings.NewReader(`
<exchange>
  <clashtests><clashtest name="x"/></clashtests>
  <viewpoints>
    <view name="V" guid="g-1"/>
  </viewpoints>
</exchange>`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc.CountViews() != 1 {
		t.Fatalf("expected 1 view, got %d", doc.CountViews())
	}
}

func TestParseEmptyViewpointsSection(t *testing.T) {
	doc, err := Parse(strings.NewReader(`<exchange><viewpoints/></exchange>`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(doc.Children) != 0 {
		t.Fatalf("expected no children, got %d", len(doc.Children))
	}
}

func TestParseMalformedInputs(t *testing.T) {
	cases := map[string]string{
		"empty":         "",
		"not xml":       "GUID,CommentID\n1,2\n",
		"no viewpoints": `<exchange><clashtests/></exchange>`,
		"truncated":     `<exchange><viewpoints><viewfolder name="a">`,
	}
	for name, input := range cases {
		if _, err := Parse(strings.NewReader(input)); err == nil {
			t.Fatalf("%s: expected error", name)
		} else {
			var malformed *viewpoint.MalformedDocumentError
			if !errors.As(err, &malformed) {
				t.Fatalf("%s: expected MalformedDocumentError, got %v", name, err)
			}
		}
	}
}

func TestReadFileSetsPathOnMalformedError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.xml")
	if err := os.WriteFile(path, []byte("<exchange></exchange>"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	_, err := ReadFile(path)
	var malformed *viewpoint.MalformedDocumentError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedDocumentError, got %v", err)
	}
	if malformed.Path != path {
		t.Fatalf("expected error to carry document path, got %q", malformed.Path)
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "nope.xml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
