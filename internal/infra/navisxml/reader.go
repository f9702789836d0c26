package navisxml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/daabcontech/navisexport/internal/domain/viewpoint"
)

// ReadFile parses a viewpoint XML export from disk.
func ReadFile(path string) (viewpoint.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return viewpoint.Document{}, fmt.Errorf("open viewpoint document: %w", err)
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		var malformed *viewpoint.MalformedDocumentError
		if errors.As(err, &malformed) && malformed.Path == "" {
			malformed.Path = path
		}
		return viewpoint.Document{}, err
	}
	return doc, nil
}

// Parse materializes a serialized viewpoint tree. The document must have a
// root element containing a <viewpoints> section; sibling sections of the
// export (clash tests, selection sets, current view) are skipped. Semantic
// contents are not validated here: missing names, opaque GUIDs and broken
// dates all pass through and degrade per-field during projection.
func Parse(r io.Reader) (viewpoint.Document, error) {
	dec := xml.NewDecoder(r)

	if err := findRootElement(dec); err != nil {
		return viewpoint.Document{}, err
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return viewpoint.Document{}, &viewpoint.MalformedDocumentError{Reason: "reading root children", Err: err}
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "viewpoints" {
				children, err := parseChildren(dec)
				if err != nil {
					return viewpoint.Document{}, &viewpoint.MalformedDocumentError{Reason: "reading viewpoints section", Err: err}
				}
				return viewpoint.Document{Children: children}, nil
			}
			if err := dec.Skip(); err != nil {
				return viewpoint.Document{}, &viewpoint.MalformedDocumentError{Reason: "skipping section", Err: err}
			}
		case xml.EndElement:
			// End of the root element.
			return viewpoint.Document{}, &viewpoint.MalformedDocumentError{Reason: "document has no viewpoints section"}
		}
	}
	return viewpoint.Document{}, &viewpoint.MalformedDocumentError{Reason: "document has no viewpoints section"}
}

func findRootElement(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return &viewpoint.MalformedDocumentError{Reason: "document has no root element"}
		}
		if err != nil {
			return &viewpoint.MalformedDocumentError{Reason: "reading root element", Err: err}
		}
		if _, ok := tok.(xml.StartElement); ok {
			return nil
		}
	}
}

// parseChildren consumes the children of the element the decoder is
// positioned in, preserving the document order of interleaved <view> and
// <viewfolder> elements. It returns when the matching end element is read.
func parseChildren(dec *xml.Decoder) ([]viewpoint.Child, error) {
	var children []viewpoint.Child
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "viewfolder":
				folder, err := parseFolder(dec, t)
				if err != nil {
					return nil, err
				}
				children = append(children, viewpoint.Child{Folder: folder})
			case "view":
				var v xmlView
				if err := dec.DecodeElement(&v, &t); err != nil {
					return nil, err
				}
				children = append(children, viewpoint.Child{View: v.toDomain()})
			default:
				if err := dec.Skip(); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			return children, nil
		}
	}
}

func parseFolder(dec *xml.Decoder, start xml.StartElement) (*viewpoint.FolderNode, error) {
	children, err := parseChildren(dec)
	if err != nil {
		return nil, err
	}
	return &viewpoint.FolderNode{
		Name:     attr(start, "name"),
		Children: children,
	}, nil
}

func attr(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

type xmlView struct {
	Name     string       `xml:"name,attr"`
	GUID     string       `xml:"guid,attr"`
	Comments *xmlComments `xml:"comments"`
}

type xmlComments struct {
	Comments []xmlComment `xml:"comment"`
}

type xmlComment struct {
	ID      string      `xml:"id,attr"`
	Status  string      `xml:"status,attr"`
	User    string      `xml:"user"`
	Body    string      `xml:"body"`
	Created *xmlCreated `xml:"createddate"`
}

type xmlCreated struct {
	Date *xmlDate `xml:"date"`
}

type xmlDate struct {
	Year  string `xml:"year,attr"`
	Month string `xml:"month,attr"`
	Day   string `xml:"day,attr"`
}

func (v xmlView) toDomain() *viewpoint.ViewNode {
	node := &viewpoint.ViewNode{Name: v.Name, GUID: v.GUID}
	if v.Comments == nil {
		return node
	}
	for _, c := range v.Comments.Comments {
		rec := viewpoint.CommentRecord{
			ID:     c.ID,
			Status: c.Status,
			User:   c.User,
			Body:   c.Body,
		}
		if c.Created != nil && c.Created.Date != nil {
			rec.Created = &viewpoint.CreatedDate{
				Year:  c.Created.Date.Year,
				Month: c.Created.Date.Month,
				Day:   c.Created.Date.Day,
			}
		}
		node.Comments = append(node.Comments, rec)
	}
	return node
}
