package project

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/indaco/csprojver/internal/apperrors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Document is a parsed project file.
type Document struct {
	path string
	doc  *etree.Document
	bom  bool
	crlf bool
}

// Parse parses data as a project document. path is only used in errors.
//
// Malformed XML and documents without a root element are *apperrors.ParseError;
// a root other than <Project> is *apperrors.FormatError.
func Parse(path string, data []byte) (*Document, error) {
	bom := bytes.HasPrefix(data, utf8BOM)
	if bom {
		data = data[len(utf8BOM):]
	}

	doc := etree.NewDocument()
	doc.ReadSettings.PreserveCData = true
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, &apperrors.ParseError{Path: path, Err: err}
	}

	root := doc.Root()
	if root == nil {
		return nil, &apperrors.ParseError{Path: path, Err: errors.New("document has no root element")}
	}
	if root.Tag != RootTag {
		return nil, &apperrors.FormatError{Path: path, Message: "Invalid project file format."}
	}

	// Keep apostrophes in Condition attributes and text as written.
	doc.WriteSettings.CanonicalAttrVal = true
	doc.WriteSettings.CanonicalText = true

	// The XML decoder folds CRLF into LF; Bytes restores it.
	crlf := bytes.Contains(data, []byte("\r\n"))

	return &Document{path: path, doc: doc, bom: bom, crlf: crlf}, nil
}

// SetVersion finds or creates the element named tag and replaces its content
// with version.
//
// The search covers the whole document. More than one match is a
// *apperrors.FormatError and leaves the document untouched.
func (d *Document) SetVersion(tag, version string) (ElementChange, error) {
	change := ElementChange{Tag: tag}

	matches := d.doc.FindElements("//" + tag)
	var target *etree.Element

	switch len(matches) {
	case 0:
		group, created := d.propertyGroup()
		target = etree.NewElement(tag)
		appendChild(group, target)
		change.Created = true
		change.CreatedGroup = created
	case 1:
		target = matches[0]
		change.Previous = strings.TrimSpace(target.Text())
	default:
		return change, &apperrors.FormatError{
			Path:    d.path,
			Message: fmt.Sprintf("Project file contains multiple '%s' elements.", tag),
		}
	}

	for len(target.Child) > 0 {
		target.RemoveChildAt(0)
	}
	target.SetText(version)

	return change, nil
}

// propertyGroup returns the first PropertyGroup in document order, creating one
// under the root when none exists.
func (d *Document) propertyGroup() (*etree.Element, bool) {
	if group := d.doc.FindElement("//" + PropertyGroupTag); group != nil {
		return group, false
	}
	group := etree.NewElement(PropertyGroupTag)
	appendChild(d.doc.Root(), group)
	return group, true
}

// Bytes serializes the document, restoring a leading BOM and CRLF line
// endings if the input had them.
func (d *Document) Bytes() ([]byte, error) {
	out, err := d.doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize %q: %w", d.path, err)
	}
	if d.crlf {
		out = bytes.ReplaceAll(out, []byte("\r\n"), []byte("\n"))
		out = bytes.ReplaceAll(out, []byte("\n"), []byte("\r\n"))
	}
	if d.bom {
		out = append(append([]byte(nil), utf8BOM...), out...)
	}
	return out, nil
}

// appendChild adds el as the last child of parent. When the existing children
// sit one per line, el gets the same indentation.
func appendChild(parent, el *etree.Element) {
	child, closing, ok := indentation(parent)
	if !ok {
		parent.AddChild(el)
		return
	}

	for n := len(parent.Child); n > 0 && isBlank(parent.Child[n-1]); n = len(parent.Child) {
		parent.RemoveChildAt(n - 1)
	}
	parent.AddChild(etree.NewText(child))
	parent.AddChild(el)
	parent.AddChild(etree.NewText(closing))
}

// indentation returns the whitespace placed before each child of parent and
// before its end tag. ok is false when parent is not laid out line by line.
func indentation(parent *etree.Element) (child, closing string, ok bool) {
	if first := firstChildElement(parent); first != nil {
		child, ok = lineIndentBefore(first)
		if !ok {
			return "", "", false
		}
		if n := len(parent.Child); n > 0 {
			closing, _ = lineIndent(parent.Child[n-1])
		}
		return child, closing, true
	}

	for _, tok := range parent.Child {
		if !isBlank(tok) {
			return "", "", false
		}
	}

	own, ok := lineIndentBefore(parent)
	if !ok {
		return "", "", false
	}
	grand := parent.Parent()
	if grand == nil || grand.Parent() == nil {
		return "", "", false
	}
	grandChild, grandClosing, ok := indentation(grand)
	if !ok || !strings.HasPrefix(grandChild, grandClosing) {
		return "", "", false
	}
	unit := strings.TrimPrefix(grandChild, grandClosing)
	if unit == "" || strings.Contains(unit, "\n") {
		return "", "", false
	}
	return own + unit, own, true
}

func firstChildElement(parent *etree.Element) *etree.Element {
	for _, tok := range parent.Child {
		if el, ok := tok.(*etree.Element); ok {
			return el
		}
	}
	return nil
}

// lineIndentBefore returns the indentation on the line holding el.
func lineIndentBefore(el *etree.Element) (string, bool) {
	parent := el.Parent()
	idx := el.Index()
	if parent == nil || idx <= 0 {
		return "", false
	}
	return lineIndent(parent.Child[idx-1])
}

// lineIndent returns the text from the last newline of a blank char data token.
// Tokens built with etree.NewText never report IsWhitespace, so blankness is
// checked on the data.
func lineIndent(tok etree.Token) (string, bool) {
	cd, ok := tok.(*etree.CharData)
	if !ok || strings.TrimSpace(cd.Data) != "" {
		return "", false
	}
	i := strings.LastIndex(cd.Data, "\n")
	if i < 0 {
		return "", false
	}
	return cd.Data[i:], true
}

func isBlank(tok etree.Token) bool {
	cd, ok := tok.(*etree.CharData)
	return ok && strings.TrimSpace(cd.Data) == ""
}
