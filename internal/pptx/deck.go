// Package pptx decodes the slide content of a PowerPoint (.pptx) package
// into a small read-only document tree. A .pptx file is a zip archive of XML
// parts; only the parts needed for text extraction are touched.
package pptx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"
)

const (
	presentationPart = "ppt/presentation.xml"
	presentationRels = "ppt/_rels/presentation.xml.rels"
)

// Deck is an ordered sequence of slides.
type Deck struct {
	Slides []Slide
}

// Slide is one slide part with its shapes in tree order.
type Slide struct {
	// Part is the archive name the slide was read from, e.g.
	// "ppt/slides/slide1.xml".
	Part     string
	Elements []Element
}

// Element is one node of a slide's shape tree: a shape, picture, graphic
// frame, group, or connector. Only elements carrying a text body are
// text-bearing; the distinction is decided here, once, when the tree is
// built.
type Element struct {
	// Kind is the local XML name of the shape-tree child, e.g. "sp" or "pic".
	Kind string

	text    string
	hasText bool
}

// Text returns the element's text payload and whether the element carries
// one. Non-text-bearing elements (pictures, charts) report false.
func (e Element) Text() (string, bool) {
	return e.text, e.hasText
}

// Open reads a deck from zip archive bytes. Slides come out in presentation
// order as recorded in the document's relationship parts, falling back to
// numeric part-name order when those are missing or unusable.
func Open(r io.ReaderAt, size int64) (*Deck, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("opening package: %w", err)
	}

	parts := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		parts[f.Name] = f
	}

	deck := &Deck{}
	for _, name := range slideOrder(parts) {
		rc, err := parts[name].Open()
		if err != nil {
			return nil, fmt.Errorf("opening part %s: %w", name, err)
		}
		slide, err := parseSlide(name, rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("parsing part %s: %w", name, err)
		}
		deck.Slides = append(deck.Slides, slide)
	}
	return deck, nil
}

// presentationXML carries the slide id list of ppt/presentation.xml. Each
// sldId references the slide part through a relationship id.
type presentationXML struct {
	SlideIDs []struct {
		RelID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sldIdLst>sldId"`
}

// relationshipsXML carries a .rels part mapping relationship ids to targets.
type relationshipsXML struct {
	Relationships []struct {
		ID     string `xml:"Id,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

// slideOrder resolves the ordered slide part names for the archive.
func slideOrder(parts map[string]*zip.File) []string {
	if ordered := orderFromRelationships(parts); len(ordered) > 0 {
		return ordered
	}
	return orderFromPartNames(parts)
}

func orderFromRelationships(parts map[string]*zip.File) []string {
	var pres presentationXML
	if err := decodePart(parts, presentationPart, &pres); err != nil {
		return nil
	}
	var rels relationshipsXML
	if err := decodePart(parts, presentationRels, &rels); err != nil {
		return nil
	}

	targets := make(map[string]string, len(rels.Relationships))
	for _, rel := range rels.Relationships {
		targets[rel.ID] = rel.Target
	}

	var ordered []string
	for _, sld := range pres.SlideIDs {
		target, ok := targets[sld.RelID]
		if !ok {
			return nil
		}
		// Targets are relative to the ppt/ directory unless absolute.
		name := path.Join("ppt", target)
		if strings.HasPrefix(target, "/") {
			name = strings.TrimPrefix(target, "/")
		}
		if _, ok := parts[name]; !ok {
			return nil
		}
		ordered = append(ordered, name)
	}
	return ordered
}

var slidePartPattern = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

func orderFromPartNames(parts map[string]*zip.File) []string {
	type numbered struct {
		name string
		n    int
	}
	var slides []numbered
	for name := range parts {
		m := slidePartPattern.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		slides = append(slides, numbered{name: name, n: n})
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].n < slides[j].n })

	names := make([]string, len(slides))
	for i, s := range slides {
		names[i] = s.name
	}
	return names
}

func decodePart(parts map[string]*zip.File, name string, v interface{}) error {
	f, ok := parts[name]
	if !ok {
		return fmt.Errorf("part %s not found", name)
	}
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()

	dec := xml.NewDecoder(rc)
	dec.CharsetReader = charset.NewReaderLabel
	return dec.Decode(v)
}

// shapeKinds are the shape-tree children that count as shapes. The tree also
// carries bookkeeping nodes (nvGrpSpPr, grpSpPr) that are not shapes.
var shapeKinds = map[string]bool{
	"sp":           true,
	"pic":          true,
	"graphicFrame": true,
	"grpSp":        true,
	"cxnSp":        true,
	"contentPart":  true,
}

// parseSlide walks one slide part and models each shape child of the shape
// tree (p:spTree) as an Element.
func parseSlide(part string, r io.Reader) (Slide, error) {
	slide := Slide{Part: part}

	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	inTree := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return slide, nil
		}
		if err != nil {
			return Slide{}, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "spTree" {
				inTree = true
				continue
			}
			if !inTree {
				continue
			}
			if !shapeKinds[t.Name.Local] {
				if err := dec.Skip(); err != nil {
					return Slide{}, err
				}
				continue
			}
			el, err := parseElement(dec, t)
			if err != nil {
				return Slide{}, err
			}
			slide.Elements = append(slide.Elements, el)
		case xml.EndElement:
			if t.Name.Local == "spTree" {
				inTree = false
			}
		}
	}
}

// parseElement consumes the subtree started by start and collects the text
// runs (a:t) beneath its text body, if any. Paragraph ends and line breaks
// become newlines, matching how the text reads on the slide.
func parseElement(dec *xml.Decoder, start xml.StartElement) (Element, error) {
	el := Element{Kind: start.Name.Local}

	var b strings.Builder
	depth := 1
	inRun := false
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return Element{}, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "txBody":
				el.hasText = true
			case "t":
				inRun = true
			case "br":
				b.WriteByte('\n')
			}
		case xml.EndElement:
			depth--
			switch t.Name.Local {
			case "t":
				inRun = false
			case "p":
				if depth > 0 {
					b.WriteByte('\n')
				}
			}
		case xml.CharData:
			if inRun {
				b.Write(t)
			}
		}
	}

	el.text = strings.TrimRight(b.String(), "\n")
	return el, nil
}
