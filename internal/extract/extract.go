// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract reads the text layer and first-page geometry of a resume PDF.
package extract

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/pdiddy/resume-tailor/pkg/types"
)

// Text returns the text of every page of the PDF at path, in page order,
// with the first page's geometry. Each visual row of a page becomes one
// line; pages are separated by a newline.
//
// An empty result is not an error here; callers decide whether a document
// without text is acceptable.
func Text(path string) (text string, geom types.Geometry, err error) {
	text, err = pageText(path)
	if err != nil {
		return "", types.Geometry{}, err
	}

	geom, err = ReadGeometry(path)
	if err != nil {
		return "", types.Geometry{}, &types.ExtractionError{Op: "reading geometry", Err: err}
	}
	return text, geom, nil
}

// pageText reads every page with ledongthuc/pdf. The parser panics on some
// malformed inputs; those are reported as extraction errors.
func pageText(path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &types.ExtractionError{Op: "parsing " + path, Err: fmt.Errorf("malformed PDF: %v", r)}
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", &types.ExtractionError{Op: "opening " + path, Err: err}
	}
	defer f.Close()

	numPages := r.NumPage()
	if numPages == 0 {
		return "", &types.ExtractionError{Op: "parsing " + path, Err: fmt.Errorf("document has no pages")}
	}

	var b strings.Builder
	for i := 1; i <= numPages; i++ {
		p := r.Page(i)
		if p.V.IsNull() || p.V.Key("Contents").Kind() == pdf.Null {
			return "", &types.ExtractionError{Op: fmt.Sprintf("reading page %d", i), Err: fmt.Errorf("page has no text object")}
		}

		if i > 1 {
			b.WriteByte('\n')
		}
		for _, line := range rows(p.Content().Text) {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}

// ReadGeometry returns the media box size of the first page of the PDF at
// path. Validation is relaxed so that PDFs produced by lenient writers still
// yield their page size.
func ReadGeometry(path string) (types.Geometry, error) {
	f, err := os.Open(path)
	if err != nil {
		return types.Geometry{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	dims, err := api.PageDims(f, conf)
	if err != nil {
		return types.Geometry{}, fmt.Errorf("reading page dimensions of %s: %w", path, err)
	}
	if len(dims) == 0 {
		return types.Geometry{}, fmt.Errorf("%s has no pages", path)
	}

	g := types.Geometry{Width: dims[0].Width, Height: dims[0].Height}
	if !g.Valid() {
		return types.Geometry{}, fmt.Errorf("%s: invalid first page size %.1fx%.1f", path, g.Width, g.Height)
	}
	return g, nil
}
