package pdf

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PageSize is a page's media box in points.
type PageSize struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Info describes a PDF file without extracting its content.
type Info struct {
	Path  string     `json:"path" yaml:"path"`
	Pages int        `json:"pages" yaml:"pages"`
	Sizes []PageSize `json:"sizes" yaml:"sizes"`
}

// Inspect reads the page count and page sizes of a PDF.
// With validate set, the file is validated by pdfcpu in relaxed mode first.
func Inspect(path string, validate bool) (*Info, error) {
	if validate {
		conf := model.NewDefaultConfiguration()
		conf.ValidationMode = model.ValidationRelaxed
		if err := api.ValidateFile(path, conf); err != nil {
			return nil, fmt.Errorf("api.ValidateFile(%s) > %w", path, err)
		}
	}

	pages, err := api.PageCountFile(path)
	if err != nil {
		return nil, fmt.Errorf("api.PageCountFile(%s) > %w", path, err)
	}

	dims, err := api.PageDimsFile(path)
	if err != nil {
		return nil, fmt.Errorf("api.PageDimsFile(%s) > %w", path, err)
	}
	sizes := make([]PageSize, 0, len(dims))
	for _, d := range dims {
		sizes = append(sizes, PageSize{Width: d.Width, Height: d.Height})
	}

	return &Info{
		Path:  path,
		Pages: pages,
		Sizes: sizes,
	}, nil
}
