package processor

import (
	"bytes"
	"fmt"
	"image"
	"sort"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
)

// jpegQuality is fixed and deliberately on the low side: thumbnails trade
// fidelity for size and encode speed.
const jpegQuality = 60

var filters = map[string]imaging.ResampleFilter{
	"nearest":     imaging.NearestNeighbor,
	"triangle":    imaging.Linear,
	"gaussian":    imaging.Gaussian,
	"catmull-rom": imaging.CatmullRom,
	"lanczos3":    imaging.Lanczos,
}

// ParseFilter maps a filter name from the CLI to its resampling kernel.
func ParseFilter(name string) (imaging.ResampleFilter, error) {
	f, ok := filters[strings.ToLower(name)]
	if !ok {
		names := make([]string, 0, len(filters))
		for n := range filters {
			names = append(names, "'"+n+"'")
		}
		sort.Strings(names)
		return imaging.ResampleFilter{}, fmt.Errorf("cannot parse filter type %q: the only authorized values are %s", name, strings.Join(names, ", "))
	}
	return f, nil
}

// Resizer turns raw encoded image bytes into resized JPEG bytes. It keeps
// no state besides the run configuration, so one instance is shared by
// every worker without synchronization.
type Resizer struct {
	width  int
	height int
	filter imaging.ResampleFilter
}

func NewResizer(width, height int, filter imaging.ResampleFilter) *Resizer {
	return &Resizer{width: width, height: height, filter: filter}
}

// Resize decodes the source image, resamples it to exactly width x height
// (both dimensions forced, aspect ratio is not preserved) and re-encodes
// the result as JPEG.
func (r *Resizer) Resize(raw []byte) ([]byte, error) {
	img, err := decode(raw)
	if err != nil {
		return nil, fmt.Errorf("error decoding image: %w", err)
	}

	thumb := imaging.Resize(img, r.width, r.height, r.filter)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("error encoding to jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// decode sniffs the payload instead of trusting the file extension.
// WebP needs its own decoder; imaging covers JPEG/PNG/GIF/TIFF/BMP.
func decode(raw []byte) (image.Image, error) {
	if mimetype.Detect(raw).Is("image/webp") {
		return webp.Decode(bytes.NewReader(raw))
	}
	return imaging.Decode(bytes.NewReader(raw))
}
