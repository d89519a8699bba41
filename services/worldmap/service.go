package worldmap

import (
	"bytes"
	"context"
	"math"

	"github.com/fogleman/gg"
	"github.com/opentracing/opentracing-go"
	tracingLog "github.com/opentracing/opentracing-go/log"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"golang.org/x/image/font/basicfont"

	"github.com/neozeit/dmarcscope/interfaces"
	"github.com/neozeit/dmarcscope/internal/geometry"
	"github.com/neozeit/dmarcscope/internal/logger"
	"github.com/neozeit/dmarcscope/internal/models"
	"github.com/neozeit/dmarcscope/internal/tracing"
)

const (
	canvasWidth  = 1500
	canvasHeight = 750
)

// Marker sizing contract: a country's marker value is its message count
// times MarkerScaleFactor, clamped to [MarkerMinSize, MarkerMaxSize].
// The value is the circle's area in square pixels.
const (
	MarkerScaleFactor = 5
	MarkerMinSize     = 50
	MarkerMaxSize     = 5000
)

// MarkerSize applies the sizing contract to a message count.
func MarkerSize(count int64) float64 {
	return math.Max(MarkerMinSize, math.Min(MarkerMaxSize, float64(count)*MarkerScaleFactor))
}

type mapRenderer struct {
	log     logger.Logger
	dataset *geometry.Dataset
}

func NewMapRenderer(log logger.Logger, dataset *geometry.Dataset) interfaces.MapRenderer {
	return &mapRenderer{
		log:     log,
		dataset: dataset,
	}
}

func (r *mapRenderer) RenderMessageMap(ctx context.Context, counts []models.CountryCount) ([]byte, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "MapRenderer.RenderMessageMap")
	defer span.Finish()
	tracing.SetDefaultRendererSpanTags(ctx, span)
	span.LogKV("request.countries", len(counts))

	if r.dataset == nil || r.dataset.Len() == 0 {
		err := errors.New("geometry dataset unavailable")
		tracing.TraceErr(span, err)
		return nil, err
	}

	// place each counted country at its centroid
	type marker struct {
		x, y, radius float64
	}
	var markers []marker
	for _, entry := range counts {
		centroid, ok := r.dataset.Centroid(entry.Country)
		if !ok {
			r.log.Warnf("Country not found in geometry dataset: %s", entry.Country)
			continue
		}
		x, y := project(centroid)
		markers = append(markers, marker{x: x, y: y, radius: math.Sqrt(MarkerSize(entry.Messages))})
	}

	if len(markers) == 0 {
		r.log.Warnf("No matching countries found for map markers")
		span.LogFields(tracingLog.Bool("result.rendered", false))
		return nil, nil
	}

	dc := gg.NewContext(canvasWidth, canvasHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// base layer: country polygons
	for _, country := range r.dataset.Countries() {
		appendGeometry(dc, country.Geometry)
		dc.SetRGB255(211, 211, 211)
		dc.FillPreserve()
		dc.SetRGB(1, 1, 1)
		dc.SetLineWidth(0.5)
		dc.Stroke()
	}

	// overlay: one circle per counted country
	for _, m := range markers {
		dc.SetRGBA(1, 0, 0, 0.6)
		dc.DrawCircle(m.x, m.y, m.radius)
		dc.Fill()
	}

	dc.SetRGB(0, 0, 0)
	dc.SetFontFace(basicfont.Face7x13)
	dc.DrawStringAnchored("Messages by Country", canvasWidth/2, 16, 0.5, 0.5)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		err = errors.Wrap(err, "encode map image")
		tracing.TraceErr(span, err)
		return nil, err
	}

	span.LogFields(tracingLog.Int("result.markers", len(markers)))
	return buf.Bytes(), nil
}

// project maps a lon/lat point onto the canvas with an equirectangular
// projection covering the full globe.
func project(p orb.Point) (float64, float64) {
	x := (p.X() + 180) / 360 * canvasWidth
	y := (90 - p.Y()) / 180 * canvasHeight
	return x, y
}

func appendGeometry(dc *gg.Context, geom orb.Geometry) {
	switch g := geom.(type) {
	case orb.Polygon:
		appendPolygon(dc, g)
	case orb.MultiPolygon:
		for _, polygon := range g {
			appendPolygon(dc, polygon)
		}
	}
}

func appendPolygon(dc *gg.Context, polygon orb.Polygon) {
	for _, ring := range polygon {
		if len(ring) == 0 {
			continue
		}
		x, y := project(ring[0])
		dc.NewSubPath()
		dc.MoveTo(x, y)
		for _, point := range ring[1:] {
			x, y = project(point)
			dc.LineTo(x, y)
		}
		dc.ClosePath()
	}
}
