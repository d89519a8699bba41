// Package geometry loads the Natural Earth admin-0 countries dataset
// used as the base layer of the message map.
package geometry

import (
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"github.com/pkg/errors"
)

// Country is one admin-0 feature with its precomputed centroid.
type Country struct {
	Name     string
	Geometry orb.Geometry
	Centroid orb.Point
}

// Dataset indexes admin-0 countries by their dataset display name.
type Dataset struct {
	countries []Country
	byName    map[string]int
}

// Load reads a GeoJSON feature collection from disk.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read geometry dataset")
	}
	return Parse(data)
}

// Parse builds a Dataset from raw GeoJSON. Features are keyed by their
// ADMIN property, falling back to NAME; features without either, or
// without a geometry, are skipped.
func Parse(data []byte) (*Dataset, error) {
	collection, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrap(err, "parse geometry dataset")
	}

	dataset := &Dataset{byName: make(map[string]int)}
	for _, feature := range collection.Features {
		name, _ := feature.Properties["ADMIN"].(string)
		if name == "" {
			name, _ = feature.Properties["NAME"].(string)
		}
		if name == "" || feature.Geometry == nil {
			continue
		}
		centroid, _ := planar.CentroidArea(feature.Geometry)
		dataset.byName[name] = len(dataset.countries)
		dataset.countries = append(dataset.countries, Country{
			Name:     name,
			Geometry: feature.Geometry,
			Centroid: centroid,
		})
	}
	return dataset, nil
}

// Countries returns every feature in file order, for drawing the base map.
func (d *Dataset) Countries() []Country {
	return d.countries
}

// Centroid looks up a country's centroid by dataset display name.
func (d *Dataset) Centroid(name string) (orb.Point, bool) {
	i, ok := d.byName[name]
	if !ok {
		return orb.Point{}, false
	}
	return d.countries[i].Centroid, true
}

func (d *Dataset) Len() int {
	return len(d.countries)
}
