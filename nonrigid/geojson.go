package nonrigid

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// CorrespondencesGeoJSON returns one LineString feature per pair, from the fixed
// point to the current movable point, projected onto the XY plane. Heights and
// distances are kept as feature properties.
func CorrespondencesGeoJSON(c *Correspondences) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	ptp := c.PointToPlaneCurrent().Values
	euc := c.EuclideanCurrent().Values

	for i, p := range c.Pairs() {
		line := orb.LineString{
			{p.Fixed.X, p.Fixed.Y},
			{p.MovableCurrent.X, p.MovableCurrent.Y},
		}
		f := geojson.NewFeature(line)
		f.Properties["fixed_index"] = p.FixedIndex
		f.Properties["movable_index"] = p.MovableIndex
		f.Properties["fixed_z"] = p.Fixed.Z
		f.Properties["movable_z"] = p.MovableCurrent.Z
		if i < len(ptp) {
			f.Properties["point_to_plane"] = ptp[i]
			f.Properties["euclidean"] = euc[i]
		}
		fc.Append(f)
	}
	return fc
}
