package rough

import (
	"math"
	"sort"

	"github.com/matzehuels/sketchview/pkg/geom"
)

type hachureLine [2]geom.Point

type edge struct {
	ymin, ymax float64
	x          float64
	islope     float64
}

// polygonHachureLines computes the scan lines that fill polygons at the
// configured hachure angle and gap.
func polygonHachureLines(polygons [][]geom.Point, o *Options) []hachureLine {
	angle := o.HachureAngle + 90
	gap := o.HachureGap
	if gap < 0 {
		gap = o.StrokeWidth * 4
	}
	gap = math.Round(math.Max(gap, 0.1))
	skip := 1.0
	if o.Roughness >= 1 && o.random() > 0.7 {
		skip = gap
	}
	return hachureLines(polygons, gap, angle, skip)
}

func hachureLines(polygons [][]geom.Point, gap, angle, step float64) []hachureLine {
	gap = math.Max(gap, 0.1)
	if step == 0 {
		step = 1
	}
	// Rotate copies so the scan is always horizontal.
	rotated := make([][]geom.Point, len(polygons))
	for i, poly := range polygons {
		rotated[i] = rotatePoints(poly, angle)
	}
	lines := straightHachureLines(rotated, gap, step)
	if angle != 0 {
		for i := range lines {
			lines[i][0] = rotatePoint(lines[i][0], -angle)
			lines[i][1] = rotatePoint(lines[i][1], -angle)
		}
	}
	return lines
}

func rotatePoint(p geom.Point, degrees float64) geom.Point {
	return p.Rotate(geom.Point{}, math.Pi/180*degrees)
}

func rotatePoints(pts []geom.Point, degrees float64) []geom.Point {
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		if degrees == 0 {
			out[i] = p
			continue
		}
		out[i] = rotatePoint(p, degrees)
	}
	return out
}

func straightHachureLines(polygons [][]geom.Point, gap, step float64) []hachureLine {
	var edges []*edge
	for _, poly := range polygons {
		verts := poly
		if len(verts) == 0 {
			continue
		}
		if verts[0] != verts[len(verts)-1] {
			verts = append(append([]geom.Point(nil), verts...), verts[0])
		}
		if len(verts) <= 2 {
			continue
		}
		for i := 0; i < len(verts)-1; i++ {
			p1, p2 := verts[i], verts[i+1]
			if p1.Y == p2.Y {
				continue
			}
			ymin := math.Min(p1.Y, p2.Y)
			x := p2.X
			if ymin == p1.Y {
				x = p1.X
			}
			edges = append(edges, &edge{
				ymin:   ymin,
				ymax:   math.Max(p1.Y, p2.Y),
				x:      x,
				islope: (p2.X - p1.X) / (p2.Y - p1.Y),
			})
		}
	}
	if len(edges) == 0 {
		return nil
	}
	sort.SliceStable(edges, func(i, j int) bool {
		a, b := edges[i], edges[j]
		if a.ymin != b.ymin {
			return a.ymin < b.ymin
		}
		if a.x != b.x {
			return a.x < b.x
		}
		return a.ymax < b.ymax
	})

	var lines []hachureLine
	var active []*edge
	y := edges[0].ymin
	for iteration := 0; len(active) > 0 || len(edges) > 0; iteration++ {
		if len(edges) > 0 {
			ix := -1
			for i, e := range edges {
				if e.ymin > y {
					break
				}
				ix = i
			}
			active = append(active, edges[:ix+1]...)
			edges = edges[ix+1:]
		}
		kept := active[:0]
		for _, e := range active {
			if e.ymax > y {
				kept = append(kept, e)
			}
		}
		active = kept
		sort.SliceStable(active, func(i, j int) bool { return active[i].x < active[j].x })

		if step != 1 || math.Mod(float64(iteration), gap) == 0 {
			for i := 0; i+1 < len(active); i += 2 {
				lines = append(lines, hachureLine{
					geom.Pt(math.Round(active[i].x), y),
					geom.Pt(math.Round(active[i+1].x), y),
				})
			}
		}
		y += step
		for _, e := range active {
			e.x += step * e.islope
		}
	}
	return lines
}

func lineLength(l hachureLine) float64 { return l[0].Dist(l[1]) }
