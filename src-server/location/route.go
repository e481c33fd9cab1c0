package location

import "math"

const earthRadiusKm = 6371

// Distance returns the great-circle distance between two points in
// kilometers.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

func toRadians(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}

// OptimizeRoute reorders the intermediate stops by repeatedly hopping to the
// nearest unvisited one. The first and last points are pinned: the day starts
// and ends where the user said it does. Greedy, not optimal, which is fine
// for a handful of stops.
func OptimizeRoute(stops []Info) []Info {
	if len(stops) <= 2 {
		out := make([]Info, len(stops))
		copy(out, stops)
		return out
	}

	optimized := make([]Info, 0, len(stops))
	optimized = append(optimized, stops[0])

	remaining := make([]Info, len(stops)-2)
	copy(remaining, stops[1:len(stops)-1])

	current := stops[0]
	for len(remaining) > 0 {
		nearestIndex := 0
		nearestDistance := math.Inf(1)
		for i, stop := range remaining {
			d := Distance(current.Latitude, current.Longitude, stop.Latitude, stop.Longitude)
			if d < nearestDistance {
				nearestDistance = d
				nearestIndex = i
			}
		}
		current = remaining[nearestIndex]
		optimized = append(optimized, current)
		remaining = append(remaining[:nearestIndex], remaining[nearestIndex+1:]...)
	}

	return append(optimized, stops[len(stops)-1])
}
