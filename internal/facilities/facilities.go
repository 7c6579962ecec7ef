// Package facilities holds the static directory of clinics and
// hospitals plus search helpers over it.
package facilities

import (
	"math"
	"sort"
	"strings"
)

// Kind classifies a facility.
type Kind string

const (
	KindPolyclinic      Kind = "polyclinic"
	KindPublicHospital  Kind = "public_hospital"
	KindPrivateHospital Kind = "private_hospital"
)

// Facility is one entry in the directory.
type Facility struct {
	Name      string  `json:"name"`
	Kind      Kind    `json:"kind"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
	Hours     string  `json:"hours"`
	Phone     string  `json:"phone"`
}

// Ranked pairs a facility with its distance from a reference point.
type Ranked struct {
	Facility
	DistanceKm float64 `json:"distance_km"`
}

// All returns the full directory, polyclinics first.
func All() []Facility {
	out := make([]Facility, 0, len(polyclinics)+len(privateHospitals)+len(publicHospitals))
	out = append(out, polyclinics...)
	out = append(out, privateHospitals...)
	out = append(out, publicHospitals...)
	return out
}

// ByKind returns the entries of one kind.
func ByKind(kind Kind) []Facility {
	switch kind {
	case KindPolyclinic:
		return append([]Facility(nil), polyclinics...)
	case KindPublicHospital:
		return append([]Facility(nil), publicHospitals...)
	case KindPrivateHospital:
		return append([]Facility(nil), privateHospitals...)
	default:
		return nil
	}
}

// ByName looks up a facility by exact name, case-insensitive.
func ByName(name string) (Facility, bool) {
	for _, f := range All() {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return Facility{}, false
}

// Search returns facilities whose name contains the query,
// case-insensitive. An empty query matches everything.
func Search(query string) []Facility {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return All()
	}
	var out []Facility
	for _, f := range All() {
		if strings.Contains(strings.ToLower(f.Name), q) {
			out = append(out, f)
		}
	}
	return out
}

// Services lists the bookable service types.
func Services() []string {
	return append([]string(nil), services...)
}

// KnownService reports whether name is a bookable service.
func KnownService(name string) bool {
	for _, s := range services {
		if strings.EqualFold(s, name) {
			return true
		}
	}
	return false
}

const earthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance between two points.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Nearest ranks the directory by distance from the given point and
// returns up to limit entries. limit <= 0 means no cap.
func Nearest(lat, lon float64, limit int) []Ranked {
	all := All()
	ranked := make([]Ranked, 0, len(all))
	for _, f := range all {
		ranked = append(ranked, Ranked{
			Facility:   f,
			DistanceKm: DistanceKm(lat, lon, f.Latitude, f.Longitude),
		})
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].DistanceKm < ranked[j].DistanceKm })
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
