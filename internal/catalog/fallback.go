package catalog

import "github.com/devanlim/busarrival/internal/geo"

// fallbackStops is a fixed set of well-known stops served when the remote
// catalog is unreachable or empty, so a rider is never shown nothing purely
// because the provider is down.
var fallbackStops = []Stop{
	{Code: "09037", Name: "Orchard Rd", RoadName: "Orchard Road", Location: geo.Coordinate{Lat: 1.304833, Lng: 103.831833}},
	{Code: "09047", Name: "Orchard Plaza", RoadName: "Orchard Road", Location: geo.Coordinate{Lat: 1.305833, Lng: 103.830833}},
	{Code: "02049", Name: "Raffles Place MRT", RoadName: "Raffles Quay", Location: geo.Coordinate{Lat: 1.283694, Lng: 103.851556}},
	{Code: "02059", Name: "Marina Bay Sands", RoadName: "Bayfront Avenue", Location: geo.Coordinate{Lat: 1.283417, Lng: 103.860694}},
	{Code: "01012", Name: "Bugis Junction", RoadName: "Victoria Street", Location: geo.Coordinate{Lat: 1.299306, Lng: 103.854694}},
	{Code: "01022", Name: "Bugis MRT", RoadName: "North Bridge Road", Location: geo.Coordinate{Lat: 1.299833, Lng: 103.855556}},
	{Code: "03111", Name: "Clarke Quay MRT", RoadName: "North Bridge Road", Location: geo.Coordinate{Lat: 1.288611, Lng: 103.846722}},
	{Code: "04168", Name: "Chinatown MRT", RoadName: "New Bridge Road", Location: geo.Coordinate{Lat: 1.284528, Lng: 103.844139}},
	{Code: "48009", Name: "Little India MRT", RoadName: "Serangoon Road", Location: geo.Coordinate{Lat: 1.306722, Lng: 103.849306}},
	{Code: "04211", Name: "Tanjong Pagar MRT", RoadName: "Tanjong Pagar Road", Location: geo.Coordinate{Lat: 1.276528, Lng: 103.845889}},
	{Code: "08031", Name: "Dhoby Ghaut MRT", RoadName: "Orchard Road", Location: geo.Coordinate{Lat: 1.298833, Lng: 103.845611}},
	{Code: "09023", Name: "Somerset MRT", RoadName: "Orchard Road", Location: geo.Coordinate{Lat: 1.300694, Lng: 103.839028}},
	{Code: "28009", Name: "Ang Mo Kio Hub", RoadName: "Ang Mo Kio Avenue 3", Location: geo.Coordinate{Lat: 1.369028, Lng: 103.848472}},
	{Code: "59009", Name: "Jurong East MRT", RoadName: "Jurong East Street 13", Location: geo.Coordinate{Lat: 1.333194, Lng: 103.742472}},
	{Code: "65009", Name: "Tampines MRT", RoadName: "Tampines Central 1", Location: geo.Coordinate{Lat: 1.354028, Lng: 103.942694}},
}

// FallbackStops returns a copy of the built-in stop list.
func FallbackStops() []Stop {
	out := make([]Stop, len(fallbackStops))
	copy(out, fallbackStops)
	return out
}
