package openstreetmap

// Place is a single Nominatim result as returned by both /search and /reverse
// with format=json.
type Place struct {
	PlaceId     int      `json:"place_id"`
	Licence     string   `json:"licence"`
	OsmType     string   `json:"osm_type"`
	OsmId       int      `json:"osm_id"`
	Lat         string   `json:"lat"`
	Lon         string   `json:"lon"`
	Class       string   `json:"class"`
	Type        string   `json:"type"`
	PlaceRank   int      `json:"place_rank"`
	Importance  float64  `json:"importance"`
	Addresstype string   `json:"addresstype"`
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name"`
	Address     *Address `json:"address,omitempty"`
	Boundingbox []string `json:"boundingbox"`
}

// Address is the addressdetails breakdown of a Place
type Address struct {
	Road        string `json:"road"`
	Suburb      string `json:"suburb"`
	City        string `json:"city"`
	Town        string `json:"town"`
	County      string `json:"county"`
	State       string `json:"state"`
	Postcode    string `json:"postcode"`
	Country     string `json:"country"`
	CountryCode string `json:"country_code"`
}

// ErrorResponse is the body Nominatim returns for unresolvable requests,
// e.g. {"error":"Unable to geocode"} from /reverse over open water.
type ErrorResponse struct {
	Error string `json:"error"`
}
