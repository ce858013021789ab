package ipapi

// Status values of the status field
const (
	StatusSuccess = "success"
	StatusFail    = "fail"
)

// LookupAPIResponse is the subset of ip-api.com's JSON response requested via the fields parameter
type LookupAPIResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message,omitempty"` // only set when status is "fail"
	Query   string  `json:"query"`
	City    string  `json:"city"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}
