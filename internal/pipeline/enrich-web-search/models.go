package enrichwebsearch

// Mode records how an explanation was produced.
type Mode string

const (
	ModeLive   Mode = "live"   // built from search results
	ModeEmpty  Mode = "empty"  // search returned no items
	ModeMock   Mode = "mock"   // no credentials configured
	ModeCanned Mode = "canned" // search failed
)

type Output struct {
	Explanation string   `json:"explanation"`
	Sources     []string `json:"sources"`
	Mode        Mode     `json:"mode"`
}
