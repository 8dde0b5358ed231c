package gemini

// Model identifies one of the interchangeable generation models the user can
// pick between.
type Model struct {
	ID          string
	Name        string
	Description string
	Endpoint    string
}

// DefaultModel is the faster, cheaper option.
const DefaultModel = "flash"

// Models is the selectable model catalog keyed by the id persisted in local
// settings.
var Models = map[string]Model{
	"flash": {
		ID:          "gemini-2.5-flash",
		Name:        "Gemini 2.5 Flash",
		Description: "高速・高精度（推奨）",
		Endpoint:    "gemini-2.5-flash",
	},
	"pro": {
		ID:          "gemini-2.5-pro",
		Name:        "Gemini 2.5 Pro",
		Description: "最高精度・無料枠小",
		Endpoint:    "gemini-2.5-pro",
	},
}

// EndpointFor resolves a persisted model key, falling back to the default for
// anything unrecognized.
func EndpointFor(key string) string {
	if m, ok := Models[key]; ok {
		return m.Endpoint
	}
	return Models[DefaultModel].Endpoint
}
