package types

type SuccessEnvelope struct {
	Data any `json:"data"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// Viewer is the requester as shown on every page.
type Viewer struct {
	ID            uint64 `json:"id,omitempty"`
	Username      string `json:"username,omitempty"`
	IsAdmin       bool   `json:"is_admin"`
	Authenticated bool   `json:"authenticated"`
}

// Page is the view model behind every storefront screen. Notices are the
// one-shot messages queued by earlier requests.
type Page struct {
	Name    string   `json:"page"`
	Notices []string `json:"notices"`
	Viewer  Viewer   `json:"viewer"`
	Data    any      `json:"data,omitempty"`
}
