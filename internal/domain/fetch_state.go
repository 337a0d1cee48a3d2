package domain

// FetchStatus итог обращения к координатору выборки
type FetchStatus string

const (
	FetchStatusFetched         FetchStatus = "fetched"
	FetchStatusFailed          FetchStatus = "failed"
	FetchStatusSkippedNearby   FetchStatus = "skipped_nearby"
	FetchStatusSkippedInFlight FetchStatus = "skipped_in_flight"
)

// FetchState снимок состояния координатора для презентации
type FetchState struct {
	Places          []Place `json:"places"`
	IsLoading       bool    `json:"is_loading"`
	LastError       string  `json:"last_error,omitempty"`
	LastErrorCode   string  `json:"last_error_code,omitempty"`
	LastFetchCenter *Point  `json:"last_fetch_center,omitempty"`
}
