// Package dto defines data transfer objects for the Alpha Vantage API responses.
package dto

// DailyResponse represents the JSON response from the TIME_SERIES_DAILY and
// TIME_SERIES_DAILY_ADJUSTED functions. On failure Alpha Vantage answers with
// HTTP 200 and one of Information, Note or ErrorMessage set instead of the series.
type DailyResponse struct {
	MetaData     map[string]string            `json:"Meta Data"`
	TimeSeries   map[string]map[string]string `json:"Time Series (Daily)"`
	Information  string                       `json:"Information,omitempty"`
	Note         string                       `json:"Note,omitempty"`
	ErrorMessage string                       `json:"Error Message,omitempty"`
}
