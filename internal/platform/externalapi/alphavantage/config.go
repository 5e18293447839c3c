// Package alphavantage provides a client for the Alpha Vantage daily time series API.
package alphavantage

import "time"

// DefaultBaseURL is the public Alpha Vantage endpoint.
const DefaultBaseURL = "https://www.alphavantage.co"

// Config holds configuration for the Alpha Vantage API client.
type Config struct {
	APIKey            string        // API key for authentication
	BaseURL           string        // Base URL for the API (e.g., "https://www.alphavantage.co")
	Timeout           time.Duration // HTTP request timeout
	RequestsPerMinute int           // Client-side pacing; 0 disables it
}
