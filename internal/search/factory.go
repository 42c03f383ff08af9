package search

import "fmt"

// ProviderConfig selects and configures the search provider.
type ProviderConfig struct {
	Provider          string
	NaverClientID     string
	NaverClientSecret string
}

// NewSearcher builds the configured provider. With no explicit provider it
// prefers Naver when credentials are present and Google News otherwise.
func NewSearcher(cfg ProviderConfig) (Searcher, error) {
	provider := cfg.Provider
	if provider == "" {
		if cfg.NaverClientID != "" {
			provider = "naver"
		} else {
			provider = "googlenews"
		}
	}

	switch provider {
	case "naver":
		if cfg.NaverClientID == "" || cfg.NaverClientSecret == "" {
			return nil, fmt.Errorf("naver client id/secret is missing")
		}
		return NewNaverClient(cfg.NaverClientID, cfg.NaverClientSecret), nil
	case "googlenews":
		return NewGoogleNewsClient(), nil
	default:
		return nil, fmt.Errorf("unknown search provider: %s", provider)
	}
}
