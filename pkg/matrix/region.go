package matrix

import "fmt"

// Region selects the top-level domain of the matrix API host.
type Region string

const (
	RegionCOM Region = "com"
	RegionEU  Region = "eu"
)

// EnvironmentProduction is the only environment name that selects the
// production host. Anything else resolves to the test host.
const EnvironmentProduction = "production"

const (
	productionHostPrefix = "api"
	testHostPrefix       = "wwwtest.api"
)

// ResolveBaseURL maps a region and deployment environment to the base URL of
// the matrix API. Unknown regions fall back to RegionCOM and any environment
// other than "production" falls back to the test host.
//
//	ResolveBaseURL(RegionEU, "production") // https://api.careerbuilder.eu
//	ResolveBaseURL("", "staging")          // https://wwwtest.api.careerbuilder.com
func ResolveBaseURL(region Region, environment string) string {
	prefix := testHostPrefix
	if environment == EnvironmentProduction {
		prefix = productionHostPrefix
	}

	if region != RegionEU {
		region = RegionCOM
	}

	return fmt.Sprintf("https://%s.careerbuilder.%s", prefix, region)
}

// TokenURL returns the OAuth2 token endpoint for a region and environment.
func TokenURL(region Region, environment string) string {
	return ResolveBaseURL(region, environment) + tokenPath
}
