package lookup

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	// ResourceScheme is the URI scheme of price resources
	ResourceScheme = "crypto"

	// ResourceTemplate describes the URI shape of a price resource
	ResourceTemplate = "crypto://{crypto_id}/price"

	resourcePath = "/price"
)

// InvalidResourceURIError is returned for URIs that do not match ResourceTemplate
type InvalidResourceURIError struct {
	URI    string
	Reason string
}

func (e *InvalidResourceURIError) Error() string {
	return fmt.Sprintf("invalid resource URI %q: %s", e.URI, e.Reason)
}

// ResourceURI builds the resource URI for identifier
func ResourceURI(identifier string) string {
	return ResourceScheme + "://" + url.PathEscape(identifier) + resourcePath
}

// ParseResourceURI extracts the identifier from crypto://{identifier}/price
func ParseResourceURI(uri string) (string, error) {
	rest, ok := strings.CutPrefix(uri, ResourceScheme+"://")
	if !ok {
		return "", &InvalidResourceURIError{URI: uri, Reason: "expected " + ResourceScheme + ":// scheme"}
	}

	escaped, ok := strings.CutSuffix(rest, resourcePath)
	if !ok {
		return "", &InvalidResourceURIError{URI: uri, Reason: "expected path " + resourcePath}
	}
	if escaped == "" || strings.Contains(escaped, "/") {
		return "", &InvalidResourceURIError{URI: uri, Reason: "expected a single identifier segment"}
	}

	identifier, err := url.PathUnescape(escaped)
	if err != nil {
		return "", &InvalidResourceURIError{URI: uri, Reason: err.Error()}
	}
	return identifier, nil
}
