package domain

import "strings"

// SchemeSpecificPart strips the URI scheme from a dial handle, returning the
// raw dialable address. "tel:911" and "sip:911@carrier" both yield an address
// starting with "911"; input without a scheme passes through unchanged.
func SchemeSpecificPart(uri string) string {
	if i := strings.Index(uri, ":"); i >= 0 {
		return uri[i+1:]
	}
	return uri
}
