package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid checks that the address's domain actually receives
// mail: an MX record, or failing that a resolvable host. Registration
// and staff-account creation both gate on it.
func IsEmailDomainValid(email string) bool {
	domain, ok := splitDomain(email)
	if !ok {
		return false
	}

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}
	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}

func splitDomain(email string) (string, bool) {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "", false
	}
	return email[at+1:], true
}
