package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid reports whether the address's domain resolves to a mail
// host. Only DNS is consulted, never the mailbox itself.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	// Some small providers have no MX record and receive on the A record.
	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}

// IsOptionalEmailDomainValid treats an empty address as valid. Venue contact
// emails are optional; account emails are not.
func IsOptionalEmailDomainValid(email string) bool {
	return email == "" || IsEmailDomainValid(email)
}
