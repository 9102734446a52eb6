package trust

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"log"
	"net"
	"strings"
	"time"

	whois "github.com/likexian/whois"
	parser "github.com/likexian/whois-parser"
)

//
// DOMAIN AGE (WHOIS)
//

// DomainAgeInfo is the collaborator result: the age signal plus the
// formatted creation date for display.
type DomainAgeInfo struct {
	Age       DomainAge `json:"age"`
	CreatedOn string    `json:"created_on"`
}

var whoisDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02-Jan-2006",
	"2006.01.02",
}

// WhoisDomainAge resolves the registration age of a domain. When the WHOIS
// record yields no parseable creation date the returned age has Known=false,
// which the engine treats as "no evidence" rather than "brand new".
func WhoisDomainAge(domain string) DomainAgeInfo {
	raw, err := whois.Whois(domain)
	if err != nil {
		log.Printf("[WHOIS] lookup failed for %s: %v", domain, err)
		return DomainAgeInfo{CreatedOn: "Unknown"}
	}

	p, err := parser.Parse(raw)
	if err != nil || p.Domain == nil {
		// For subdomains, try the parent domain (e.g. shop.example.com -> example.com)
		parts := strings.Split(domain, ".")
		if len(parts) > 2 {
			return WhoisDomainAge(strings.Join(parts[1:], "."))
		}
		return DomainAgeInfo{CreatedOn: "Unknown"}
	}

	created, ok := parseWhoisDate(p.Domain.CreatedDate)
	if !ok {
		return DomainAgeInfo{CreatedOn: "Unknown"}
	}

	return DomainAgeInfo{
		Age: DomainAge{
			Days:  int(time.Since(created).Hours() / 24),
			Known: true,
		},
		CreatedOn: created.Format("Monday, 2 January 2006"),
	}
}

func parseWhoisDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, l := range whoisDateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

//
// TRANSPORT SECURITY (TLS)
//

// CheckTransport opens a verified TLS connection to the domain on :443 and
// classifies the outcome into the three transport states.
func CheckTransport(domain string) TransportStatus {
	d := &net.Dialer{Timeout: 5 * time.Second}
	conn, err := tls.DialWithDialer(d, "tcp", domain+":443", &tls.Config{ServerName: domain})
	if err != nil {
		return classifyTransportError(err)
	}
	defer conn.Close()

	if len(conn.ConnectionState().PeerCertificates) == 0 {
		return TransportStatus{State: TransportError, Message: "HTTPS Error: no peer certificate"}
	}
	return TransportStatus{State: TransportValid, Message: "Valid HTTPS Found"}
}

func classifyTransportError(err error) TransportStatus {
	var verifyErr *tls.CertificateVerificationError
	var invalidErr x509.CertificateInvalidError
	var hostErr x509.HostnameError
	var authErr x509.UnknownAuthorityError
	if errors.As(err, &verifyErr) || errors.As(err, &invalidErr) ||
		errors.As(err, &hostErr) || errors.As(err, &authErr) {
		return TransportStatus{State: TransportInvalid, Message: "Invalid or Expired Certificate"}
	}
	return TransportStatus{State: TransportError, Message: "HTTPS Error: " + err.Error()}
}
