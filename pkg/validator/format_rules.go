package validator

import (
	"net/mail"
	"net/url"
	"strings"
)

// Email matches syntactically valid e-mail addresses (RFC 5322 address with
// a dotted domain, as typical web forms expect).
func Email() Predicate {
	return func(value string) bool {
		if strings.TrimSpace(value) == "" {
			return false
		}

		addr, err := mail.ParseAddress(value)
		if err != nil || addr.Address != value {
			return false
		}

		local, domain, ok := strings.Cut(addr.Address, "@")
		if !ok || local == "" {
			return false
		}

		if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
			return false
		}
		for part := range strings.SplitSeq(domain, ".") {
			if part == "" {
				return false
			}
		}

		return true
	}
}

// URL matches absolute URLs with a scheme and a host.
func URL() Predicate {
	return func(value string) bool {
		if strings.TrimSpace(value) == "" {
			return false
		}
		u, err := url.ParseRequestURI(value)
		if err != nil {
			return false
		}
		return u.Scheme != "" && u.Host != ""
	}
}
