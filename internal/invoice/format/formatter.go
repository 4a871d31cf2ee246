// Package format builds human-readable invoice numbers.
package format

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var seqPadRe = regexp.MustCompile(`\{SEQ(\d+)\}`)

// DefaultNumberTemplate yields numbers like INV-20260901-042.
const DefaultNumberTemplate = "INV-{YYYY}{MM}{DD}-{SEQ3}"

// Number formats an invoice number from a template, the invoice date and a
// per-user daily sequence. Pure and fully deterministic; no DB access.
func Number(template string, issuedAt time.Time, seq int64) (string, error) {
	if template == "" {
		return "", fmt.Errorf("invoice number template is empty")
	}
	if seq <= 0 {
		return "", fmt.Errorf("invalid invoice sequence: %d", seq)
	}

	out := template

	out = strings.ReplaceAll(out, "{YYYY}", issuedAt.Format("2006"))
	out = strings.ReplaceAll(out, "{YY}", issuedAt.Format("06"))
	out = strings.ReplaceAll(out, "{MM}", issuedAt.Format("01"))
	out = strings.ReplaceAll(out, "{DD}", issuedAt.Format("02"))

	out = strings.ReplaceAll(out, "{SEQ}", strconv.FormatInt(seq, 10))

	out = seqPadRe.ReplaceAllStringFunc(out, func(m string) string {
		match := seqPadRe.FindStringSubmatch(m)
		if len(match) != 2 {
			return m
		}
		width, err := strconv.Atoi(match[1])
		if err != nil || width <= 0 {
			return m
		}
		return fmt.Sprintf("%0*d", width, seq)
	})

	if strings.Contains(out, "{") || strings.Contains(out, "}") {
		return "", fmt.Errorf("unresolved token in invoice number template: %s", out)
	}

	return out, nil
}

// NumberPattern renders the template for issuedAt as a SQL LIKE pattern:
// date tokens resolve exactly as in Number and every sequence token becomes
// a "%" wildcard. Literal LIKE metacharacters in the template are escaped
// with a backslash, so the caller must bind the pattern with ESCAPE '\'.
func NumberPattern(template string, issuedAt time.Time) (string, error) {
	if template == "" {
		return "", fmt.Errorf("invoice number template is empty")
	}

	out := template
	out = strings.ReplaceAll(out, `\`, `\\`)
	out = strings.ReplaceAll(out, "%", `\%`)
	out = strings.ReplaceAll(out, "_", `\_`)

	out = strings.ReplaceAll(out, "{YYYY}", issuedAt.Format("2006"))
	out = strings.ReplaceAll(out, "{YY}", issuedAt.Format("06"))
	out = strings.ReplaceAll(out, "{MM}", issuedAt.Format("01"))
	out = strings.ReplaceAll(out, "{DD}", issuedAt.Format("02"))

	out = strings.ReplaceAll(out, "{SEQ}", "%")
	out = seqPadRe.ReplaceAllString(out, "%")

	if strings.Contains(out, "{") || strings.Contains(out, "}") {
		return "", fmt.Errorf("unresolved token in invoice number template: %s", out)
	}

	return out, nil
}
