// Package legal holds the domain vocabulary of the Nepali legal corpus:
// document types and their authority ranking, the part/chapter/section
// hierarchy of a passage, and the reference and citation patterns used to
// match queries and answers against that hierarchy.
package legal

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DocType is the authority class of a legal text.
type DocType string

const (
	DocTypeConstitution DocType = "constitution"
	DocTypeMulukiAct    DocType = "muluki_act"
	DocTypeAct          DocType = "act"
	DocTypeRule         DocType = "rule"
)

// OrderedTiers lists the substantive tiers in precedence order.
// The rule tier is searched separately and is not part of this list.
var OrderedTiers = []DocType{DocTypeConstitution, DocTypeMulukiAct, DocTypeAct}

// AllDocTypes lists every doc type from strongest to weakest authority.
var AllDocTypes = []DocType{DocTypeConstitution, DocTypeMulukiAct, DocTypeAct, DocTypeRule}

// Priority returns the authority rank of the doc type: 1 is strongest.
// Unknown types rank with rules.
func (d DocType) Priority() int {
	switch d {
	case DocTypeConstitution:
		return 1
	case DocTypeMulukiAct:
		return 2
	case DocTypeAct:
		return 3
	default:
		return 4
	}
}

// Valid reports whether d is one of the known doc types.
func (d DocType) Valid() bool {
	switch d {
	case DocTypeConstitution, DocTypeMulukiAct, DocTypeAct, DocTypeRule:
		return true
	}
	return false
}

func (d DocType) String() string {
	return string(d)
}

// ParseDocType validates a doc type string.
func ParseDocType(s string) (DocType, error) {
	d := DocType(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("unknown doc type %q", s)
	}
	return d, nil
}

// DetectDocType infers the doc type of a corpus file from its path.
// Folder and file names in the corpus carry the law's name, so the
// check runs on the whole relative path.
func DetectDocType(path string) DocType {
	p := strings.ToLower(filepath.ToSlash(path))
	switch {
	case strings.Contains(p, "संविधान") || strings.Contains(p, "constitution") || strings.Contains(p, "sambidhan"):
		return DocTypeConstitution
	case strings.Contains(p, "मुलुकी") || strings.Contains(p, "muluki"):
		return DocTypeMulukiAct
	case strings.Contains(p, "नियम") || strings.Contains(p, "विनियम") ||
		strings.Contains(p, "niyamawali") || strings.Contains(p, "rules") ||
		strings.Contains(p, "regulation"):
		return DocTypeRule
	default:
		return DocTypeAct
	}
}
