package match

import (
	"regexp"
	"strings"

	"slatelink/internal/textutil"
)

// Identity holds the structured tokens extracted from an image filename.
// Full is always set; the rest depend on which naming pattern matched.
type Identity struct {
	Full       string
	Slate      string
	Take       string
	Scene      string
	Production string
	Number     string
	// Pattern names the rule that matched, "" when only the fallback ran.
	Pattern string
}

// identityPattern pairs an anchored expression with the roles of its capture
// groups. Patterns are tried in order; the first match wins.
type identityPattern struct {
	name  string
	expr  *regexp.Regexp
	roles []string
}

var identityPatterns = []identityPattern{
	{
		name:  "slate-take-production",
		expr:  regexp.MustCompile(`^(?i:slate)(\d+)[-_](?i:take)(\d+)[-_](.+)`),
		roles: []string{"slate", "take", "production"},
	},
	{
		name:  "scene-take-production",
		expr:  regexp.MustCompile(`^(?i:scene)(\d+)[-_](?i:take)(\d+)[-_](.+)`),
		roles: []string{"scene", "take", "production"},
	},
	{
		name:  "production-slate-take",
		expr:  regexp.MustCompile(`^(.+?)[-_](?i:slate)(\d+)[-_](?i:take)(\d+)`),
		roles: []string{"production", "slate", "take"},
	},
	{
		name:  "production-number",
		expr:  regexp.MustCompile(`^(.+?)[-_](\d+)`),
		roles: []string{"production", "number"},
	},
}

var delimiterSplit = regexp.MustCompile(`[-_]`)

// ExtractIdentity pulls production-related tokens from a filename. At most
// one pattern applies; when none does, the last non-numeric delimited
// segment becomes the production, and failing that the full stem does.
func ExtractIdentity(filename string) Identity {
	stem := textutil.Stem(filename)
	identity := Identity{Full: stem}

	for _, pattern := range identityPatterns {
		groups := pattern.expr.FindStringSubmatch(stem)
		if groups == nil {
			continue
		}
		identity.Pattern = pattern.name
		for i, role := range pattern.roles {
			if i+1 >= len(groups) {
				break
			}
			identity.setRole(role, groups[i+1])
		}
		break
	}

	if identity.Production == "" {
		parts := delimiterSplit.Split(stem, -1)
		for i := len(parts) - 1; i >= 0; i-- {
			if parts[i] != "" && !isNumeric(parts[i]) {
				identity.Production = parts[i]
				break
			}
		}
	}
	if identity.Production == "" {
		identity.Production = stem
	}

	return identity
}

func (id *Identity) setRole(role, value string) {
	switch role {
	case "slate":
		id.Slate = value
	case "take":
		id.Take = value
	case "scene":
		id.Scene = value
	case "production":
		id.Production = value
	case "number":
		id.Number = value
	}
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// String renders the identity for status display.
func (id Identity) String() string {
	var parts []string
	if id.Production != "" {
		parts = append(parts, "production="+id.Production)
	}
	if id.Slate != "" {
		parts = append(parts, "slate="+id.Slate)
	}
	if id.Scene != "" {
		parts = append(parts, "scene="+id.Scene)
	}
	if id.Take != "" {
		parts = append(parts, "take="+id.Take)
	}
	if id.Number != "" {
		parts = append(parts, "number="+id.Number)
	}
	if len(parts) == 0 {
		return id.Full
	}
	return strings.Join(parts, " ")
}
