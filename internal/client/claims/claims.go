// Package claims reads the payload of a bearer token without verifying it.
// The result is a hint for display and role guessing only; the backend
// remains the authority on every permission.
package claims

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Claims struct {
	Subject    string
	Email      string
	Name       string
	GivenName  string
	FamilyName string
	Roles      []string
	Raw        map[string]any
}

// HasRole reports whether any role contains fragment, case-insensitively.
// "ROLE_ADMIN" has role "admin".
func (c *Claims) HasRole(fragment string) bool {
	if c == nil || fragment == "" {
		return false
	}
	f := strings.ToUpper(fragment)
	for _, r := range c.Roles {
		if strings.Contains(strings.ToUpper(r), f) {
			return true
		}
	}
	return false
}

// Decode extracts the claims of token. It never validates the signature or
// the expiry, and never panics: malformed input yields (nil, false).
func Decode(token string) (*Claims, bool) {
	raw, ok := parseUnverified(token)
	if !ok {
		raw, ok = parseLenient(token)
	}
	if !ok {
		return nil, false
	}
	return fromMap(raw), true
}

func parseUnverified(token string) (raw map[string]any, ok bool) {
	defer func() {
		if recover() != nil {
			raw, ok = nil, false
		}
	}()
	mc := jwt.MapClaims{}
	// a null or {} payload parses cleanly but carries nothing
	if _, _, err := jwt.NewParser().ParseUnverified(token, mc); err != nil || len(mc) == 0 {
		return nil, false
	}
	return mc, true
}

// parseLenient accepts any token with a middle segment in either base64
// alphabet, padded or not.
func parseLenient(token string) (map[string]any, bool) {
	parts := strings.Split(strings.TrimSpace(token), ".")
	if len(parts) < 2 || parts[1] == "" {
		return nil, false
	}
	seg := strings.TrimRight(parts[1], "=")
	seg = strings.NewReplacer("+", "-", "/", "_").Replace(seg)

	b, err := base64.RawURLEncoding.DecodeString(seg)
	if err != nil {
		return nil, false
	}
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil || len(raw) == 0 {
		return nil, false
	}
	return raw, true
}

func fromMap(raw map[string]any) *Claims {
	c := &Claims{
		Subject:    str(raw["sub"]),
		Email:      str(raw["email"]),
		Name:       str(raw["name"]),
		GivenName:  str(raw["given_name"]),
		FamilyName: str(raw["family_name"]),
		Raw:        raw,
	}
	if c.GivenName == "" {
		c.GivenName = str(raw["firstName"])
	}
	if c.FamilyName == "" {
		c.FamilyName = str(raw["lastName"])
	}
	for _, key := range []string{"roles", "authorities", "role"} {
		c.Roles = append(c.Roles, list(raw[key])...)
	}
	return c
}

func str(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// list accepts a string (comma or space separated), a list of strings or a
// list of {"authority": "..."} objects.
func list(v any) []string {
	switch t := v.(type) {
	case string:
		return strings.FieldsFunc(t, func(r rune) bool { return r == ',' || r == ' ' })
	case []any:
		var out []string
		for _, it := range t {
			switch x := it.(type) {
			case string:
				out = append(out, x)
			case map[string]any:
				if a := str(x["authority"]); a != "" {
					out = append(out, a)
				}
			}
		}
		return out
	}
	return nil
}

// DisplayName picks the name to greet the user with: name claim, else given
// and family name, else the title-cased local part of email, else "User".
func DisplayName(c *Claims, email string) string {
	if c != nil {
		if c.Name != "" {
			return c.Name
		}
		if n := strings.TrimSpace(c.GivenName + " " + c.FamilyName); n != "" {
			return n
		}
		if email == "" {
			email = c.Email
		}
	}
	local, _, _ := strings.Cut(strings.TrimSpace(email), "@")
	local = strings.TrimSpace(strings.NewReplacer(".", " ", "_", " ", "-", " ").Replace(local))
	if local == "" {
		return "User"
	}
	return cases.Title(language.Und).String(local)
}
