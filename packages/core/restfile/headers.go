package restfile

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/abdul-hamid-achik/restfile/packages/core/template"
)

const authorizationHeader = "Authorization"

type AuthScheme int

const (
	AuthBearer AuthScheme = iota
	AuthBasic
)

func (s AuthScheme) String() string {
	if s == AuthBasic {
		return "basic"
	}
	return "bearer"
}

// Authorization is a decoded Authorization header: either a bearer token or
// basic credentials. A nil Password distinguishes "no password" from an
// empty one.
type Authorization struct {
	Scheme   AuthScheme
	Token    string
	Username string
	Password *string
}

// decodeHeaders turns the validated raw headers into template values. An
// Authorization header that decodes cleanly is consumed; one that does not
// stays in the header map untouched. Duplicate names keep their first
// position, last value wins.
func decodeHeaders(raw []rawHeader) (*template.Map, *Authorization) {
	headers := template.NewMap()
	var authorization *Authorization

	for _, h := range raw {
		if strings.EqualFold(h.name, authorizationHeader) {
			if auth, err := parseAuthorization(h.value); err == nil {
				authorization = auth
				continue
			}
		}
		headers.Set(h.name, template.New(h.value))
	}
	return headers, authorization
}

// parseAuthorization decodes a Bearer or Basic header value. Basic
// credentials are standard padded base64; a colon splits username from
// password, and a value without a colon is a bare username.
func parseAuthorization(value string) (*Authorization, error) {
	if token, ok := strings.CutPrefix(value, "Bearer "); ok {
		return &Authorization{Scheme: AuthBearer, Token: token}, nil
	}

	encoded, ok := strings.CutPrefix(value, "Basic ")
	if !ok {
		return nil, fmt.Errorf("unsupported authorization scheme in %q", value)
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decoding basic credentials: %w", err)
	}
	if !utf8.Valid(decoded) {
		return nil, errors.New("basic credentials are not valid text")
	}

	creds := string(decoded)
	if username, password, found := strings.Cut(creds, ":"); found {
		return &Authorization{Scheme: AuthBasic, Username: username, Password: &password}, nil
	}
	return &Authorization{Scheme: AuthBasic, Username: creds}, nil
}
