package auth

import (
	"encoding/base64"
	"strings"
	"unicode/utf8"
)

const basicPrefix = "Basic "

// ExtractToken returns the base64 part of a Basic Authorization header.
// The scheme must be spelled exactly "Basic " with a single space.
func ExtractToken(header string) (string, error) {
	if !strings.HasPrefix(header, basicPrefix) {
		return "", ErrInvalidHeader
	}
	return header[len(basicPrefix):], nil
}

// DecodeToken decodes a Basic token into its "identifier:secret" text.
// Embedded line breaks, non-canonical padding and non UTF-8 payloads are
// rejected.
func DecodeToken(token string) (string, error) {
	// The decoder skips CR and LF on its own.
	if strings.ContainsAny(token, "\r\n") {
		return "", ErrDecode
	}
	decoded, err := base64.StdEncoding.Strict().DecodeString(token)
	if err != nil {
		return "", ErrDecode
	}
	if !utf8.Valid(decoded) {
		return "", ErrDecode
	}
	return string(decoded), nil
}

// SplitCredentials splits decoded credentials on the first colon. The
// secret keeps any further colons.
func SplitCredentials(decoded string) (identifier, secret string, err error) {
	identifier, secret, found := strings.Cut(decoded, ":")
	if !found {
		return "", "", ErrMalformedCredentials
	}
	return identifier, secret, nil
}

// ParseBasicAuth runs ExtractToken, DecodeToken and SplitCredentials in order.
func ParseBasicAuth(header string) (identifier, secret string, err error) {
	token, err := ExtractToken(header)
	if err != nil {
		return "", "", err
	}
	decoded, err := DecodeToken(token)
	if err != nil {
		return "", "", err
	}
	return SplitCredentials(decoded)
}
