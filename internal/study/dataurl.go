package study

import (
	"encoding/base64"
	"errors"
	"strings"
)

var errMalformedDataURL = errors.New("malformed data URL")

// EncodeDataURL renders payload as a base64 data URL.
func EncodeDataURL(mediaType string, payload []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(payload)
}

// DecodeDataURL returns the media type and payload of a base64 data URL.
func DecodeDataURL(s string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, errMalformedDataURL
	}
	header, data, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, errMalformedDataURL
	}
	mediaType, ok := strings.CutSuffix(header, ";base64")
	if !ok {
		return "", nil, errMalformedDataURL
	}
	payload, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", nil, err
	}
	return mediaType, payload, nil
}
