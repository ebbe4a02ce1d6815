package storage

import (
	"encoding/base64"
	"errors"
	"strings"
)

var (
	ErrNotDataURI    = errors.New("the submitted data was not a file")
	ErrInvalidBase64 = errors.New("image payload is not valid base64")
)

// Upload is a file received from a client, before validation
type Upload struct {
	Name string
	Data []byte
}

// DecodeDataURI decodes data:image/<ext>;base64,<payload> into an upload named temp.<ext>
func DecodeDataURI(value string) (*Upload, error) {
	if !strings.HasPrefix(value, "data:image") {
		return nil, ErrNotDataURI
	}

	header, payload, found := strings.Cut(value, ";base64,")
	if !found {
		return nil, ErrNotDataURI
	}

	ext := header[strings.LastIndex(header, "/")+1:]
	if ext == "" || ext == header {
		return nil, ErrNotDataURI
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return nil, ErrInvalidBase64
	}

	return &Upload{Name: "temp." + ext, Data: data}, nil
}
