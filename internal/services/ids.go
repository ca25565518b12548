package services

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const movieIDPrefix = "m"

// newMovieID returns a prefixed NanoID, e.g. "m-V1StGXR8_Z5jdHi6B-myT".
func newMovieID() (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return movieIDPrefix + "-" + id, nil
}
