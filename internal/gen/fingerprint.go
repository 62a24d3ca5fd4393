package gen

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/minio/highwayhash"
)

var fingerprintKey = []byte("modelgen-fingerprint-key-0123456")

// Fingerprint returns the 64-bit HighwayHash of data as 16 hex digits.
func Fingerprint(data []byte) (string, error) {
	hash, err := highwayhash.New64(fingerprintKey)
	if err != nil {
		return "", err
	}

	if _, err := hash.Write(data); err != nil {
		return "", err
	}

	return fmt.Sprintf("%016x", hash.Sum64()), nil
}

// header returns the leading comment block of a generated file.
func header(fingerprint string) []byte {
	return []byte(headerLine + "\n" + fingerprintPrefix + fingerprint + "\n\n")
}

// splitHeader separates the recorded fingerprint from the body of a
// generated file. ok is false when content lacks the generated header.
func splitHeader(content []byte) (fingerprint string, body []byte, ok bool) {
	rest, found := bytes.CutPrefix(content, []byte(headerLine+"\n"))
	if !found {
		return "", nil, false
	}

	line, rest, found := bytes.Cut(rest, []byte("\n"))
	if !found {
		return "", nil, false
	}

	fingerprint, found = strings.CutPrefix(string(line), fingerprintPrefix)
	if !found {
		return "", nil, false
	}

	return fingerprint, bytes.TrimPrefix(rest, []byte("\n")), true
}

// Verify reports whether content carries the generated header and its body
// still matches the recorded fingerprint.
func Verify(content []byte) (bool, error) {
	recorded, body, ok := splitHeader(content)
	if !ok {
		return false, nil
	}

	actual, err := Fingerprint(body)
	if err != nil {
		return false, err
	}

	return actual == recorded, nil
}
