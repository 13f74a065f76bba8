package storage

import (
	"bytes"
	"io"
	"strings"
)

func containsDotDot(key string) bool {
	for _, part := range strings.Split(key, "/") {
		if part == ".." {
			return true
		}
	}
	return false
}

func bytesReader(b []byte) io.ReadSeeker {
	return bytes.NewReader(b)
}
