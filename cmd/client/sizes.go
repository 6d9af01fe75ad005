package main

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// sizeList is a flag value holding positive numbers separated by commas.
type sizeList []int

func (s *sizeList) String() string {
	parts := make([]string, 0, len(*s))
	for _, n := range *s {
		parts = append(parts, strconv.Itoa(n))
	}
	return strings.Join(parts, ",")
}

func (s *sizeList) Set(value string) error {
	var sizes []int
	for _, part := range strings.Split(value, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return errors.Wrapf(err, "invalid size %q", part)
		}
		if n < 1 {
			return errors.Errorf("size must be positive, got %d", n)
		}
		sizes = append(sizes, n)
	}
	*s = sizes
	return nil
}
