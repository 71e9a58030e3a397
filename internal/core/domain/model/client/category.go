package client

import (
	"fmt"
	"strings"

	"postal/internal/pkg/errs"
)

// Category distinguishes private persons from organizations.
type Category int

const (
	CategoryUnknown Category = iota
	Individual
	Organization
)

func getCategoryStrings() map[Category]string {
	return map[Category]string{
		CategoryUnknown: "Unknown",
		Individual:      "Individual",
		Organization:    "Organization",
	}
}

// ParseCategory converts a persisted or user-supplied name into a Category.
func ParseCategory(s string) (Category, error) {
	for c, name := range getCategoryStrings() {
		if c != CategoryUnknown && strings.EqualFold(name, s) {
			return c, nil
		}
	}
	return CategoryUnknown, errs.NewValueIsInvalidErrorWithCause("category is invalid", fmt.Errorf("%q is not a client category", s))
}

func (c Category) Validate() error {
	if c != Individual && c != Organization {
		return errs.NewValueIsInvalidErrorWithCause("category is invalid", fmt.Errorf("%d is not a valid category", c))
	}
	return nil
}

func (c Category) String() string {
	if s, ok := getCategoryStrings()[c]; ok {
		return s
	}
	return "Unknown"
}
