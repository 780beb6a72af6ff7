// Package validator decides whether an uploaded file is accepted for
// conversion. Rules only inspect the declared upload; none of them performs
// extraction.
package validator

import "slidetext/internal/domain"

// Rule is a single acceptance check. Check returns the rejection reasons the
// upload violates, or nil when the rule passes.
type Rule interface {
	Key() string
	Name() string
	Check(upload *domain.Upload) []string
}
