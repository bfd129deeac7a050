// File: pkg/common/kind.go
package common

// Kind names a level of the resource hierarchy
type Kind string

const (
	Project Kind = "project"
	Bucket  Kind = "bucket"
	File    Kind = "file"
)

// Plural returns the kind's plural form for user-facing messages
func (k Kind) Plural(n int) string {
	if n == 1 {
		return string(k)
	}
	return string(k) + "s"
}
