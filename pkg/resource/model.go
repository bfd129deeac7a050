// File: pkg/resource/model.go
package resource

import (
	"fmt"
	"time"
)

// BytesPerMB is the divisor used to express byte counts as megabytes
const BytesPerMB = 1024 * 1024

// BucketCapacityMB is the presentation ceiling used for usage percentages. It is not enforced on uploads
const BucketCapacityMB = 2048

type Project struct {
	ID   string `json:"projectId" yaml:"projectId" validate:"required"`
	Name string `json:"projectName" yaml:"projectName"`
}

type Bucket struct {
	ID        string `json:"id" yaml:"id" validate:"required"`
	Name      string `json:"bucketName" yaml:"bucketName"`
	ProjectID string `json:"projectId" yaml:"projectId"`
	AccessKey string `json:"accessKey" yaml:"accessKey"`
	// Derived by the usage aggregator, empty until computed
	TotalSizeMB string `json:"totalSizeMB,omitempty" yaml:"totalSizeMB,omitempty"`
}

type File struct {
	ID         string    `json:"id" yaml:"id" validate:"required"`
	Name       string    `json:"fileName" yaml:"fileName"`
	Type       string    `json:"fileType" yaml:"fileType"`
	Size       int64     `json:"fileSize" yaml:"fileSize"`
	UploadedAt time.Time `json:"uploadedAt" yaml:"uploadedAt"`
}

func (p Project) Key() string { return p.ID }
func (b Bucket) Key() string  { return b.ID }
func (f File) Key() string    { return f.ID }

func (p Project) DisplayName() string { return p.Name }
func (b Bucket) DisplayName() string  { return b.Name }
func (f File) DisplayName() string    { return f.Name }

// HasUsage reports whether the aggregator attached a size to the bucket
func (b Bucket) HasUsage() bool {
	return b.TotalSizeMB != ""
}

// AccessKey addresses a bucket's files. The zero value is invalid and is refused by every file operation
type AccessKey struct {
	value string
}

// NewAccessKey wraps a server-issued key. It reports false for an empty key
func NewAccessKey(value string) (AccessKey, bool) {
	if value == "" {
		return AccessKey{}, false
	}
	return AccessKey{value: value}, true
}

func (k AccessKey) String() string { return k.value }

func (k AccessKey) IsZero() bool { return k.value == "" }

// FormatMB renders a byte count as megabytes with two decimals
func FormatMB(bytes int64) string {
	return fmt.Sprintf("%.2f", float64(bytes)/BytesPerMB)
}

// TotalSize sums the sizes of the given files in bytes
func TotalSize(files []File) int64 {
	var total int64
	for _, f := range files {
		total += f.Size
	}
	return total
}

// UsagePercent expresses a megabyte total against BucketCapacityMB
func UsagePercent(totalSizeMB float64) float64 {
	return totalSizeMB / BucketCapacityMB * 100
}

// FormatPercent renders a percentage with two decimals
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.2f", pct)
}
