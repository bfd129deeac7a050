// File: internal/service/cascade.go
package service

import "strata/pkg/resource"

// LinkCascade keeps the shared collections consistent across deletes:
// a deleted project evicts its buckets and a deleted bucket evicts its file listing.
func LinkCascade(projects *ProjectService, buckets *BucketService, files *FileService) {
	projects.OnDeleted(buckets.EvictProject)
	buckets.OnDeleted(func(b resource.Bucket) {
		files.EvictAccessKey(b.AccessKey)
	})
}
