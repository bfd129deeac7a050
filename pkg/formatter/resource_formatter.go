// File: pkg/formatter/resource_formatter.go
package formatter

import (
	"strconv"
	"time"

	"strata/pkg/resource"

	"github.com/charmbracelet/bubbles/progress"
)

const usageBarWidth = 20

type ResourceFormatter struct {
	bar progress.Model
}

func NewResourceFormatter() *ResourceFormatter {
	return &ResourceFormatter{
		bar: progress.New(
			progress.WithWidth(usageBarWidth),
			progress.WithoutPercentage(),
			progress.WithDefaultGradient(),
		),
	}
}

func (f *ResourceFormatter) FormatProjectList(projects []resource.Project) string {
	table := NewTable([]string{"PROJECT ID", "NAME"})
	for _, p := range projects {
		table.AddRow([]string{p.ID, p.Name})
	}
	return table.String()
}

func (f *ResourceFormatter) FormatBucketList(buckets []resource.Bucket) string {
	table := NewTable([]string{"BUCKET ID", "NAME", "USAGE (MB)", "USED", ""})
	for _, b := range buckets {
		usage, pct, bar := "N/A", "N/A", ""
		if mb, ok := usageMB(b); ok {
			p := resource.UsagePercent(mb)
			usage = b.TotalSizeMB
			pct = resource.FormatPercent(p) + "%"
			bar = f.UsageBar(p)
		}
		table.AddRow([]string{b.ID, b.Name, usage, pct, bar})
	}
	return table.String()
}

func (f *ResourceFormatter) FormatBucketDetails(bucket resource.Bucket) string {
	var result string

	result += FormatHeaderSection("Bucket: " + bucket.Name)
	result += "\n\n"
	result += FormatSectionTitle("Overview")
	result += "\n"

	overview := NewTable([]string{"Parameter", "Value"})
	overview.AddRow([]string{"ID", bucket.ID})
	overview.AddRow([]string{"Project", bucket.ProjectID})

	if mb, ok := usageMB(bucket); ok {
		p := resource.UsagePercent(mb)
		overview.AddRow([]string{"Usage", bucket.TotalSizeMB + " MB of " + strconv.Itoa(resource.BucketCapacityMB) + " MB"})
		overview.AddRow([]string{"Used", resource.FormatPercent(p) + "% " + f.UsageBar(p)})
	} else {
		overview.AddRow([]string{"Usage", "N/A"})
	}

	result += overview.String()
	result += "\n"
	return result
}

func (f *ResourceFormatter) FormatFileList(files []resource.File) string {
	table := NewTable([]string{"FILE ID", "NAME", "TYPE", "SIZE", "UPLOADED"})
	for _, file := range files {
		uploaded := ""
		if !file.UploadedAt.IsZero() {
			uploaded = file.UploadedAt.Local().Format(time.DateTime)
		}
		table.AddRow([]string{file.ID, file.Name, file.Type, FormatBytes(file.Size), uploaded})
	}
	return table.String()
}

// UsageBar draws pct (0-100) against the bucket capacity
func (f *ResourceFormatter) UsageBar(pct float64) string {
	return f.bar.ViewAs(pct / 100)
}

func usageMB(b resource.Bucket) (float64, bool) {
	if !b.HasUsage() {
		return 0, false
	}
	mb, err := strconv.ParseFloat(b.TotalSizeMB, 64)
	if err != nil {
		return 0, false
	}
	return mb, true
}
