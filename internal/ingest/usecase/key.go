package usecase

import (
	"fmt"
	"strings"
	"time"
)

// UploadKey builds the date-partitioned object key
//
//	<prefix>/<dataset>/year=YYYY/month=MM/day=DD/<fileName>
//
// from the UTC calendar date of now. An empty prefix drops the first segment.
func UploadKey(prefix, dataset, fileName string, now time.Time) string {
	d := now.UTC()
	key := fmt.Sprintf("%s/year=%04d/month=%02d/day=%02d/%s", dataset, d.Year(), int(d.Month()), d.Day(), fileName)

	if p := strings.Trim(prefix, "/"); p != "" {
		return p + "/" + key
	}
	return key
}
