package update

import (
	"context"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const releasesURL = "https://api.github.com/repos/matheuskafuri/hotwatch/releases/latest"

// Result holds the outcome of a version check.
type Result struct {
	LatestVersion string
}

type ghRelease struct {
	TagName string `json:"tag_name"`
}

// Check queries the GitHub Releases API to see if a newer version is available.
// Returns nil on any error (non-fatal).
func Check(ctx context.Context, currentVersion string) *Result {
	return check(ctx, releasesURL, currentVersion)
}

func check(ctx context.Context, url, currentVersion string) *Result {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var release ghRelease
	resp, err := resty.New().R().
		SetContext(ctx).
		SetHeader("Accept", "application/vnd.github+json").
		SetResult(&release).
		Get(url)
	if err != nil || !resp.IsSuccess() {
		return nil
	}

	latest := strings.TrimPrefix(release.TagName, "v")
	current := strings.TrimPrefix(currentVersion, "v")

	if latest == "" || latest == current {
		return nil
	}

	return &Result{LatestVersion: latest}
}
