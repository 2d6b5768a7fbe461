package signal

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"
)

// ActivityResult is the activity collector's facet of the snapshot.
type ActivityResult struct {
	Contributors int
}

// CollectActivity queries git history for the distinct-author count under a
// bounded timeout. Activity is an enrichment signal: a missing git binary, a
// non-repository root, a timeout, or any other failure degrades to zero
// contributors and the analysis proceeds.
func CollectActivity(ctx context.Context, root string, timeout time.Duration) ActivityResult {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "log", "--format=%ae")
	cmd.Dir = root

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return ActivityResult{}
	}

	authors := make(map[string]bool)
	for _, line := range strings.Split(stdout.String(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			authors[line] = true
		}
	}
	return ActivityResult{Contributors: len(authors)}
}
