package output

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/nibzard/next-action-go/internal/todotxt"
	"github.com/nibzard/next-action-go/internal/utils"
)

// Opener opens a single URL.
type Opener func(ctx context.Context, url string) error

// OpenURL opens url with the platform's default handler.
func OpenURL(ctx context.Context, url string) error {
	name, args := utils.OpenCommand(url)
	return exec.CommandContext(ctx, name, args...).Run()
}

// OpenURLs opens every URL of the given tasks in order and stops at the
// first failure.
func OpenURLs(ctx context.Context, tasks []*todotxt.Task, open Opener) error {
	if open == nil {
		open = OpenURL
	}
	for _, task := range tasks {
		for _, url := range task.URLs() {
			if err := open(ctx, url); err != nil {
				return fmt.Errorf("open %s: %w", url, err)
			}
		}
	}
	return nil
}
