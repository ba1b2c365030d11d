// Package docker lists and removes local images through the Docker Engine API.
package docker

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"

	"github.com/woozymasta/kits"
)

const none = "<none>"

// Client wraps the Docker API client.
type Client struct {
	client *client.Client

	mu sync.Mutex
	// untagged maps "<none>" references seen by the last List to image IDs,
	// since the daemon cannot resolve them by name.
	untagged map[string][]string
}

// NewClient creates a client from the environment (DOCKER_HOST, DOCKER_API_VERSION, ...).
func NewClient() (*Client, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client: %w", err)
	}

	return &Client{client: cli}, nil
}

// NewClientWithAPI wraps an existing API client (for testing).
func NewClientWithAPI(cli *client.Client) *Client {
	return &Client{client: cli}
}

// Close releases the underlying transport.
func (c *Client) Close() error {
	return c.client.Close()
}

// List returns one row per image tag, ordered from the newest to the oldest
// image, like `docker images --format '{{.Repository}} {{.Tag}}'`.
// Dangling images are listed as "<none>:<none>", digest-only images as "name:<none>".
func (c *Client) List(ctx context.Context) ([]kits.Tag, error) {
	images, err := c.client.ImageList(ctx, image.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}

	sort.SliceStable(images, func(i, j int) bool {
		return images[i].Created > images[j].Created
	})

	untagged := make(map[string][]string)
	rows := make([]kits.Tag, 0, len(images))
	for _, img := range images {
		for _, t := range summaryRows(img) {
			if t.Tag == none {
				untagged[t.Ref()] = append(untagged[t.Ref()], img.ID)
			}
			rows = append(rows, t)
		}
	}

	c.mu.Lock()
	c.untagged = untagged
	c.mu.Unlock()

	return rows, nil
}

// Remove removes a single image reference and returns the daemon report as
// "Untagged: <ref>" / "Deleted: <id>" lines.
// A "<none>" reference removes every image it stood for in the last List,
// which runs on demand when the rows did not come from this client.
// A "<none>" reference with no matching image is a no-op.
func (c *Client) Remove(ctx context.Context, ref string, force bool) ([]string, error) {
	if !strings.HasSuffix(ref, ":"+none) {
		return c.remove(ctx, ref, force)
	}

	ids, err := c.untaggedIDs(ctx, ref)
	if err != nil {
		return nil, err
	}

	var (
		out  []string
		errs []error
	)
	for _, id := range ids {
		lines, err := c.remove(ctx, id, force)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, lines...)
	}

	return out, errors.Join(errs...)
}

// untaggedIDs returns the image IDs behind a "<none>" reference.
func (c *Client) untaggedIDs(ctx context.Context, ref string) ([]string, error) {
	c.mu.Lock()
	listed := c.untagged != nil
	ids := c.untagged[ref]
	c.mu.Unlock()

	if listed {
		return ids, nil
	}

	if _, err := c.List(ctx); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.untagged[ref], nil
}

func (c *Client) remove(ctx context.Context, ref string, force bool) ([]string, error) {
	resp, err := c.client.ImageRemove(ctx, ref, image.RemoveOptions{Force: force})
	if err != nil {
		return nil, fmt.Errorf("failed to remove image %s: %w", ref, err)
	}

	out := make([]string, 0, len(resp))
	for _, r := range resp {
		if r.Untagged != "" {
			out = append(out, "Untagged: "+r.Untagged)
		}
		if r.Deleted != "" {
			out = append(out, "Deleted: "+r.Deleted)
		}
	}

	return out, nil
}

// summaryRows maps an image summary to listing rows.
func summaryRows(img image.Summary) []kits.Tag {
	var rows []kits.Tag
	for _, ref := range img.RepoTags {
		if ref == "" || ref == none+":"+none {
			continue
		}

		if t, ok := kits.ParseRow(ref); ok {
			rows = append(rows, t)
		}
	}

	if len(rows) > 0 {
		return rows
	}

	for _, d := range img.RepoDigests {
		if name, _, ok := strings.Cut(d, "@"); ok && name != "" && name != none {
			return []kits.Tag{{Name: name, Tag: none}}
		}
	}

	return []kits.Tag{{Name: none, Tag: none}}
}
