package artifact

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"
)

// DedupeByContent drops paths whose file content is identical to an earlier
// path in the list. Order is preserved and the first path of each group of
// identical files wins.
func (s *Scanner) DedupeByContent(ctx context.Context, paths []string) ([]string, error) {
	digests := make([][sha256.Size]byte, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrency)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			sum, err := hashFile(path)
			if err != nil {
				return err
			}
			digests[i] = sum

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[[sha256.Size]byte]bool, len(paths))
	unique := make([]string, 0, len(paths))
	for i, path := range paths {
		if seen[digests[i]] {
			continue
		}
		seen[digests[i]] = true
		unique = append(unique, path)
	}

	return unique, nil
}

func hashFile(path string) ([sha256.Size]byte, error) {
	var sum [sha256.Size]byte

	f, err := os.Open(path)
	if err != nil {
		return sum, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return sum, fmt.Errorf("hashing %s: %w", path, err)
	}

	copy(sum[:], h.Sum(nil))
	return sum, nil
}
