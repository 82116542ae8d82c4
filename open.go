package heredity

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// ExpandHome replaces a leading "~/" with the current user's home directory.
func ExpandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	usr, err := user.Current()
	if err != nil {
		return "", pfx.Err(err)
	}
	return filepath.Join(usr.HomeDir, path[2:]), nil
}

// Open returns a reader over the file at path, which may be local (with "~/"
// expanded) or a "gs://bucket/object" URL. Files ending in .gz, .zst or .zstd
// are decompressed transparently. If client is nil and path is on Google
// Storage, a client is created from the ambient credentials and closed along
// with the returned reader.
func Open(ctx context.Context, path string, client *storage.Client) (io.ReadCloser, error) {
	raw, err := openRaw(ctx, path, client)
	if err != nil {
		return nil, pfx.Err(err)
	}

	switch comp := DetectCompression(path); comp {
	case CompressionGzip:
		gz, err := gzip.NewReader(raw)
		if err != nil {
			raw.Close()
			return nil, pfx.Err(err)
		}
		return &stackedReadCloser{Reader: gz, closers: []io.Closer{gz, raw}}, nil

	case CompressionZStandard:
		dec, err := zstd.NewReader(raw)
		if err != nil {
			raw.Close()
			return nil, pfx.Err(err)
		}
		zr := dec.IOReadCloser()
		return &stackedReadCloser{Reader: zr, closers: []io.Closer{zr, raw}}, nil
	}

	return raw, nil
}

func openRaw(ctx context.Context, path string, client *storage.Client) (io.ReadCloser, error) {
	if !strings.HasPrefix(path, "gs://") {
		expanded, err := ExpandHome(path)
		if err != nil {
			return nil, err
		}
		f, err := os.Open(expanded)
		if err != nil {
			return nil, err
		}
		return f, nil
	}

	bucket, object, err := splitGoogleStoragePath(path)
	if err != nil {
		return nil, err
	}

	var closers []io.Closer
	if client == nil {
		client, err = storage.NewClient(ctx)
		if err != nil {
			return nil, err
		}
		closers = append(closers, client)
	}

	r, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		for _, c := range closers {
			c.Close()
		}
		return nil, err
	}

	return &stackedReadCloser{Reader: r, closers: append([]io.Closer{r}, closers...)}, nil
}

func splitGoogleStoragePath(path string) (bucket, object string, err error) {
	trimmed := strings.TrimPrefix(path, "gs://")
	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%q is not of the form gs://bucket/object", path)
	}
	return parts[0], parts[1], nil
}

// stackedReadCloser closes each layer of a reader stack, outermost first.
type stackedReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedReadCloser) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// OpenPedigree reads and validates the pedigree file at path. See Open for
// the accepted locations and compressions.
func OpenPedigree(ctx context.Context, path string, client *storage.Client) (*Pedigree, error) {
	f, err := Open(ctx, path, client)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadPedigree(f)
}
