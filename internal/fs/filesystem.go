// Package fs reads files picked on the command line and writes downloads
// back to disk.
package fs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"study-go/internal/study"
)

// DefaultMaxSize caps a single picked file. Payloads are kept in the store
// as data URLs, so very large files are refused.
const DefaultMaxSize = 25 << 20

// Picker turns local paths into uploads.
type Picker struct {
	maxSize int64
}

// NewPicker creates a Picker refusing files larger than maxSize bytes.
// A non-positive maxSize means DefaultMaxSize.
func NewPicker(maxSize int64) *Picker {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Picker{maxSize: maxSize}
}

// Resolve makes rawPath absolute and checks that it names a regular file.
func (p *Picker) Resolve(rawPath string) (string, os.FileInfo, error) {
	absPath, err := filepath.Abs(rawPath)
	if err != nil {
		return "", nil, fmt.Errorf("resolving absolute path: %w", err)
	}

	info, err := os.Lstat(absPath)
	if err != nil {
		return "", nil, fmt.Errorf("stat path: %w", err)
	}

	mode := info.Mode()
	switch {
	case mode.IsDir():
		return "", nil, fmt.Errorf("directories cannot be uploaded: %s", absPath)
	case mode&os.ModeSymlink != 0:
		return "", nil, fmt.Errorf("symlinks not supported: %s", absPath)
	case mode&os.ModeDevice != 0:
		return "", nil, fmt.Errorf("device files not supported: %s", absPath)
	case mode&os.ModeNamedPipe != 0:
		return "", nil, fmt.Errorf("named pipes not supported: %s", absPath)
	case mode&os.ModeSocket != 0:
		return "", nil, fmt.Errorf("sockets not supported: %s", absPath)
	}
	if info.Size() > p.maxSize {
		return "", nil, fmt.Errorf("%s is %s, larger than the %s limit",
			absPath, study.FormatFileSize(info.Size()), study.FormatFileSize(p.maxSize))
	}

	return absPath, info, nil
}

// Read returns the contents of a picked file.
func (p *Picker) Read(rawPath string) ([]byte, error) {
	path, _, err := p.Resolve(rawPath)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	// The size was checked at Resolve; reading one byte past it catches
	// files that grew since.
	data, err := io.ReadAll(io.LimitReader(f, p.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if int64(len(data)) > p.maxSize {
		return nil, fmt.Errorf("%s grew past the size limit while reading", path)
	}
	return data, nil
}

// Pick reads rawPath into an upload destined for folderID. The media type
// is left empty so it is detected from the content.
func (p *Picker) Pick(rawPath, folderID string) (study.FileUpload, error) {
	path, info, err := p.Resolve(rawPath)
	if err != nil {
		return study.FileUpload{}, err
	}
	data, err := p.Read(path)
	if err != nil {
		return study.FileUpload{}, err
	}
	return study.FileUpload{
		Name:         filepath.Base(path),
		LastModified: info.ModTime(),
		FolderID:     folderID,
		Payload:      data,
	}, nil
}

// ReadAll reads every path in order.
func (p *Picker) ReadAll(rawPaths []string) ([][]byte, error) {
	out := make([][]byte, 0, len(rawPaths))
	for _, raw := range rawPaths {
		data, err := p.Read(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, data)
	}
	return out, nil
}

// ErrExists is returned by Save when the destination exists and overwrite
// was not requested.
var ErrExists = errors.New("destination already exists")

// Save writes data to path. An existing file is replaced only when
// overwrite is set.
func Save(path string, data []byte, overwrite bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s", ErrExists, path)
		}
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
