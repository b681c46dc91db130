package xlsx

import (
	"bufio"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
	"github.com/xuri/excelize/v2"
)

// Open opens the xlsx file at path. Files ending in .gz, .bz2, .xz or .zst
// are decompressed first.
func Open(path string, opts ...Option) (*Workbook, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !isCompressed(ext) {
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, err
		}
		return NewWorkbook(f, opts...), nil
	}

	in, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()
	return openCompressed(bufio.NewReader(in), ext, opts...)
}

// OpenReader reads an xlsx workbook from r. The first bytes are sniffed for
// a compression magic number.
func OpenReader(r io.Reader, opts ...Option) (*Workbook, error) {
	br := bufio.NewReader(r)
	magic, _ := br.Peek(6)
	if ext := sniff(magic); ext != "" {
		return openCompressed(br, ext, opts...)
	}
	f, err := excelize.OpenReader(br)
	if err != nil {
		return nil, err
	}
	return NewWorkbook(f, opts...), nil
}

func isCompressed(ext string) bool {
	switch ext {
	case ".gz", ".bz2", ".xz", ".zst":
		return true
	}
	return false
}

func sniff(magic []byte) string {
	switch {
	case len(magic) >= 2 && magic[0] == 0x1f && magic[1] == 0x8b:
		return ".gz"
	case len(magic) >= 3 && string(magic[:3]) == "BZh":
		return ".bz2"
	case len(magic) >= 6 && string(magic[:6]) == "\xfd7zXZ\x00":
		return ".xz"
	case len(magic) >= 4 && string(magic[:4]) == "\x28\xb5\x2f\xfd":
		return ".zst"
	}
	return ""
}

func openCompressed(r io.Reader, ext string, opts ...Option) (*Workbook, error) {
	var dec io.Reader
	switch ext {
	case ".gz":
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer gz.Close()
		dec = gz
	case ".bz2":
		dec = bzip2.NewReader(r)
	case ".xz":
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("xz: %w", err)
		}
		dec = xr
	case ".zst":
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		defer zr.Close()
		dec = zr
	default:
		return nil, fmt.Errorf("unsupported compression %q", ext)
	}

	f, err := excelize.OpenReader(dec)
	if err != nil {
		return nil, err
	}
	return NewWorkbook(f, opts...), nil
}
