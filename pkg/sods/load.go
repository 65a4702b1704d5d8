package sods

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zip"
	"go.uber.org/zap"

	"github.com/hrk/sods/pkg/sods/models"
	"github.com/hrk/sods/pkg/sods/parser"
)

// MimeType is the content of the mimetype entry of every ODS file.
const MimeType = "application/vnd.oasis.opendocument.spreadsheet"

const mimeTypeEntry = "mimetype"

// LoadFile decodes the ODS file at path.
func LoadFile(path string, opts Options) (*models.Spreadsheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return ReadAt(f, info.Size(), opts)
}

// Load decodes an ODS file from r. The zip directory sits at the end of the
// archive, so r is read completely before decoding starts.
func Load(r io.Reader, opts Options) (*models.Spreadsheet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ReadAt(bytes.NewReader(data), int64(len(data)), opts)
}

// ReadAt decodes an ODS file of the given size.
func ReadAt(r io.ReaderAt, size int64, opts Options) (*models.Spreadsheet, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, NewDecodeError("", err)
	}

	d := &decoder{
		log:    opts.Log(),
		cfg:    opts.parserConfig(),
		styles: parser.NewStyleTable(opts.Log()),
		spread: models.NewSpreadsheet(),
	}
	return d.decode(zr)
}

type decoder struct {
	log    *zap.Logger
	cfg    parser.Config
	styles *parser.StyleTable
	spread *models.Spreadsheet
}

func (d *decoder) decode(zr *zip.Reader) (*models.Spreadsheet, error) {
	mimeTypeChecked := false
	for _, f := range zr.File {
		switch {
		case strings.HasSuffix(f.Name, ".xml"):
			if err := d.processContent(f); err != nil {
				return nil, NewDecodeError(f.Name, err)
			}
		case f.Name == mimeTypeEntry:
			if err := checkMimeType(f); err != nil {
				return nil, NewDecodeError(f.Name, err)
			}
			mimeTypeChecked = true
		}
	}
	d.spread.TrimSheets()

	if !mimeTypeChecked {
		return nil, NewDecodeError("", errors.New("no mimetype entry"))
	}
	return d.spread, nil
}

func checkMimeType(f *zip.File) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	buf := make([]byte, len(MimeType))
	n, err := io.ReadFull(rc, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return err
	}
	if got := string(buf[:n]); got != MimeType {
		return fmt.Errorf("unexpected mimetype %q", got)
	}
	return nil
}

func (d *decoder) processContent(f *zip.File) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	root, err := parser.Open(rc)
	if err != nil {
		return err
	}
	if root == nil {
		d.log.Debug("skipping empty entry", zap.String("entry", f.Name))
		return nil
	}

	parser.DecodeDocument(root, d.styles, d.spread, d.cfg)
	return root.Err()
}
