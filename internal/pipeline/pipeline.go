// Package pipeline composes the container codec, compression adapter,
// filter engine, and steganographic codec into the two top-level
// operations this system offers: Encode and Decode. The stage order
// mirrors the original C encoding()/decoding() functions this spec was
// distilled from — open, read IHDR, read all IDAT, close, inflate,
// unfilter, embed-or-extract, (filter, deflate, write)-or-(write
// payload) — and the logging/error-wrapping style is grounded on
// zanicar-stegano's cmd/stegano conceal/reveal functions, which log one
// line per stage and wrap every error with the stage that produced it.
package pipeline

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/callmeFilip/Steganography/internal/compressadapter"
	"github.com/callmeFilip/Steganography/internal/pngcodec"
	"github.com/callmeFilip/Steganography/internal/rowfilter"
	"github.com/callmeFilip/Steganography/internal/stegerr"
	"github.com/callmeFilip/Steganography/internal/stego"
)

var log = logrus.New()

// SetLogger lets the CLI install its own configured logger (e.g. to
// change verbosity or output stream) instead of the package default.
func SetLogger(l *logrus.Logger) { log = l }

func filteredStreamLen(h pngcodec.IHDR) int {
	return int(h.Height) * (1 + int(h.Width)*4)
}

func openInput(path string) (*pngcodec.Reader, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, &stegerr.NotFound{Path: path}
		}
		return nil, nil, &stegerr.IOError{Op: "open input file", Err: err}
	}
	r, err := pngcodec.Open(f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return r, f, nil
}

// Encode embeds payload into the image at inputPath and writes the
// resulting PNG to outputPath.
func Encode(inputPath, outputPath string, payload []byte) error {
	log.WithField("input", inputPath).Info("encode: opening image")
	r, f, err := openInput(inputPath)
	if err != nil {
		return errors.Wrap(err, "could not open input image")
	}

	ihdr, err := r.ReadIHDR()
	if err != nil {
		f.Close()
		return errors.Wrap(err, "could not read IHDR")
	}
	compressed, err := r.ReadAllIDAT()
	if err != nil {
		f.Close()
		return errors.Wrap(err, "could not read IDAT")
	}
	f.Close()

	raw, err := compressadapter.Inflate(compressed, filteredStreamLen(ihdr))
	if err != nil {
		return errors.Wrap(err, "could not inflate image data")
	}

	img, err := rowfilter.Unfilter(raw, ihdr)
	if err != nil {
		return errors.Wrap(err, "could not unfilter image")
	}

	log.WithField("payload_bytes", len(payload)).Info("encode: embedding payload")
	if err := stego.Embed(img, payload); err != nil {
		return errors.Wrap(err, "could not embed payload")
	}

	filtered, err := rowfilter.Filter(img, ihdr)
	if err != nil {
		return errors.Wrap(err, "could not filter output image")
	}

	out, err := compressadapter.Deflate(filtered)
	if err != nil {
		return errors.Wrap(err, "could not deflate output image")
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return errors.Wrap(&stegerr.IOError{Op: "create output file", Err: err}, "could not open output image")
	}
	defer outFile.Close()

	w := pngcodec.Create(outFile)
	if err := w.WriteIHDR(ihdr); err != nil {
		return errors.Wrap(err, "could not write IHDR")
	}
	if err := w.WriteIDAT(out); err != nil {
		return errors.Wrap(err, "could not write IDAT")
	}
	if err := w.WriteIEND(); err != nil {
		return errors.Wrap(err, "could not write IEND")
	}

	log.WithField("output", outputPath).Info("encode: done")
	return nil
}

// Decode recovers the payload previously embedded in the image at
// inputPath and writes it to outputPath.
func Decode(inputPath, outputPath string) ([]byte, error) {
	log.WithField("input", inputPath).Info("decode: opening image")
	r, f, err := openInput(inputPath)
	if err != nil {
		return nil, errors.Wrap(err, "could not open input image")
	}

	ihdr, err := r.ReadIHDR()
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "could not read IHDR")
	}
	compressed, err := r.ReadAllIDAT()
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "could not read IDAT")
	}
	f.Close()

	raw, err := compressadapter.Inflate(compressed, filteredStreamLen(ihdr))
	if err != nil {
		return nil, errors.Wrap(err, "could not inflate image data")
	}

	img, err := rowfilter.Unfilter(raw, ihdr)
	if err != nil {
		return nil, errors.Wrap(err, "could not unfilter image")
	}

	payload := stego.Extract(img)

	if outputPath != "" {
		if err := os.WriteFile(outputPath, payload, 0o644); err != nil {
			return nil, errors.Wrap(&stegerr.IOError{Op: "write payload file", Err: err}, "could not write decoded payload")
		}
	}

	log.WithField("payload_bytes", len(payload)).Info("decode: done")
	return payload, nil
}
