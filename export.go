package testmaker

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type (
	// Exporter turns timelines into artifacts on disk. It owns the codec
	// registry and applies the export policy: validate first, report every
	// problem, write the artifact regardless. A flawed session description
	// is still the researcher's to export
	Exporter struct {
		log    *zap.Logger
		codecs map[Format]Encoder
	}
)

// NewExporter creates an Exporter with the built-in codecs. A nil logger
// disables logging
func NewExporter(log *zap.Logger) *Exporter {
	if log == nil {
		log = zap.NewNop()
	}
	x := &Exporter{
		log:    log,
		codecs: map[Format]Encoder{},
	}
	for _, enc := range []Encoder{JSONCodec{}, EEGLabCodec{}, EPrimeCodec{}} {
		x.Register(enc)
	}
	return x
}

// Register adds or replaces a codec, keyed by its Format
func (x *Exporter) Register(enc Encoder) {
	x.codecs[enc.Format()] = enc
}

// Export writes the timeline to dest in the format the hint resolves to; an
// empty hint falls back to the destination name. The returned problems are
// advisory and never block the write. The error reports format resolution,
// encoding, or file failures only
func (x *Exporter) Export(
	tl *Timeline, dest, hint string,
) ([]Problem, error) {
	if hint == "" {
		hint = dest
	}
	format, err := ResolveFormat(hint)
	if err != nil {
		return nil, err
	}

	problems := tl.Validate()
	x.logProblems(tl, problems)

	if err := x.write(tl, format, dest); err != nil {
		return problems, err
	}
	return problems, nil
}

// ExportBatch writes the timeline to several destinations at once, each
// format resolved from its own destination name. The timeline must not be
// mutated while the batch runs. Validation runs once; the first failure
// stops the batch, though artifacts already written stay on disk
func (x *Exporter) ExportBatch(
	ctx context.Context, tl *Timeline, dests ...string,
) ([]Problem, error) {
	problems := tl.Validate()
	x.logProblems(tl, problems)

	g, ctx := errgroup.WithContext(ctx)
	for _, dest := range dests {
		dest := dest
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			format, err := ResolveFormat(dest)
			if err != nil {
				return err
			}
			return x.write(tl, format, dest)
		})
	}
	if err := g.Wait(); err != nil {
		return problems, err
	}
	return problems, nil
}

// write encodes the whole artifact into memory before touching dest, so a
// failed encode leaves no partial file behind
func (x *Exporter) write(tl *Timeline, format Format, dest string) error {
	enc, ok := x.codecs[format]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnresolvedFormat, format)
	}

	var buf bytes.Buffer
	if err := enc.Encode(&buf, tl); err != nil {
		return err
	}
	if err := os.WriteFile(dest, buf.Bytes(), 0o644); err != nil {
		return err
	}

	x.log.Debug("Timeline exported",
		zap.String("timeline", tl.Name),
		zap.String("format", string(format)),
		zap.String("dest", dest),
		zap.Int("events", tl.Len()),
		zap.Int("bytes", buf.Len()),
	)
	return nil
}

func (x *Exporter) logProblems(tl *Timeline, problems []Problem) {
	for _, p := range problems {
		x.log.Warn("Exporting with validation problem",
			zap.String("timeline", tl.Name),
			zap.String("problem", p.String()),
		)
	}
}
