package npyexport

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/arloliu/npyexport/endian"
	"github.com/arloliu/npyexport/errs"
	"github.com/arloliu/npyexport/internal/options"
	"github.com/arloliu/npyexport/section"
)

// ExportConfig holds the settings of a single export.
type ExportConfig struct {
	shape        section.Shape
	fortranOrder bool
	strategy     endian.Strategy
	logger       *slog.Logger
	checksum     bool
}

func newExportConfig() *ExportConfig {
	return &ExportConfig{
		strategy: endian.Runtime(),
		logger:   NoopLogger(),
	}
}

// Shape returns the explicit shape, or nil when it is inferred from the element count.
func (c *ExportConfig) Shape() section.Shape {
	return c.shape
}

// FortranOrder reports whether the header declares column-major order.
func (c *ExportConfig) FortranOrder() bool {
	return c.fortranOrder
}

// Strategy returns the byte-order strategy of the payload.
func (c *ExportConfig) Strategy() endian.Strategy {
	return c.strategy
}

// ExportOption configures an export.
type ExportOption = options.Option[*ExportConfig]

// WithShape sets the shape recorded in the header.
//
// Without it the shape is (count,) for scalar elements and (count, dimensions)
// otherwise. The shape is not checked against the number of elements written.
//
// Returns ErrInvalidShape when dims is empty or has a negative entry.
func WithShape(dims ...int) ExportOption {
	shape := section.Shape(slices.Clone(dims))

	return options.New(func(c *ExportConfig) error {
		if err := shape.Validate(); err != nil {
			return err
		}
		c.shape = shape

		return nil
	})
}

// WithFortranOrder sets the fortran_order flag of the header.
// Only the flag is written; the payload is always emitted in input order.
func WithFortranOrder(enabled bool) ExportOption {
	return options.NoError(func(c *ExportConfig) {
		c.fortranOrder = enabled
	})
}

// WithByteOrder sets the byte-order strategy. The default is endian.Runtime().
//
// Returns ErrInvalidByteOrder for a nil strategy.
func WithByteOrder(strategy endian.Strategy) ExportOption {
	return options.New(func(c *ExportConfig) error {
		if strategy == nil {
			return fmt.Errorf("%w: nil strategy", errs.ErrInvalidByteOrder)
		}
		c.strategy = strategy

		return nil
	})
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(logger *slog.Logger) ExportOption {
	return options.NoError(func(c *ExportConfig) {
		if logger == nil {
			c.logger = NoopLogger()
			return
		}
		c.logger = logger
	})
}

// WithChecksum enables an xxHash64 checksum of every byte written,
// reported in Result.Checksum.
func WithChecksum(enabled bool) ExportOption {
	return options.NoError(func(c *ExportConfig) {
		c.checksum = enabled
	})
}
