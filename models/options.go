package models

const (
	ColorModeColor  = "color"
	ColorModeBinary = "binary"
)

// ConversionOptions is the parameter set handed to the vectorizer.
// Only ColorMode varies per request.
type ConversionOptions struct {
	ColorMode       string
	Hierarchical    string
	Mode            string
	FilterSpeckle   int
	ColorPrecision  int
	LayerDifference int
	CornerThreshold int
	LengthThreshold float64
	MaxIterations   int
	SpliceThreshold int
	PathPrecision   int
}

func DefaultConversionOptions() ConversionOptions {
	return ConversionOptions{
		ColorMode:       ColorModeColor,
		Hierarchical:    "stacked",
		Mode:            "spline",
		FilterSpeckle:   4,
		ColorPrecision:  6,
		LayerDifference: 16,
		CornerThreshold: 60,
		LengthThreshold: 10,
		MaxIterations:   10,
		SpliceThreshold: 45,
		PathPrecision:   3,
	}
}

// WithColorMode returns a copy of o with the color mode replaced.
func (o ConversionOptions) WithColorMode(mode string) ConversionOptions {
	o.ColorMode = mode
	return o
}
