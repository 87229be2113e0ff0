package usdmesh

import "go.uber.org/zap"

// Export is the package's top-level entry point: given a colored mesh set
// and options, it produces all three output formats a caller asks for.
// Each exporter is a pure function of ms; log, if non-nil, only receives
// diagnostic breadcrumbs and never affects output bytes.

// ExportResult holds whichever artifacts were requested from Export.
type ExportResult struct {
	USDZ    []byte
	GLB     []byte
	OBJ     []byte
	MTL     []byte
}

// Export runs the requested combination of exporters against ms.
func Export(ms MeshSet, opts *ExportOptions, log *zap.SugaredLogger, formats ...string) (*ExportResult, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	logOrNil(log, func(l *zap.SugaredLogger) {
		l.Infow("starting export", "colors", len(ms), "formats", formats)
	})

	result := &ExportResult{}
	for _, format := range formats {
		switch format {
		case "usdz":
			data, err := ExportUSDZ(ms, opts.ColorOrder)
			if err != nil {
				logOrNil(log, func(l *zap.SugaredLogger) { l.Errorw("usdz export failed", "err", err) })
				return nil, err
			}
			result.USDZ = data

		case "glb":
			data, err := ExportGLB(ms, opts.ColorOrder)
			if err != nil {
				logOrNil(log, func(l *zap.SugaredLogger) { l.Errorw("glb export failed", "err", err) })
				return nil, err
			}
			result.GLB = data

		case "obj":
			obj, mtl, err := ExportOBJ(ms, opts.ColorOrder, opts.MTLName)
			if err != nil {
				logOrNil(log, func(l *zap.SugaredLogger) { l.Errorw("obj export failed", "err", err) })
				return nil, err
			}
			result.OBJ = obj
			result.MTL = mtl

		default:
			return nil, fatalf(ErrUnsupportedFormat, "unknown export format %q", format)
		}
	}

	logOrNil(log, func(l *zap.SugaredLogger) { l.Infow("export complete") })
	return result, nil
}
