package typedetect

import (
	"context"

	"media-catalog/core/tree"

	"go.uber.org/zap"
)

// Result counts what a Fill pass did.
type Result struct {
	Detected int `json:"detected"`
	Unknown  int `json:"unknown"`
	Skipped  int `json:"skipped"`
}

// Fill sets the type of every present file of vol whose type is empty.
func Fill(ctx context.Context, vol *tree.Volume, d Detector, logger *zap.Logger) Result {
	var res Result
	for _, f := range vol.Root.AllFiles() {
		if f.State == tree.Missing || f.Type != "" {
			res.Skipped++
			continue
		}

		t, err := d.Detect(ctx, vol.OSPath(f.Path()))
		if err != nil {
			logger.Warn("Type detection failed", zap.String("path", f.Path()), zap.Error(err))
		}
		if t == "" {
			f.Type = tree.UnknownType
			res.Unknown++
			continue
		}
		f.Type = t
		res.Detected++
	}

	logger.Info("Type detection finished",
		zap.String("volume", vol.Path),
		zap.Int("detected", res.Detected),
		zap.Int("unknown", res.Unknown),
		zap.Int("skipped", res.Skipped),
	)
	return res
}
