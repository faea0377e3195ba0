package simulation

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"chainimpact/contexts/verification/oracle-service/domain/entities"
)

// Score thresholds for the simulated analysis model.
const (
	imageScoreThreshold    = 60.0
	documentScoreThreshold = 70.0
	unknownTypePassRate    = 0.7
)

// Classifier is the simulated stand-in for a real content-analysis model.
// It categorizes by file extension and draws a quality score per category.
// Roll is injectable for deterministic tests; Delay models the latency of an
// external analysis call.
type Classifier struct {
	Delay time.Duration
	Roll  func() float64
}

func (c Classifier) Classify(ctx context.Context, proofURL string) entities.Classification {
	if c.Delay > 0 {
		timer := time.NewTimer(c.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return entities.Classification{Valid: false, Reason: "Error analyzing proof content", Confidence: 0}
		case <-timer.C:
		}
	}

	roll := c.Roll
	if roll == nil {
		roll = rand.Float64
	}

	switch fileExtension(proofURL) {
	case "jpg", "jpeg", "png":
		score := roll() * 100
		if score < imageScoreThreshold {
			return entities.Classification{
				Valid:      false,
				Reason:     entities.ReasonLowImageScore,
				Confidence: score / 100,
			}
		}
		return entities.Classification{Valid: true, Confidence: score / 100}
	case "pdf", "doc", "docx":
		score := roll() * 100
		if score < documentScoreThreshold {
			return entities.Classification{
				Valid:      false,
				Reason:     entities.ReasonLowDocumentScore,
				Confidence: score / 100,
			}
		}
		return entities.Classification{Valid: true, Confidence: score / 100}
	default:
		return entities.Classification{
			Valid:      roll() < unknownTypePassRate,
			Reason:     entities.ReasonUnsupportedType,
			Confidence: 0.5,
		}
	}
}

func fileExtension(proofURL string) string {
	trimmed := proofURL
	if i := strings.IndexAny(trimmed, "?#"); i >= 0 {
		trimmed = trimmed[:i]
	}
	i := strings.LastIndex(trimmed, ".")
	if i < 0 || i == len(trimmed)-1 {
		return ""
	}
	return strings.ToLower(trimmed[i+1:])
}
