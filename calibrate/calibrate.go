package calibrate

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/sky-flux/opw"
)

var (
	// ErrNoSamples is returned when no samples are provided.
	ErrNoSamples = errors.New("calibrate: no samples provided")

	// ErrInsufficientData is returned when there are fewer than MinSamples samples.
	ErrInsufficientData = errors.New("calibrate: too few samples for calibration")

	// ErrInvalidSample is returned for samples with non-finite values or a
	// measured rotation that is not orthonormal.
	ErrInvalidSample = errors.New("calibrate: invalid sample")
)

// MinSamples is the smallest sample count Fit accepts. Each sample pins
// six degrees of freedom, so three samples over-determine the thirteen
// fitted values.
const MinSamples = 3

// Config configures the fitting process.
// Zero values are replaced with sensible defaults.
type Config struct {
	Epochs         int     `json:"epochs"`          // default 50
	MiniBatchSize  int     `json:"mini_batch_size"` // default 32
	LearningRate   float64 `json:"learning_rate"`   // default 1e-3
	RotationWeight float64 `json:"rotation_weight"` // default 0.1 (m² per unit Frobenius²)
	MaxDeviation   float64 `json:"max_deviation"`   // default 0.05 (m or rad)
	FixOffsets     bool    `json:"fix_offsets"`     // fit link dimensions only
	Seed           int64   `json:"seed"`            // shuffle seed, default 42
}

// Result is the outcome of a calibration.
type Result struct {
	Parameters  opw.Parameters `json:"parameters"`
	InitialLoss float64        `json:"initial_loss"`
	Loss        float64        `json:"loss"`
	Epochs      int            `json:"epochs"`
}

// Calibrator fits robot parameters to measured samples using mini-batch
// gradient descent with Adam and a cosine annealing learning rate.
type Calibrator struct {
	epochs         int
	miniBatchSize  int
	learningRate   float64
	rotationWeight float64
	maxDeviation   float64
	fixOffsets     bool
	seed           int64
}

// New creates a Calibrator with the given config.
// Zero-valued fields receive defaults: Epochs=50, MiniBatchSize=32,
// LearningRate=1e-3, RotationWeight=0.1, MaxDeviation=0.05, Seed=42.
func New(cfg Config) *Calibrator {
	c := &Calibrator{
		epochs:         cfg.Epochs,
		miniBatchSize:  cfg.MiniBatchSize,
		learningRate:   cfg.LearningRate,
		rotationWeight: cfg.RotationWeight,
		maxDeviation:   cfg.MaxDeviation,
		fixOffsets:     cfg.FixOffsets,
		seed:           cfg.Seed,
	}
	if c.epochs == 0 {
		c.epochs = 50
	}
	if c.miniBatchSize == 0 {
		c.miniBatchSize = 32
	}
	if c.learningRate == 0 {
		c.learningRate = 1e-3
	}
	if c.rotationWeight == 0 {
		c.rotationWeight = 0.1
	}
	if c.maxDeviation == 0 {
		c.maxDeviation = 0.05
	}
	if c.seed == 0 {
		c.seed = 42
	}
	return c
}

// Fit refines nominal so that its forward kinematics match the samples.
// The returned parameters are the best seen at the end of any epoch, and
// never worse than nominal.
//
// Returns ErrNoSamples if samples is empty, or ErrInsufficientData (along
// with nominal) if there are fewer than MinSamples. The context is checked
// between epochs; on cancellation the best parameters so far are returned
// with the context error.
func (c *Calibrator) Fit(ctx context.Context, nominal opw.Parameters, samples []Sample) (Result, error) {
	result := Result{Parameters: nominal}
	if len(samples) == 0 {
		return result, ErrNoSamples
	}
	if err := nominal.Validate(); err != nil {
		return result, err
	}
	for i, s := range samples {
		if err := s.Validate(); err != nil {
			return result, fmt.Errorf("sample %d: %w", i, err)
		}
	}
	if len(samples) < MinSamples {
		return result, ErrInsufficientData
	}

	var free [numParams]bool
	for i := range free {
		free[i] = i < 7 || !c.fixOffsets
	}

	start := toVector(nominal)
	params := start
	tMax := int(math.Ceil(float64(len(samples))/float64(c.miniBatchSize))) * c.epochs
	adam := NewAdam(c.learningRate)
	ca := NewCosineAnnealing(c.learningRate, tMax)
	rng := rand.New(rand.NewSource(c.seed))

	order := make([]int, len(samples))
	for i := range order {
		order[i] = i
	}
	batch := make([]Sample, 0, c.miniBatchSize)

	result.InitialLoss = batchLoss(nominal, samples, c.rotationWeight)
	bestParams := params
	bestLoss := result.InitialLoss

	for epoch := 0; epoch < c.epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			result.Parameters = bestParams.toParameters(nominal)
			result.Loss = bestLoss
			return result, err
		}

		rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})

		for lo := 0; lo < len(order); lo += c.miniBatchSize {
			hi := min(lo+c.miniBatchSize, len(order))
			batch = batch[:0]
			for _, idx := range order[lo:hi] {
				batch = append(batch, samples[idx])
			}

			grad := numericalGradient(params, nominal, &free, batch, c.rotationWeight)
			adam.SetLR(ca.LR())
			params = adam.Update(params, grad)
			params = c.clamp(params, start)
			ca.Step()
		}

		// Track best parameters by epoch loss.
		epochLoss := batchLoss(params.toParameters(nominal), samples, c.rotationWeight)
		if epochLoss < bestLoss {
			bestLoss = epochLoss
			bestParams = params
		}
		result.Epochs = epoch + 1
	}

	result.Parameters = bestParams.toParameters(nominal)
	result.Loss = bestLoss
	return result, nil
}

// Loss computes the mean pose error of p over samples.
func (c *Calibrator) Loss(p opw.Parameters, samples []Sample) float64 {
	return batchLoss(p, samples, c.rotationWeight)
}

// clamp constrains each parameter to within maxDeviation of start.
func (c *Calibrator) clamp(v, start vector) vector {
	for i := range v {
		lo, hi := start[i]-c.maxDeviation, start[i]+c.maxDeviation
		v[i] = math.Max(lo, math.Min(v[i], hi))
	}
	return v
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
