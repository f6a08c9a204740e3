package engine

import (
	"sync"

	"github.com/fleetops/fleet-risk-service/pkg/models"
)

// BatchInput is one asset's evaluation unit: its latest sample, its
// usage history and its metadata.
type BatchInput struct {
	Sample  TelemetrySample
	History []models.UsageDaily
	Meta    EquipmentMeta
}

// BatchResult carries one asset's outcome; Err is set when the input
// failed validation.
type BatchResult struct {
	EquipmentID string
	Events      []models.Event
	RiskLevel   models.Severity
	Err         error
}

// EvaluateBatch runs EvaluateSample over many assets with at most
// workers goroutines. Assets are independent so there is no ordering
// requirement between them; within one asset the baseline is computed
// before the rules run. Results keep input order.
func (e *Engine) EvaluateBatch(inputs []BatchInput, workers int) []BatchResult {
	if workers < 1 {
		workers = 1
	}

	results := make([]BatchResult, len(inputs))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i := range inputs {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			in := inputs[i]
			events, risk, err := e.EvaluateSample(in.Sample, in.History, in.Meta)
			results[i] = BatchResult{
				EquipmentID: in.Sample.EquipmentID,
				Events:      events,
				RiskLevel:   risk,
				Err:         err,
			}
		}(i)
	}
	wg.Wait()

	return results
}
