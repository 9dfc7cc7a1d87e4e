package converter

import (
	"runtime"
	"sync"

	"heic2img/contracts"
)

type Outcome = contracts.Outcome

// RunBatch converts every request on a worker pool sized to the host CPU
// count. Each file is attempted exactly once and one file's failure never
// stops the others. Returns an outcome per request, in completion order.
func (e *Engine) RunBatch(requests []ConversionRequest) []Outcome {
	if len(requests) == 0 {
		return nil
	}

	maxWorkers := runtime.NumCPU()
	sem := make(chan struct{}, maxWorkers)
	outcomeCh := make(chan Outcome, len(requests))

	var wg sync.WaitGroup
	for i, req := range requests {
		e.Log.Infof("Queued %d/%d: %s", i+1, len(requests), req.InputPath)

		wg.Add(1)
		go func(req ConversionRequest) {
			defer wg.Done()

			sem <- struct{}{}        // acquire a token
			defer func() { <-sem }() // release the token

			err := e.Convert(req)
			if err != nil {
				e.Log.Errorf("Conversion failed for %s: %v", req.InputPath, err)
			}
			outcomeCh <- Outcome{
				InputPath:  req.InputPath,
				OutputPath: ResolveOutputPath(req.InputPath, req.OutputPath, req.Format),
				Err:        err,
			}
		}(req)
	}
	wg.Wait()
	close(outcomeCh)

	outcomes := make([]Outcome, 0, len(requests))
	for o := range outcomeCh {
		outcomes = append(outcomes, o)
	}
	return outcomes
}
