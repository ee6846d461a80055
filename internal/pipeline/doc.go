// Package pipeline provides the processing logic that routes input
// resources through a chain of transformers.
//
// # Processor
//
// The Processor coordinates one run:
//
//  1. Expand every input pattern once, before anything is written
//  2. Drop inputs matching an exclude pattern
//  3. Create the output directory
//  4. For each input, apply the first transformer whose CanProcess matches
//  5. Record an Outcome per input (applied, failed, skipped or cancelled)
//  6. Write the manifest (optional)
//
// # Basic Usage
//
//	processor := pipeline.NewProcessor(settings, chain, func(event pipeline.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	if err := processor.Initialize(ctx, []string{"res/*.wav", "res/*.txt"}); err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := processor.Process(ctx, "build/res")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # First Match Wins
//
// The chain is evaluated in caller order for every input and stops at the
// first transformer that accepts it. An input no transformer accepts is
// skipped, which is reported but is not an error. A failing transformer
// does not stop the run; the next input is processed as usual.
//
// # Concurrency
//
// Inputs are processed one at a time unless settings.MaxConcurrentInputs is
// greater than one, in which case a bounded worker pool is used. Outcomes
// are always reported in input order.
//
// # Cancellation
//
// Cancelling the context stops the run between inputs. Inputs that were not
// started are recorded as cancelled; an encoder that is already running is
// allowed to finish.
package pipeline
