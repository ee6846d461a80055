// Package model defines the core data structures shared by the pipeline,
// its transformers and the front-ends.
//
// # Outcome
//
// Outcome records what happened to a single input path during a run:
//
//	outcome := model.Outcome{Source: "sfx/hit.wav", Transformer: "WAV2AAC", Status: model.StatusApplied}
//	fmt.Println(outcome.Target) // Where the output was written
//
// # Result
//
// Result collects the outcomes of one processing pass in input order:
//
//	result := model.NewResult(len(inputs))
//	counts := result.Counts()
//	if result.HasFailures() {
//	    // decide whether partial failure is acceptable
//	}
//
// A Result can be persisted as a YAML manifest with WriteManifest for CI checks.
package model
