// Package evalforge provides a Go client for the EvalForge AI-evaluation
// service.
//
// EvalForge scores agent outputs against datasets of test items using named
// server-side scorers, and ingests execution traces. This SDK covers the
// typed API surface (datasets, scorers, evaluations, traces), transparent
// pagination over list endpoints, retries with exponential backoff for
// transient transport faults, and a pure client-side aggregator for
// post-hoc statistics over evaluation results.
//
// # Quick Start
//
// Create a client and score one output:
//
//	client, err := evalforge.New(os.Getenv("EVALFORGE_API_KEY"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	result, err := client.Evaluations().Score(ctx, &evalforge.ScoreRequest{
//	    ItemID: "item-1",
//	    Output: "Paris",
//	    Scorers: []evalforge.ScorerSpec{{ScorerID: "factuality"}},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.OverallScore, result.OverallPassed)
//
// # Pagination
//
// List endpoints return an *Iterator that fetches pages on demand:
//
//	it, err := client.Datasets().List(nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for {
//	    ds, err := it.Next(ctx)
//	    if errors.Is(err, evalforge.ErrIteratorExhausted) {
//	        break
//	    }
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(ds.Name)
//	}
//
// # Aggregation
//
// Summarize makes no network calls; it is a pure view over results already
// in memory:
//
//	summary := evalforge.Summarize(results)
//	if err := summary.AssertPassingRate(80.0); err != nil {
//	    t.Fatal(err)
//	}
//
// # Concurrency
//
// Every method takes a context.Context and honors cancellation at each
// network I/O point and retry sleep. The client is safe for concurrent use
// by multiple goroutines; an Iterator is owned by a single consumer.
package evalforge
