// Package async provides safe concurrent execution primitives for background tasks.
//
// # Overview
//
// This package handles goroutine lifecycle management with panic recovery, timeout
// enforcement, context cancellation, and error collection.
//
// # Key Functions
//
// SafeGo: Execute function in goroutine with safety features
//
//	async.SafeGo(ctx, 30*time.Second, "webhook delivery", func(ctx context.Context) error {
//		// Task code with automatic panic recovery and timeout
//		return sender.Send(ctx, event)
//	})
//
// WorkerPool: Managed pool of concurrent workers
//
//	pool := async.NewWorkerPool(ctx, 8, "document linting", 30*time.Second)
//	defer pool.Shutdown(5 * time.Second)
//
//	pool.Submit(func(ctx context.Context) error {
//		return lintDocument(ctx, path)
//	})
//
// Batch: Concurrent batch processing
//
//	errs := async.Batch(ctx, paths, 5, "batch lint", 10*time.Second,
//		func(ctx context.Context, path string) error {
//			return lintFile(ctx, path)
//		})
//
// # Features
//
// Panic Recovery: Captures panics with stack traces
// Timeout Enforcement: Per-task timeouts
// Context Cancellation: Respects context cancellation
// Error Collection: Non-blocking error channels
// Graceful Shutdown: Worker draining
//
// # Use Cases
//
// Webhook delivery, batch linting, report exports, cache warming
//
// # Related Packages
//
//   - pkg/notify: Uses SafeGo for delivery
//   - pkg/api: Uses WorkerPool for batch lint requests
package async
