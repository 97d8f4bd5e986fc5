// Package workers provides abstractions for running CPU-heavy or background
// work off the caller's goroutine.
// It defines the Worker interface, a Workers aggregate that runs several
// workers in sequence, and a bounded Pool used for key derivation.
package workers

// Worker is the interface that must be implemented by any unit of work
// submitted to a Pool or grouped in Workers.
//
// Example implementation:
//
//	type deriveWorker struct{ out chan<- []byte }
//
//	func (w *deriveWorker) Run() {
//	    w.out <- expensiveDerivation()
//	}
type Worker interface {
	Run()
}

// WorkerFunc adapts an ordinary function to the Worker interface.
type WorkerFunc func()

// Run calls f.
func (f WorkerFunc) Run() { f() }
