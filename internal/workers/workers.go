package workers

// Workers runs a fixed set of workers one after another.
type Workers struct {
	workers []Worker
}

// NewWorkers groups ws into a single Worker.
func NewWorkers(ws ...Worker) *Workers {
	return &Workers{workers: ws}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}
