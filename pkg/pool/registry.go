package pool

// workerRegistry is the authoritative id→worker mapping. Like taskQueue,
// it owns no lock: every mutation happens
// under Pool.mu so that registry.size() is always a consistent snapshot
// alongside the queue and run-state counters it shares that mutex with.
type workerRegistry struct {
	workers map[uint64]*Worker
}

func newWorkerRegistry() *workerRegistry {
	return &workerRegistry{workers: make(map[uint64]*Worker)}
}

func (r *workerRegistry) insert(w *Worker) {
	r.workers[w.id] = w
}

func (r *workerRegistry) erase(id uint64) {
	delete(r.workers, id)
}

func (r *workerRegistry) size() int {
	return len(r.workers)
}
