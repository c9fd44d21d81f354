package ingest

import (
	"sync"

	"github.com/panjf2000/ants/v2"
)

// Cluster is a parallel execution backend for the distributed strategy.
// It exposes two pools sized for different workloads: a CPU pool for
// parse-heavy work and an IO pool for latency-bound store calls.
type Cluster interface {
	// MapCPU runs each task on the CPU pool and waits for all of them.
	MapCPU(tasks []func())

	// MapIO runs each task on the IO pool and waits for all of them.
	MapIO(tasks []func())

	// Release frees the cluster's resources.
	Release()
}

// localCluster runs cluster stages on in-process ants pools.
type localCluster struct {
	cpu *ants.Pool
	io  *ants.Pool
}

var _ Cluster = (*localCluster)(nil)

// NewLocalCluster creates a cluster backed by two in-process worker pools.
func NewLocalCluster(cpuWorkers, ioWorkers int) (Cluster, error) {
	if cpuWorkers < 1 || ioWorkers < 1 {
		return nil, ErrInvalidWorkers
	}

	cpu, err := ants.NewPool(cpuWorkers)
	if err != nil {
		return nil, err
	}
	io, err := ants.NewPool(ioWorkers)
	if err != nil {
		cpu.Release()
		return nil, err
	}
	return &localCluster{cpu: cpu, io: io}, nil
}

func (c *localCluster) MapCPU(tasks []func()) {
	mapOnPool(c.cpu, tasks)
}

func (c *localCluster) MapIO(tasks []func()) {
	mapOnPool(c.io, tasks)
}

func (c *localCluster) Release() {
	c.cpu.Release()
	c.io.Release()
}

// mapOnPool submits every task and waits. If the pool rejects a submission,
// the task runs inline so no work is silently dropped.
func mapOnPool(pool *ants.Pool, tasks []func()) {
	var wg sync.WaitGroup
	for _, task := range tasks {
		task := task
		wg.Add(1)
		wrapped := func() {
			defer wg.Done()
			task()
		}
		if err := pool.Submit(wrapped); err != nil {
			wrapped()
		}
	}
	wg.Wait()
}
