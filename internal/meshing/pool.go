package meshing

import (
	"context"
	"fmt"
	"sync"

	"mini-voxel/internal/world"
)

// MeshJob represents a meshing job request
type MeshJob struct {
	ID    int
	Chunk *world.Chunk
	// Result channel - will be sent the result when done
	ResultChan chan<- MeshResult
}

// MeshResult contains the result of a meshing operation
type MeshResult struct {
	ID    int
	Mesh  Mesh
	Error error
}

// WorkerPool meshes independent chunks on a fixed set of goroutines. Chunks
// must not be edited while their job is queued or running.
type WorkerPool struct {
	jobQueue chan MeshJob
	builder  *Builder
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewWorkerPool creates a new mesh worker pool. A nil builder uses NewBuilder().
func NewWorkerPool(workers, queueSize int, b *Builder) *WorkerPool {
	if workers < 1 {
		workers = 1
	}
	if b == nil {
		b = NewBuilder()
	}
	ctx, cancel := context.WithCancel(context.Background())
	pool := &WorkerPool{
		jobQueue: make(chan MeshJob, queueSize),
		builder:  b,
		ctx:      ctx,
		cancel:   cancel,
	}

	for i := 0; i < workers; i++ {
		pool.wg.Add(1)
		go pool.worker()
	}
	return pool
}

// SubmitJob submits a mesh generation job to the pool
// Returns true if job was submitted successfully, false if queue is full
func (p *WorkerPool) SubmitJob(job MeshJob) bool {
	select {
	case p.jobQueue <- job:
		return true
	case <-p.ctx.Done():
		return false
	default:
		return false
	}
}

// SubmitJobBlocking waits for queue space. It returns false once the pool is
// shut down.
func (p *WorkerPool) SubmitJobBlocking(job MeshJob) bool {
	select {
	case p.jobQueue <- job:
		return true
	case <-p.ctx.Done():
		return false
	}
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()

	for {
		select {
		case job := <-p.jobQueue:
			result := MeshResult{ID: job.ID}
			if job.Chunk == nil {
				result.Error = fmt.Errorf("%w: job %d has no chunk", world.ErrInvalidChunkData, job.ID)
			} else {
				result.Mesh = p.builder.Build(job.Chunk)
			}

			select {
			case job.ResultChan <- result:
			case <-p.ctx.Done():
				return
			}

		case <-p.ctx.Done():
			return
		}
	}
}

// Shutdown stops the workers and waits for them. Queued jobs are dropped.
func (p *WorkerPool) Shutdown() {
	p.cancel()
	p.wg.Wait()
}

// GetQueueLength returns the current number of jobs in the queue
func (p *WorkerPool) GetQueueLength() int {
	return len(p.jobQueue)
}

// BuildAll meshes every chunk on the pool and returns the meshes in input order.
func (p *WorkerPool) BuildAll(chunks []*world.Chunk) ([]Mesh, error) {
	results := make(chan MeshResult, len(chunks))
	go func() {
		for i, c := range chunks {
			if !p.SubmitJobBlocking(MeshJob{ID: i, Chunk: c, ResultChan: results}) {
				return
			}
		}
	}()

	meshes := make([]Mesh, len(chunks))
	for range chunks {
		select {
		case r := <-results:
			if r.Error != nil {
				return nil, r.Error
			}
			meshes[r.ID] = r.Mesh
		case <-p.ctx.Done():
			return nil, p.ctx.Err()
		}
	}
	return meshes, nil
}
