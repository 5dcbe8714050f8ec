package concurrent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkerPool(t *testing.T) {
	wp := NewWorkerPool[int, int](4, 100)
	for i := 0; i < 100; i++ {
		wp.AddJob(i)
	}
	wp.Close()
	wp.Start(func(job int) int {
		return job * job
	})
	wp.Wait()

	sum, count := 0, 0
	for res := range wp.CollectResults() {
		sum += res
		count++
	}
	assert.Equal(t, 100, count)
	assert.Equal(t, 328350, sum)
}
